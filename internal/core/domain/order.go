package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type ItemType string

const (
	ItemDress  ItemType = "DRESS"
	ItemVenue  ItemType = "VENUE"
	ItemMakeup ItemType = "MAKEUP"
)

type Order struct {
	ID            uuid.UUID
	Code          string
	CustomerName  string
	Phone         string
	Email         string
	Address       string
	Status        OrderStatus
	TransactionID uuid.UUID
	Lines         []OrderLine
	CreatedAt     time.Time
}

// OrderLine is a snapshot of what was booked, not a live reference to catalog
// data. InstanceID is set only for DRESS lines.
type OrderLine struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ItemType   ItemType
	Name       string
	UnitPrice  int64
	StartDate  *time.Time
	EndDate    *time.Time
	Amount     int64
	InstanceID *uuid.UUID
}

// TotalAmount sums the line snapshots. The order total must always equal this
// sum; a mismatch is an invariant violation, never coerced.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Amount
	}
	return total
}

// DressInstanceIDs returns the instances referenced by the order's DRESS lines.
func (o *Order) DressInstanceIDs() []uuid.UUID {
	var ids []uuid.UUID
	for _, l := range o.Lines {
		if l.ItemType == ItemDress && l.InstanceID != nil {
			ids = append(ids, *l.InstanceID)
		}
	}
	return ids
}
