package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentOnline PaymentMethod = "ONLINE"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Transaction struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	Method         PaymentMethod
	Status         PaymentStatus
	OriginalAmount int64
	ProcessingFee  int64
	TotalAmount    int64
	PaymentLinkID  string
	CreatedAt      time.Time
}

// GatewayStatus is the external payment provider's view of a payment link.
type GatewayStatus string

const (
	GatewayPending   GatewayStatus = "PENDING"
	GatewayPaid      GatewayStatus = "PAID"
	GatewayCancelled GatewayStatus = "CANCELLED"
	GatewayExpired   GatewayStatus = "EXPIRED"
)

// PaymentLink is what the gateway hands back when a payable link is created.
type PaymentLink struct {
	ID          string
	QRPayload   string
	CheckoutURL string
}
