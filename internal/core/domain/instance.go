package domain

import (
	"time"

	"github.com/google/uuid"
)

type InstanceStatus string

const (
	InstanceAvailable   InstanceStatus = "AVAILABLE"
	InstanceReserved    InstanceStatus = "RESERVED"
	InstanceRented      InstanceStatus = "RENTED"
	InstanceMaintenance InstanceStatus = "MAINTENANCE"
)

// validNext encodes every legal instance transition. Repositories additionally
// key their UPDATE statements on the expected current status, so a transition
// that is not listed here cannot happen even under concurrent writers.
var validNext = map[InstanceStatus]map[InstanceStatus]bool{
	InstanceAvailable:   {InstanceReserved: true, InstanceMaintenance: true},
	InstanceReserved:    {InstanceAvailable: true, InstanceRented: true},
	InstanceRented:      {InstanceAvailable: true},
	InstanceMaintenance: {InstanceAvailable: true},
}

func CanTransition(from, to InstanceStatus) bool {
	return validNext[from][to]
}

// CanDelete reports whether an instance may be retired from the pool.
// Instances that are held or out with a customer must be returned first.
func CanDelete(status InstanceStatus) bool {
	return status == InstanceAvailable || status == InstanceMaintenance
}

// DressInstance is one physical, individually trackable unit of a dress model.
// A hold is not a separate entity: it is Status RESERVED plus ReservedAt and
// the intended rental window kept on the instance itself.
type DressInstance struct {
	ID            uuid.UUID
	ModelID       uuid.UUID
	Status        InstanceStatus
	Version       int
	ReservedAt    *time.Time
	HoldStart     *time.Time
	HoldEnd       *time.Time
	HeldByOrderID *uuid.UUID
	RentalStart   *time.Time
	RentalEnd     *time.Time
}

func (i *DressInstance) IsAvailable() bool {
	return i.Status == InstanceAvailable
}

func (i *DressInstance) IsReserved() bool {
	return i.Status == InstanceReserved
}

// HoldExpired reports whether a RESERVED instance's hold age exceeds ttl.
func (i *DressInstance) HoldExpired(now time.Time, ttl time.Duration) bool {
	if i.Status != InstanceReserved || i.ReservedAt == nil {
		return false
	}
	return i.ReservedAt.Before(now.Add(-ttl))
}
