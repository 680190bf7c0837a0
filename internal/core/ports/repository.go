package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
)

type InstanceRepository interface {
	GetByID(ctx context.Context, instanceID uuid.UUID) (*domain.DressInstance, error)
	ListAvailableByModel(ctx context.Context, modelID uuid.UUID) ([]domain.DressInstance, error)

	// ReserveOldestAvailable atomically selects the lowest-id AVAILABLE
	// instance of the model, transitions it to RESERVED and stamps the hold.
	// Returns domain.ErrOutOfStock when no instance is AVAILABLE.
	ReserveOldestAvailable(ctx context.Context, modelID uuid.UUID, start, end, now time.Time) (*domain.DressInstance, error)

	// Release transitions RESERVED -> AVAILABLE and clears the hold fields.
	// Returns false when the instance was not RESERVED (idempotent no-op).
	Release(ctx context.Context, instanceID uuid.UUID) (bool, error)

	// ReleaseExpired releases every RESERVED instance whose hold started
	// before cutoff. Returns the model ids of the released instances.
	ReleaseExpired(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	// ClaimForOrder stamps held_by_order_id on a RESERVED, unclaimed instance
	// using an optimistic version check. Zero rows affected means a
	// concurrent actor won the race.
	ClaimForOrder(ctx context.Context, instanceID, orderID uuid.UUID, currentVersion int) error

	// ReleaseClaim clears held_by_order_id; the instance stays RESERVED so
	// the customer keeps their hold after an aborted checkout.
	ReleaseClaim(ctx context.Context, instanceID uuid.UUID) error

	// Delete retires an instance; permitted only from AVAILABLE or MAINTENANCE.
	Delete(ctx context.Context, instanceID uuid.UUID) error
}

type OrderRepository interface {
	// CreateCashOrder persists the order, its lines and transaction, and
	// commits every claimed instance RESERVED -> RENTED, all in one
	// database transaction. Any claimed instance that lost its hold rolls
	// the whole write back with domain.ErrHoldExpired.
	CreateCashOrder(ctx context.Context, order *domain.Order, txn *domain.Transaction) error

	// CreateOnlineOrder persists the order, its lines and transaction only;
	// instances remain RESERVED pending payment reconciliation.
	CreateOnlineOrder(ctx context.Context, order *domain.Order, txn *domain.Transaction) error

	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	GetTransactionByPaymentLink(ctx context.Context, paymentLinkID string) (*domain.Transaction, error)

	// SettlePaid marks the transaction PAID, advances the order to
	// PROCESSING and commits the order's claimed instances to RENTED with
	// their stored windows. Returns false without touching anything when
	// the transaction already left PENDING (idempotent repeat delivery).
	SettlePaid(ctx context.Context, txnID, orderID uuid.UUID) (bool, error)

	// CancelUnpaid marks the transaction with toStatus, cancels the order
	// and releases its claimed instances back to AVAILABLE. Returns the
	// model ids of the released instances; applied is false when the
	// transaction already left PENDING.
	CancelUnpaid(ctx context.Context, txnID, orderID uuid.UUID, toStatus domain.PaymentStatus) (applied bool, modelIDs []uuid.UUID, err error)
}
