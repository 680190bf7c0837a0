package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports"
)

type PaymentStatusResponse struct {
	PaymentLinkID string `json:"payment_link_id"`
	Status        string `json:"status"`
	HumanStatus   string `json:"human_status"`
	OrderID       string `json:"order_id"`
}

// PaymentService reconciles external gateway observations against orders.
// Push webhooks and caller-driven polling both funnel through Apply, which is
// idempotent against duplicate delivery.
type PaymentService struct {
	orderRepo ports.OrderRepository
	gateway   ports.PaymentGateway
	cache     *redis.Client
	logger    *slog.Logger
}

func NewPaymentService(orderRepo ports.OrderRepository, gateway ports.PaymentGateway, cache *redis.Client, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		gateway:   gateway,
		cache:     cache,
		logger:    logger,
	}
}

// CheckStatus queries the gateway for the link's current status and applies
// it. Transport failures are transient: the caller retries on its own
// cadence, and a failure is never read as a cancellation.
func (s *PaymentService) CheckStatus(ctx context.Context, paymentLinkID string) (*PaymentStatusResponse, error) {
	status, err := s.gateway.GetPaymentStatus(ctx, paymentLinkID)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, paymentLinkID, status)
}

// Cancel is the user-initiated path: it cancels the link at the gateway and
// releases the order's holds synchronously, independent of the next poll.
func (s *PaymentService) Cancel(ctx context.Context, paymentLinkID string) (*PaymentStatusResponse, error) {
	if err := s.gateway.CancelPaymentLink(ctx, paymentLinkID); err != nil {
		return nil, err
	}
	return s.Apply(ctx, paymentLinkID, domain.GatewayCancelled)
}

// Apply is the single reconciliation entry point. A repeated PAID observation
// for the same link is a no-op, never a double commit.
func (s *PaymentService) Apply(ctx context.Context, paymentLinkID string, status domain.GatewayStatus) (*PaymentStatusResponse, error) {
	txn, err := s.orderRepo.GetTransactionByPaymentLink(ctx, paymentLinkID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.GatewayPending:
		// Nothing to reconcile yet.

	case domain.GatewayPaid:
		applied, err := s.orderRepo.SettlePaid(ctx, txn.ID, txn.OrderID)
		if err != nil {
			return nil, err
		}
		if applied {
			s.logger.Info("payment settled",
				"payment_link_id", paymentLinkID,
				"order_id", txn.OrderID.String(),
			)
		}

	case domain.GatewayCancelled, domain.GatewayExpired:
		applied, modelIDs, err := s.orderRepo.CancelUnpaid(ctx, txn.ID, txn.OrderID, domain.PaymentFailed)
		if err != nil {
			return nil, err
		}
		if applied {
			for _, modelID := range dedupe(modelIDs) {
				if err := s.cache.Del(ctx, availabilityKey(modelID)).Err(); err != nil {
					s.logger.Warn("availability cache invalidation failed", "model_id", modelID.String(), "error", err)
				}
			}
			s.logger.Info("unpaid order cancelled",
				"payment_link_id", paymentLinkID,
				"order_id", txn.OrderID.String(),
				"gateway_status", string(status),
				"released", len(modelIDs),
			)
		}

	default:
		return nil, fmt.Errorf("%w: unknown gateway status %q", domain.ErrGatewayUnavailable, status)
	}

	return &PaymentStatusResponse{
		PaymentLinkID: paymentLinkID,
		Status:        string(status),
		HumanStatus:   humanStatus(status),
		OrderID:       txn.OrderID.String(),
	}, nil
}

func humanStatus(status domain.GatewayStatus) string {
	switch status {
	case domain.GatewayPending:
		return "Awaiting payment"
	case domain.GatewayPaid:
		return "Payment received"
	case domain.GatewayCancelled:
		return "Payment cancelled"
	case domain.GatewayExpired:
		return "Payment link expired"
	default:
		return "Unknown"
	}
}
