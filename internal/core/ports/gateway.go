package ports

import (
	"context"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
)

type CreatePaymentLinkInput struct {
	OrderCode   string
	Amount      int64
	Description string
}

// PaymentGateway is the external payment provider's contract: it issues
// payable links with QR payloads and answers status queries. Transport
// failures surface as domain.ErrGatewayUnavailable and are never treated as
// a definitive CANCELLED or EXPIRED determination.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, in CreatePaymentLinkInput) (*domain.PaymentLink, error)
	GetPaymentStatus(ctx context.Context, paymentLinkID string) (domain.GatewayStatus, error)
	CancelPaymentLink(ctx context.Context, paymentLinkID string) error
}
