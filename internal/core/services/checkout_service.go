package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports"
	"github.com/lanvy-atelier/dress-rental/internal/platform/clock"
)

// OnlineProcessingFee is the fixed surcharge added on top of the cart total
// when paying through the gateway, in minor currency units.
const OnlineProcessingFee = 20_000

type CartEntryRequest struct {
	ItemType   string `json:"item_type"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
}

type CheckoutRequest struct {
	CustomerName  string             `json:"customer_name"`
	Phone         string             `json:"phone"`
	Email         string             `json:"email"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"payment_method"`
	TotalAmount   int64              `json:"total_amount"`
	Entries       []CartEntryRequest `json:"entries"`
}

type PaymentDetails struct {
	TransactionID  string `json:"transaction_id"`
	PaymentLinkID  string `json:"payment_link_id"`
	QRPayload      string `json:"qr_payload"`
	CheckoutURL    string `json:"checkout_url,omitempty"`
	OriginalAmount int64  `json:"original_amount"`
	ProcessingFee  int64  `json:"processing_fee"`
	TotalAmount    int64  `json:"total_amount"`
}

type CheckoutResponse struct {
	OrderID     string          `json:"order_id"`
	OrderCode   string          `json:"order_code"`
	Status      string          `json:"status"`
	TotalAmount int64           `json:"total_amount"`
	Payment     *PaymentDetails `json:"payment,omitempty"`
}

// Sweeper reclaims expired holds; every checkout attempt runs it first so a
// stale hold can never be committed.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type CheckoutService struct {
	instanceRepo ports.InstanceRepository
	orderRepo    ports.OrderRepository
	gateway      ports.PaymentGateway
	sweeper      Sweeper
	clock        clock.Clock
	logger       *slog.Logger
}

func NewCheckoutService(
	instanceRepo ports.InstanceRepository,
	orderRepo ports.OrderRepository,
	gateway ports.PaymentGateway,
	sweeper Sweeper,
	clk clock.Clock,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		instanceRepo: instanceRepo,
		orderRepo:    orderRepo,
		gateway:      gateway,
		sweeper:      sweeper,
		clock:        clk,
		logger:       logger,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	method := domain.PaymentMethod(strings.ToUpper(req.PaymentMethod))
	if method != domain.PaymentCash && method != domain.PaymentOnline {
		return nil, domain.ErrInvalidMethod
	}

	if len(req.Entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	if _, err := s.sweeper.SweepExpired(ctx); err != nil {
		return nil, fmt.Errorf("pre-checkout sweep: %w", err)
	}

	now := s.clock.Now()
	orderID := uuid.New()

	lines, err := buildLines(orderID, req.Entries)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, line := range lines {
		total += line.Amount
	}
	if total <= 0 {
		return nil, domain.ErrInvalidTotal
	}
	if req.TotalAmount != total {
		return nil, fmt.Errorf("%w: submitted %d, computed %d", domain.ErrTotalMismatch, req.TotalAmount, total)
	}

	claimed, err := s.claimInstances(ctx, orderID, lines)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:           orderID,
		Code:         newOrderCode(now),
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Lines:        lines,
		CreatedAt:    now,
	}

	txn := &domain.Transaction{
		ID:             uuid.New(),
		OrderID:        orderID,
		Method:         method,
		Status:         domain.PaymentPending,
		OriginalAmount: total,
		TotalAmount:    total,
		CreatedAt:      now,
	}
	order.TransactionID = txn.ID

	if method == domain.PaymentCash {
		return s.finalizeCash(ctx, order, txn, claimed)
	}
	return s.finalizeOnline(ctx, order, txn, claimed)
}

// finalizeCash commits the claimed instances to RENTED together with the
// order and transaction writes; payment settles on delivery.
func (s *CheckoutService) finalizeCash(ctx context.Context, order *domain.Order, txn *domain.Transaction, claimed []uuid.UUID) (*CheckoutResponse, error) {
	order.Status = domain.OrderProcessing

	if err := s.orderRepo.CreateCashOrder(ctx, order, txn); err != nil {
		s.rollbackClaims(ctx, claimed)
		return nil, err
	}

	s.logger.Info("cash order created",
		"order_code", order.Code,
		"instances", len(claimed),
		"total", txn.TotalAmount,
	)

	return &CheckoutResponse{
		OrderID:     order.ID.String(),
		OrderCode:   order.Code,
		Status:      string(order.Status),
		TotalAmount: txn.TotalAmount,
	}, nil
}

// finalizeOnline requests a payment link and persists the order with its
// instances still RESERVED; reconciliation commits or releases them later.
// The hold TTL keeps running during payment.
func (s *CheckoutService) finalizeOnline(ctx context.Context, order *domain.Order, txn *domain.Transaction, claimed []uuid.UUID) (*CheckoutResponse, error) {
	order.Status = domain.OrderPending
	txn.ProcessingFee = OnlineProcessingFee
	txn.TotalAmount = txn.OriginalAmount + OnlineProcessingFee

	link, err := s.gateway.CreatePaymentLink(ctx, ports.CreatePaymentLinkInput{
		OrderCode:   order.Code,
		Amount:      txn.TotalAmount,
		Description: fmt.Sprintf("Rental order %s", order.Code),
	})
	if err != nil {
		// Holds stay intact so the customer can retry without losing their
		// place; only the checkout claim is undone.
		s.rollbackClaims(ctx, claimed)
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	txn.PaymentLinkID = link.ID

	if err := s.orderRepo.CreateOnlineOrder(ctx, order, txn); err != nil {
		s.rollbackClaims(ctx, claimed)
		return nil, err
	}

	s.logger.Info("online order created",
		"order_code", order.Code,
		"payment_link_id", link.ID,
		"total", txn.TotalAmount,
	)

	return &CheckoutResponse{
		OrderID:     order.ID.String(),
		OrderCode:   order.Code,
		Status:      string(order.Status),
		TotalAmount: txn.TotalAmount,
		Payment: &PaymentDetails{
			TransactionID:  txn.ID.String(),
			PaymentLinkID:  link.ID,
			QRPayload:      link.QRPayload,
			CheckoutURL:    link.CheckoutURL,
			OriginalAmount: txn.OriginalAmount,
			ProcessingFee:  txn.ProcessingFee,
			TotalAmount:    txn.TotalAmount,
		},
	}, nil
}

// claimInstances re-validates every referenced hold server-side and stamps it
// with the order id. The client-held cart is never trusted beyond the ids.
func (s *CheckoutService) claimInstances(ctx context.Context, orderID uuid.UUID, lines []domain.OrderLine) ([]uuid.UUID, error) {
	var invalid []string
	type target struct {
		id      uuid.UUID
		version int
		name    string
	}
	var targets []target

	for _, line := range lines {
		if line.ItemType != domain.ItemDress {
			continue
		}

		inst, err := s.instanceRepo.GetByID(ctx, *line.InstanceID)
		if err != nil || !inst.IsReserved() || inst.HeldByOrderID != nil {
			invalid = append(invalid, line.Name)
			continue
		}
		targets = append(targets, target{id: inst.ID, version: inst.Version, name: line.Name})
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrHoldExpired, strings.Join(invalid, ", "))
	}

	var claimed []uuid.UUID
	for _, t := range targets {
		if err := s.instanceRepo.ClaimForOrder(ctx, t.id, orderID, t.version); err != nil {
			s.rollbackClaims(ctx, claimed)
			return nil, fmt.Errorf("%w: %s", domain.ErrConflict, t.name)
		}
		claimed = append(claimed, t.id)
	}

	return claimed, nil
}

func (s *CheckoutService) rollbackClaims(ctx context.Context, instanceIDs []uuid.UUID) {
	for _, id := range instanceIDs {
		if err := s.instanceRepo.ReleaseClaim(ctx, id); err != nil {
			s.logger.Error("failed to release checkout claim", "instance_id", id.String(), "error", err)
		}
	}
}

func buildLines(orderID uuid.UUID, entries []CartEntryRequest) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(entries))

	for _, e := range entries {
		if e.UnitPrice <= 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTotal, e.Name)
		}

		line := domain.OrderLine{
			ID:        uuid.New(),
			OrderID:   orderID,
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
		}

		switch domain.ItemType(strings.ToUpper(e.ItemType)) {
		case domain.ItemDress:
			instanceID, err := uuid.Parse(e.InstanceID)
			if err != nil {
				return nil, fmt.Errorf("%w: instance id for %q", domain.ErrInvalidID, e.Name)
			}
			start, end, err := parseWindow(e.StartDate, e.EndDate)
			if err != nil {
				return nil, err
			}
			line.ItemType = domain.ItemDress
			line.InstanceID = &instanceID
			line.StartDate = &start
			line.EndDate = &end
			line.Amount = e.UnitPrice * int64(rentalDays(start, end))
		case domain.ItemVenue:
			start, end, err := parseWindow(e.StartDate, e.EndDate)
			if err != nil {
				return nil, err
			}
			line.ItemType = domain.ItemVenue
			line.StartDate = &start
			line.EndDate = &end
			line.Amount = e.UnitPrice * int64(rentalDays(start, end))
		case domain.ItemMakeup:
			// Flat fee, point-in-time service.
			line.ItemType = domain.ItemMakeup
			line.Amount = e.UnitPrice
			if e.StartDate != "" {
				at, err := time.Parse("2006-01-02", e.StartDate)
				if err != nil {
					return nil, fmt.Errorf("%w: appointment date for %q", domain.ErrInvalidWindow, e.Name)
				}
				line.StartDate = &at
			}
		default:
			return nil, fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidID, e.ItemType)
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// rentalDays counts calendar days inclusive of both endpoints.
func rentalDays(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func newOrderCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("LV-%s-%s", now.Format("20060102"), suffix)
}
