package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports/mocks"
	"github.com/lanvy-atelier/dress-rental/internal/core/services"
	"github.com/lanvy-atelier/dress-rental/internal/platform/logging"
)

func pendingTransaction(linkID string) *domain.Transaction {
	return &domain.Transaction{
		ID:            uuid.New(),
		OrderID:       uuid.New(),
		Method:        domain.PaymentOnline,
		Status:        domain.PaymentPending,
		PaymentLinkID: linkID,
	}
}

func TestApply_PaidIsIdempotent(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, _ := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_123")

	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_123").Return(txn, nil).Twice()
	// First delivery commits; the repeat sees a settled transaction and
	// applies nothing.
	mockOrderRepo.On("SettlePaid", ctx, txn.ID, txn.OrderID).Return(true, nil).Once()
	mockOrderRepo.On("SettlePaid", ctx, txn.ID, txn.OrderID).Return(false, nil).Once()

	first, err := service.Apply(ctx, "pl_123", domain.GatewayPaid)
	assert.NoError(t, err)

	second, err := service.Apply(ctx, "pl_123", domain.GatewayPaid)
	assert.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, "Payment received", second.HumanStatus)
}

func TestApply_CancelledReleasesInstances(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, mockRedis := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_456")
	modelID := uuid.New()

	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_456").Return(txn, nil)
	mockOrderRepo.On("CancelUnpaid", ctx, txn.ID, txn.OrderID, domain.PaymentFailed).
		Return(true, []uuid.UUID{modelID}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("instances:%s", modelID.String())).SetVal(1)

	resp, err := service.Apply(ctx, "pl_456", domain.GatewayCancelled)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.GatewayCancelled), resp.Status)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestApply_ExpiredReleasesInstances(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, mockRedis := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_789")
	modelID := uuid.New()

	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_789").Return(txn, nil)
	mockOrderRepo.On("CancelUnpaid", ctx, txn.ID, txn.OrderID, domain.PaymentFailed).
		Return(true, []uuid.UUID{modelID}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("instances:%s", modelID.String())).SetVal(1)

	resp, err := service.Apply(ctx, "pl_789", domain.GatewayExpired)

	assert.NoError(t, err)
	assert.Equal(t, "Payment link expired", resp.HumanStatus)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestApply_PendingIsANoOp(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, _ := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_123")

	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_123").Return(txn, nil)

	resp, err := service.Apply(ctx, "pl_123", domain.GatewayPending)

	assert.NoError(t, err)
	assert.Equal(t, "Awaiting payment", resp.HumanStatus)
}

func TestApply_UnknownLink(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, _ := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	mockOrderRepo.On("GetTransactionByPaymentLink", context.Background(), "pl_missing").
		Return(nil, domain.ErrNotFound)

	_, err := service.Apply(context.Background(), "pl_missing", domain.GatewayPaid)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckStatus_TransientGatewayError(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, _ := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	gatewayErr := fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, errors.New("timeout"))

	mockGateway.On("GetPaymentStatus", ctx, "pl_123").Return(domain.GatewayStatus(""), gatewayErr)

	// A transport failure is never read as CANCELLED: no repo call happens.
	_, err := service.CheckStatus(ctx, "pl_123")

	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestCancel_SynchronousRelease(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, mockRedis := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_123")
	modelID := uuid.New()

	mockGateway.On("CancelPaymentLink", ctx, "pl_123").Return(nil)
	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_123").Return(txn, nil)
	mockOrderRepo.On("CancelUnpaid", ctx, txn.ID, txn.OrderID, domain.PaymentFailed).
		Return(true, []uuid.UUID{modelID}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("instances:%s", modelID.String())).SetVal(1)

	resp, err := service.Cancel(ctx, "pl_123")

	assert.NoError(t, err)
	assert.Equal(t, string(domain.GatewayCancelled), resp.Status)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestApply_SettleAfterHoldLost(t *testing.T) {
	mockOrderRepo := mocks.NewOrderRepository(t)
	mockGateway := mocks.NewPaymentGateway(t)
	cache, _ := redismock.NewClientMock()

	service := services.NewPaymentService(mockOrderRepo, mockGateway, cache, logging.New())

	ctx := context.Background()
	txn := pendingTransaction("pl_123")

	mockOrderRepo.On("GetTransactionByPaymentLink", ctx, "pl_123").Return(txn, nil)
	// The hold was swept mid-payment: the commit rolls back entirely.
	mockOrderRepo.On("SettlePaid", ctx, txn.ID, txn.OrderID).Return(false, domain.ErrHoldExpired)

	_, err := service.Apply(ctx, "pl_123", domain.GatewayPaid)

	assert.ErrorIs(t, err, domain.ErrHoldExpired)
}
