package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lanvy-atelier/dress-rental/internal/adapter/handler"
	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports/mocks"
	"github.com/lanvy-atelier/dress-rental/internal/core/services"
	"github.com/lanvy-atelier/dress-rental/internal/platform/clock"
	"github.com/lanvy-atelier/dress-rental/internal/platform/logging"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func buildRouter(instanceRepo *mocks.InstanceRepository, orderRepo *mocks.OrderRepository, gw *mocks.PaymentGateway) (http.Handler, redismock.ClientMock) {
	cache, mockRedis := redismock.NewClientMock()
	logger := logging.New()
	clk := clock.NewFixed(testNow)

	reservationSvc := services.NewReservationService(instanceRepo, cache, clk, logger)
	checkoutSvc := services.NewCheckoutService(instanceRepo, orderRepo, gw, reservationSvc, clk, logger)
	paymentSvc := services.NewPaymentService(orderRepo, gw, cache, logger)

	router := handler.NewRouter(
		handler.NewReservationHandler(reservationSvc),
		handler.NewCheckoutHandler(checkoutSvc),
		handler.NewPaymentHandler(paymentSvc),
	)
	return router, mockRedis
}

func TestReserveEndpoint_Created(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, mockRedis := buildRouter(instanceRepo, orderRepo, gw)

	modelID := uuid.New()
	instanceID := uuid.New()

	instanceRepo.On("ReserveOldestAvailable", mock.Anything, modelID, mock.Anything, mock.Anything, testNow).
		Return(&domain.DressInstance{ID: instanceID, ModelID: modelID, Status: domain.InstanceReserved, Version: 2}, nil)
	mockRedis.ExpectDel(fmt.Sprintf("instances:%s", modelID.String())).SetVal(1)

	body := fmt.Sprintf(`{"model_id":%q,"start_date":"2025-06-01","end_date":"2025-06-03"}`, modelID.String())
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), instanceID.String())
}

func TestReserveEndpoint_OutOfStock(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, _ := buildRouter(instanceRepo, orderRepo, gw)

	modelID := uuid.New()
	instanceRepo.On("ReserveOldestAvailable", mock.Anything, modelID, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrOutOfStock)

	body := fmt.Sprintf(`{"model_id":%q,"start_date":"2025-06-01","end_date":"2025-06-03"}`, modelID.String())
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "out_of_stock")
}

func TestReleaseEndpoint_InvalidID(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, _ := buildRouter(instanceRepo, orderRepo, gw)

	req := httptest.NewRequest(http.MethodDelete, "/reservations/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestSweepEndpoint(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, _ := buildRouter(instanceRepo, orderRepo, gw)

	instanceRepo.On("ReleaseExpired", mock.Anything, testNow.Add(-services.HoldTTL)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/reservations/sweep", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"released_count":0`)
}

func TestWebhookEndpoint_RejectsUnknownStatus(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, _ := buildRouter(instanceRepo, orderRepo, gw)

	body := `{"payment_link_id":"pl_123","status":"MAYBE"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookEndpoint_Paid(t *testing.T) {
	instanceRepo := mocks.NewInstanceRepository(t)
	orderRepo := mocks.NewOrderRepository(t)
	gw := mocks.NewPaymentGateway(t)

	router, _ := buildRouter(instanceRepo, orderRepo, gw)

	txn := &domain.Transaction{
		ID:            uuid.New(),
		OrderID:       uuid.New(),
		Method:        domain.PaymentOnline,
		Status:        domain.PaymentPending,
		PaymentLinkID: "pl_123",
	}

	orderRepo.On("GetTransactionByPaymentLink", mock.Anything, "pl_123").Return(txn, nil)
	orderRepo.On("SettlePaid", mock.Anything, txn.ID, txn.OrderID).Return(true, nil)

	body := `{"payment_link_id":"pl_123","status":"PAID"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Payment received")
}
