package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/services"
)

type PaymentHandler struct {
	svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Status is the bounded-poll verification path: it queries the gateway and
// funnels the observed status through reconciliation.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "linkID")

	resp, err := h.svc.CheckStatus(r.Context(), linkID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "linkID")

	resp, err := h.svc.Cancel(r.Context(), linkID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type webhookPayload struct {
	PaymentLinkID string `json:"payment_link_id"`
	Status        string `json:"status"`
}

// Webhook is the push path from the gateway. It shares the same idempotent
// reconciliation entry point as polling, so duplicate delivery is harmless.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "invalid json body")
		return
	}

	status := domain.GatewayStatus(payload.Status)
	switch status {
	case domain.GatewayPending, domain.GatewayPaid, domain.GatewayCancelled, domain.GatewayExpired:
	default:
		writeError(w, http.StatusBadRequest, "validation_error", "unknown payment status")
		return
	}

	resp, err := h.svc.Apply(r.Context(), payload.PaymentLinkID, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
