package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lanvy-atelier/dress-rental/internal/core/services"
)

type ReservationHandler struct {
	svc *services.ReservationService
}

func NewReservationHandler(svc *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req services.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "invalid json body")
		return
	}

	resp, err := h.svc.Reserve(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) Release(w http.ResponseWriter, r *http.Request) {
	instanceID := chi.URLParam(r, "instanceID")

	if err := h.svc.Release(r.Context(), instanceID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"released": true})
}

func (h *ReservationHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.SweepExpired(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"released_count": count})
}

func (h *ReservationHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	modelID := chi.URLParam(r, "modelID")

	instances, err := h.svc.ListAvailable(r.Context(), modelID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"instances": instances})
}
