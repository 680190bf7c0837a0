package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(reservations *ReservationHandler, checkout *CheckoutHandler, payments *PaymentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/reservations", reservations.Reserve)
	r.Delete("/reservations/{instanceID}", reservations.Release)
	r.Post("/reservations/sweep", reservations.Sweep)
	r.Get("/models/{modelID}/instances/available", reservations.ListAvailable)

	r.Post("/checkout", checkout.Checkout)

	r.Get("/payments/{linkID}", payments.Status)
	r.Post("/payments/{linkID}/cancel", payments.Cancel)
	r.Post("/payments/webhook", payments.Webhook)

	return r
}
