package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanvy-atelier/dress-rental/internal/adapter/gateway"
	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports"
)

func TestCreatePaymentLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment-links", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "LV-20250601-ABC123", body["order_code"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"payment_link_id": "pl_123",
			"qr_payload":      "qr-data",
			"checkout_url":    "https://pay.example/pl_123",
		})
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, "test-key")

	link, err := client.CreatePaymentLink(context.Background(), ports.CreatePaymentLinkInput{
		OrderCode: "LV-20250601-ABC123",
		Amount:    320_000,
	})

	require.NoError(t, err)
	assert.Equal(t, "pl_123", link.ID)
	assert.Equal(t, "qr-data", link.QRPayload)
}

func TestGetPaymentStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.GatewayStatus
	}{
		{"PENDING", domain.GatewayPending},
		{"PAID", domain.GatewayPaid},
		{"CANCELLED", domain.GatewayCancelled},
		{"EXPIRED", domain.GatewayExpired},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/payment-links/pl_123", r.URL.Path)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": tc.raw})
			}))
			defer server.Close()

			client := gateway.NewClient(server.URL, "test-key")

			status, err := client.GetPaymentStatus(context.Background(), "pl_123")

			require.NoError(t, err)
			assert.Equal(t, tc.want, status)
		})
	}
}

func TestGetPaymentStatus_Unparsable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "MAYBE"})
	}))
	defer server.Close()

	client := gateway.NewClient(server.URL, "test-key")

	_, err := client.GetPaymentStatus(context.Background(), "pl_123")

	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestGatewayErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := gateway.NewClient(server.URL, "test-key")
		_, err := client.GetPaymentStatus(context.Background(), "pl_missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := gateway.NewClient(server.URL, "test-key")
		err := client.CancelPaymentLink(context.Background(), "pl_123")
		assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		client := gateway.NewClient("http://127.0.0.1:1", "test-key")
		_, err := client.GetPaymentStatus(context.Background(), "pl_123")
		assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	})
}
