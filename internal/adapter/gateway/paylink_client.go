package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
	"github.com/lanvy-atelier/dress-rental/internal/core/ports"
)

// Client talks to the external payment-link provider over HTTP. Only the
// provider's external contract is consumed: create a payable link with a QR
// payload, query its status, cancel it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

var _ ports.PaymentGateway = (*Client)(nil)

type createLinkRequest struct {
	OrderCode   string `json:"order_code"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type createLinkResponse struct {
	PaymentLinkID string `json:"payment_link_id"`
	QRPayload     string `json:"qr_payload"`
	CheckoutURL   string `json:"checkout_url"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *Client) CreatePaymentLink(ctx context.Context, in ports.CreatePaymentLinkInput) (*domain.PaymentLink, error) {
	body, err := json.Marshal(createLinkRequest{
		OrderCode:   in.OrderCode,
		Amount:      in.Amount,
		Description: in.Description,
	})
	if err != nil {
		return nil, err
	}

	var resp createLinkResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payment-links", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}

	if resp.PaymentLinkID == "" {
		return nil, fmt.Errorf("%w: empty payment link id", domain.ErrGatewayUnavailable)
	}

	return &domain.PaymentLink{
		ID:          resp.PaymentLinkID,
		QRPayload:   resp.QRPayload,
		CheckoutURL: resp.CheckoutURL,
	}, nil
}

func (c *Client) GetPaymentStatus(ctx context.Context, paymentLinkID string) (domain.GatewayStatus, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payment-links/"+paymentLinkID, nil, &resp); err != nil {
		return "", err
	}

	switch status := domain.GatewayStatus(resp.Status); status {
	case domain.GatewayPending, domain.GatewayPaid, domain.GatewayCancelled, domain.GatewayExpired:
		return status, nil
	default:
		// An unrecognized status is a gateway fault, never a determination.
		return "", fmt.Errorf("%w: unparsable status %q", domain.ErrGatewayUnavailable, resp.Status)
	}
}

func (c *Client) CancelPaymentLink(ctx context.Context, paymentLinkID string) error {
	return c.do(ctx, http.MethodPost, "/v1/payment-links/"+paymentLinkID+"/cancel", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: gateway returned %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: unparsable response: %v", domain.ErrGatewayUnavailable, err)
	}

	return nil
}
