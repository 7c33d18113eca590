package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/config"
)

// PaymentGateway creates hosted-redirect payments with an external
// provider. The provider later reports settlement through the webhook.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error)
}

// Amount is a provider money value: a "12990.00"-style decimal string
// plus a currency code.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// RubAmount formats whole rubles the way the provider expects.
func RubAmount(rubles int64) Amount {
	return Amount{Value: fmt.Sprintf("%d.00", rubles), Currency: "RUB"}
}

// Confirmation carries the hosted payment page details.
type Confirmation struct {
	Type            string `json:"type"`
	ReturnURL       string `json:"return_url,omitempty"`
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// ReceiptCustomer identifies the buyer on the fiscal receipt.
type ReceiptCustomer struct {
	Email string `json:"email"`
}

// ReceiptItem is one fiscal receipt line.
type ReceiptItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Amount      Amount `json:"amount"`
	VATCode     int    `json:"vat_code"`
}

// Receipt is the fiscal receipt attached to a payment.
type Receipt struct {
	Customer ReceiptCustomer `json:"customer"`
	Items    []ReceiptItem   `json:"items"`
}

// CreatePaymentRequest is the provider create-payment body.
type CreatePaymentRequest struct {
	Amount       Amount            `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation Confirmation      `json:"confirmation"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Receipt      *Receipt          `json:"receipt,omitempty"`
}

// Payment is the provider's payment object, as returned by the create
// call and as embedded in webhook events.
type Payment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Paid         bool              `json:"paid"`
	Amount       Amount            `json:"amount"`
	Confirmation *Confirmation     `json:"confirmation,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// WebhookEvent is the provider's notification envelope.
type WebhookEvent struct {
	Type   string  `json:"type"`
	Event  string  `json:"event"`
	Object Payment `json:"object"`
}

// YooKassaClient implements PaymentGateway against the YooKassa v3 API.
type YooKassaClient struct {
	baseURL    string
	shopID     string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ PaymentGateway = (*YooKassaClient)(nil)

// NewYooKassaClient creates a new YooKassa API client. The HTTP timeout
// bounds every outbound call; a slow provider fails the request instead
// of hanging it.
func NewYooKassaClient(cfg config.YooKassaConfig, logger *slog.Logger) *YooKassaClient {
	return &YooKassaClient{
		baseURL:   cfg.BaseURL,
		shopID:    cfg.ShopID,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreatePayment creates a redirect payment with the provider.
func (c *YooKassaClient) CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*Payment, error) {
	c.logger.Debug("creating payment",
		"amount", req.Amount.Value, "description", req.Description)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/payments", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.SetBasicAuth(c.shopID, c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")
	// The provider deduplicates create calls on this key.
	httpReq.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("payment request failed", "error", err)
		return nil, apperrors.NewUpstreamError("yookassa", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error("payment request returned error", "status_code", resp.StatusCode)
		return nil, apperrors.NewUpstreamError("yookassa",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, apperrors.NewUpstreamError("yookassa", err)
	}

	c.logger.Info("payment created", "payment_id", payment.ID, "status", payment.Status)
	return &payment, nil
}
