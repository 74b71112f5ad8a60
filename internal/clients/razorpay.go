package clients

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

// GatewayError wraps a failure returned by an external provider. Handlers
// map it to a 502 with the provider's detail attached for diagnosis.
type GatewayError struct {
	Provider string
	Detail   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway error: %s", e.Provider, e.Detail)
}

// RazorpayConfig holds the credentials for the payment gateway.
type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	BaseURL   string // defaults to the public Razorpay API
	Timeout   time.Duration
}

// RazorpayClient creates payment-gateway orders and verifies payment
// signatures via the Razorpay REST API.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// NewRazorpayClient creates a new Razorpay client.
func NewRazorpayClient(cfg RazorpayConfig) *RazorpayClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultRazorpayBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RazorpayClient{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// KeyID returns the public key ID the payment UI needs.
func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder requests a gateway order handle for the given amount in paise,
// tagged with a receipt derived from the store's order ID.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64, orderID string) (string, error) {
	body, err := json.Marshal(razorpayOrderRequest{
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  fmt.Sprintf("receipt_%s", orderID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal Razorpay order request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/orders", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build Razorpay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GatewayError{Provider: "razorpay", Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &GatewayError{
			Provider: "razorpay",
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return "", &GatewayError{Provider: "razorpay", Detail: fmt.Sprintf("bad response body: %v", err)}
	}
	if orderResp.ID == "" {
		return "", &GatewayError{Provider: "razorpay", Detail: "response missing order id"}
	}
	return orderResp.ID, nil
}

// VerifyPaymentSignature checks the HMAC-SHA256 signature Razorpay sends
// with a successful payment: hex(HMAC(keySecret, orderID + "|" + paymentID)).
func (c *RazorpayClient) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
