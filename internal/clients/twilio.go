package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTwilioBaseURL = "https://api.twilio.com"

// TwilioConfig holds the credentials for the messaging provider.
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string // e.g. "whatsapp:+14155238886"
	BaseURL      string // defaults to the public Twilio API
	Timeout      time.Duration
}

// TwilioClient sends WhatsApp messages via the Twilio REST API.
type TwilioClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewTwilioClient creates a new Twilio client.
func NewTwilioClient(cfg TwilioConfig) *TwilioClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultTwilioBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &TwilioClient{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.WhatsAppFrom,
		baseURL:    baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Message string `json:"message"` // error detail on failure
}

// SendWhatsApp delivers a WhatsApp message to the given digits-only,
// country-coded number and returns the provider's message SID.
func (c *TwilioClient) SendWhatsApp(ctx context.Context, toDigits, body string) (string, error) {
	form := url.Values{}
	form.Set("From", c.from)
	form.Set("To", fmt.Sprintf("whatsapp:+%s", toDigits))
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build Twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GatewayError{Provider: "twilio", Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var msg twilioMessageResponse
	if err := json.Unmarshal(respBody, &msg); err != nil && resp.StatusCode < 300 {
		return "", &GatewayError{Provider: "twilio", Detail: fmt.Sprintf("bad response body: %v", err)}
	}

	if resp.StatusCode >= 300 {
		detail := msg.Message
		if detail == "" {
			detail = fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody))
		}
		return "", &GatewayError{Provider: "twilio", Detail: detail}
	}
	if msg.SID == "" {
		return "", &GatewayError{Provider: "twilio", Detail: "response missing message sid"}
	}
	return msg.SID, nil
}
