package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// countryCallingCode is prepended to numbers that arrive without it. The
// store ships within India only.
const countryCallingCode = "91"

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips every non-digit character and prepends the country
// calling code unless the digits already start with it. Normalizing an
// already-normalized number returns it unchanged.
func NormalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if strings.HasPrefix(digits, countryCallingCode) {
		return digits
	}
	return countryCallingCode + digits
}

// WhatsAppSender delivers a WhatsApp message to a digits-only,
// country-coded number and returns the provider's message identifier.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, toDigits, body string) (string, error)
}

// NotificationService forwards order notifications to the messaging
// provider. Callers that treat delivery as best-effort must log and swallow
// the returned error themselves.
type NotificationService struct {
	sender WhatsAppSender
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(sender WhatsAppSender) *NotificationService {
	return &NotificationService{
		sender: sender,
	}
}

// SendOrderConfirmation sends the fixed confirmation template for a newly
// paid order and returns the provider's message SID.
func (s *NotificationService) SendOrderConfirmation(ctx context.Context, phone, orderID string) (string, error) {
	if phone == "" || orderID == "" {
		return "", fmt.Errorf("both phone and orderId are required")
	}

	body := fmt.Sprintf(
		"FreshCuts Order Confirmed!\n\nYour order (%s) was successfully placed. We'll update you when it's out for delivery.",
		orderID,
	)
	return s.sender.SendWhatsApp(ctx, NormalizePhone(phone), body)
}

// SendStatusUpdate tells the customer their order moved to a new status.
func (s *NotificationService) SendStatusUpdate(ctx context.Context, phone, orderID, status string) (string, error) {
	if phone == "" || orderID == "" {
		return "", fmt.Errorf("both phone and orderId are required")
	}

	body := fmt.Sprintf("FreshCuts Order Update!\n\nYour order (%s) is now: %s.", orderID, status)
	return s.sender.SendWhatsApp(ctx, NormalizePhone(phone), body)
}
