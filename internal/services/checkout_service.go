package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/saichennu440/Fresh-cuts/internal/models"
	"github.com/saichennu440/Fresh-cuts/internal/pricing"
	"github.com/saichennu440/Fresh-cuts/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrEmptyCart is returned when checkout is attempted with nothing to buy.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidSignature is returned when a payment success callback carries a
// signature that does not verify against the gateway secret.
var ErrInvalidSignature = errors.New("payment signature verification failed")

// ErrOrderUpdateAfterCapture is returned when the gateway has captured the
// payment but recording it against the order failed. The money has moved;
// resolution is a manual follow-up, not a retry of the payment.
var ErrOrderUpdateAfterCapture = errors.New("payment succeeded but order update failed")

// ValidationError carries field-scoped messages for a rejected checkout
// form. It blocks submission but is fully user-correctable.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %d invalid field(s)", len(e.Fields))
}

// PaymentGateway is the slice of the payment provider the checkout flow
// needs: creating an order handle and verifying success signatures.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, orderID string) (string, error)
	VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

// StatusPublisher pushes order status events to the customer-facing feed.
// Delivery is at-most-once; publish failures are logged and swallowed.
type StatusPublisher interface {
	PublishOrderStatus(orderID, status string) error
}

// CheckoutRequest is the shipping form submitted at checkout.
type CheckoutRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required,phone10"`
	Address     string `json:"address" validate:"required"`
	Landmark    string `json:"landmark"`
	City        string `json:"city" validate:"required"`
	State       string `json:"state" validate:"required"`
	PostalCode  string `json:"postal_code" validate:"required,postalcode"`
	Country     string `json:"country"`
	AddressType string `json:"address_type" validate:"omitempty,oneof=home work other"`
	Email       string `json:"email" validate:"required,email"`
}

// ComposedAddress flattens the form fields into the single address string
// stored on the order.
func (r CheckoutRequest) ComposedAddress() string {
	parts := []string{r.Address}
	if r.Landmark != "" {
		parts = append(parts, r.Landmark)
	}
	parts = append(parts, r.City, r.State, r.PostalCode)
	if r.Country != "" {
		parts = append(parts, r.Country)
	}
	return strings.Join(parts, ", ")
}

// PaymentSession is what the payment UI needs to collect the payment.
type PaymentSession struct {
	OrderID         string          `json:"order_id"`
	RazorpayOrderID string          `json:"razorpay_order_id"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaise     int64           `json:"amount_paise"`
	Currency        string          `json:"currency"`
	KeyID           string          `json:"key_id"`
	PrefillName     string          `json:"prefill_name"`
	PrefillEmail    string          `json:"prefill_email"`
	PrefillContact  string          `json:"prefill_contact"`
}

var (
	phone10Pattern    = regexp.MustCompile(`^\d{10}$`)
	postalCodePattern = regexp.MustCompile(`^\d{5,6}$`)
)

// CheckoutService runs the order submission flow and handles payment
// outcomes.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	gateway   PaymentGateway
	notifier  *NotificationService
	publisher StatusPublisher
	validate  *validator.Validate
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	gateway PaymentGateway,
	notifier *NotificationService,
	publisher StatusPublisher,
) *CheckoutService {
	validate := validator.New()
	// These never return errors for non-nil functions.
	_ = validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phone10Pattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = validate.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
		return postalCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})

	return &CheckoutService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		gateway:   gateway,
		notifier:  notifier,
		publisher: publisher,
		validate:  validate,
	}
}

// ValidateRequest checks the shipping form and returns a *ValidationError
// with one message per failing field, or nil when the form is acceptable.
func (s *CheckoutService) ValidateRequest(req CheckoutRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			fields[e.Field()] = fmt.Sprintf("%s is required", e.Field())
		case "phone10":
			fields[e.Field()] = "Enter a valid 10-digit phone number"
		case "postalcode":
			fields[e.Field()] = "Enter a valid 5 or 6 digit postal code"
		case "email":
			fields[e.Field()] = "Enter a valid email"
		case "oneof":
			fields[e.Field()] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
		default:
			fields[e.Field()] = fmt.Sprintf("%s is invalid", e.Field())
		}
	}
	return &ValidationError{Fields: fields}
}

// Checkout validates the shipping form, persists the order header and its
// items atomically, requests a payment-gateway order handle, and returns
// the session the payment UI needs. Each step is a precondition for the
// next; any failure aborts the flow.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*PaymentSession, error) {
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]pricing.Line, 0, len(cart))
	items := make([]models.OrderItem, 0, len(cart))
	for _, ci := range cart {
		lines = append(lines, pricing.Line{
			ProductID:           ci.ProductID,
			UnitPrice:           ci.Product.Price,
			ShippingPrice:       ci.Product.ShippingPrice,
			PackingPrice:        ci.Product.PackingPrice,
			Quantity:            ci.Quantity,
			FreePackingPincodes: ci.Product.FreePackingPincodes,
		})
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Quantity:  ci.Quantity,
			Price:     ci.Product.Price, // snapshot, not re-read at payment time
		})
	}

	quote := pricing.Calculate(lines, strings.TrimSpace(req.PostalCode))

	order := &models.Order{
		CustomerName: req.Name,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      req.ComposedAddress(),
		AddressType:  req.AddressType,
		TotalAmount:  quote.GrandTotal,
		Status:       models.StatusPending,
		UserID:       userID,
		Items:        items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	amountPaise := pricing.Paise(quote.GrandTotal)
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, amountPaise, order.ID)
	if err != nil {
		// The Pending order remains on record; the user may retry the
		// whole flow.
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	return &PaymentSession{
		OrderID:         order.ID,
		RazorpayOrderID: gatewayOrderID,
		Amount:          quote.GrandTotal,
		AmountPaise:     amountPaise,
		Currency:        "INR",
		KeyID:           s.gateway.KeyID(),
		PrefillName:     req.Name,
		PrefillEmail:    req.Email,
		PrefillContact:  req.Phone,
	}, nil
}

// ConfirmPayment handles a successful payment callback: the signature is
// verified against the gateway secret before anything is trusted, then the
// order is marked Paid, the cart cleared, and a confirmation sent
// best-effort.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, orderID, paymentID, gatewayOrderID, signature string) error {
	if !s.gateway.VerifyPaymentSignature(gatewayOrderID, paymentID, signature) {
		return ErrInvalidSignature
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOrderUpdateAfterCapture, err)
	}

	if err := s.orderRepo.MarkPaid(orderID, paymentID); err != nil {
		// The gateway has the money; only our record is stale.
		return fmt.Errorf("%w: %v", ErrOrderUpdateAfterCapture, err)
	}

	if err := s.cartRepo.Clear(order.UserID); err != nil {
		log.Printf("Warning: failed to clear cart for user %s after payment: %v", order.UserID, err)
	}

	if _, err := s.notifier.SendOrderConfirmation(ctx, order.Phone, orderID); err != nil {
		log.Printf("Warning: order confirmation notification failed for order %s: %v", orderID, err)
	}

	if err := s.publisher.PublishOrderStatus(orderID, models.StatusPaid); err != nil {
		log.Printf("Warning: failed to publish status event for order %s: %v", orderID, err)
	}

	return nil
}

// FailPayment handles a failed payment callback. The order is marked Failed
// and the cart is left untouched so the user can retry.
func (s *CheckoutService) FailPayment(orderID string) error {
	if err := s.orderRepo.UpdateStatus(orderID, models.StatusFailed); err != nil {
		return fmt.Errorf("failed to mark order failed: %w", err)
	}

	if err := s.publisher.PublishOrderStatus(orderID, models.StatusFailed); err != nil {
		log.Printf("Warning: failed to publish status event for order %s: %v", orderID, err)
	}

	return nil
}
