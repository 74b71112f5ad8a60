package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saichennu440/Fresh-cuts/internal/models"
	"github.com/saichennu440/Fresh-cuts/internal/repositories"
	"github.com/saichennu440/Fresh-cuts/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentGateway is a mock implementation of services.PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, orderID string) (string, error) {
	args := m.Called(ctx, amountPaise, orderID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	args := m.Called(gatewayOrderID, paymentID, signature)
	return args.Bool(0)
}

func (m *MockPaymentGateway) KeyID() string {
	return "rzp_test_key"
}

// MockStatusPublisher is a mock implementation of services.StatusPublisher.
type MockStatusPublisher struct {
	mock.Mock
}

func (m *MockStatusPublisher) PublishOrderStatus(orderID, status string) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func validCheckoutRequest() services.CheckoutRequest {
	return services.CheckoutRequest{
		Name:        "Asha Rao",
		Phone:       "8184932229",
		Address:     "12 MG Road",
		Landmark:    "Opp. Clock Tower",
		City:        "Hyderabad",
		State:       "Telangana",
		PostalCode:  "500001",
		Country:     "India",
		AddressType: "home",
		Email:       "asha@example.com",
	}
}

// seedCart loads the two-product cart from the pricing contract: A at 200x2
// with shipping 20 and packing 10, B at 150x1 with packing 5 waived for
// pincode 500001.
func seedCart(t *testing.T, cartRepo *repositories.MockCartRepository, userID string) {
	t.Helper()

	productA := models.Product{
		ID:            "prod-a",
		Name:          "Chicken Curry Cut",
		Price:         dec("200"),
		ShippingPrice: dec("20"),
		PackingPrice:  dec("10"),
	}
	productB := models.Product{
		ID:                  "prod-b",
		Name:                "Mutton Boneless",
		Price:               dec("150"),
		PackingPrice:        dec("5"),
		FreePackingPincodes: []string{"500001"},
	}

	require.NoError(t, cartRepo.Add(&models.CartItem{UserID: userID, ProductID: "prod-a", Quantity: 2, Product: productA}))
	require.NoError(t, cartRepo.Add(&models.CartItem{UserID: userID, ProductID: "prod-b", Quantity: 1, Product: productB}))
}

func newCheckoutFixture() (*services.CheckoutService, *repositories.MockOrderRepository, *repositories.MockCartRepository, *MockPaymentGateway, *MockWhatsAppSender, *MockStatusPublisher) {
	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	gateway := new(MockPaymentGateway)
	sender := new(MockWhatsAppSender)
	publisher := new(MockStatusPublisher)
	svc := services.NewCheckoutService(orderRepo, cartRepo, gateway, services.NewNotificationService(sender), publisher)
	return svc, orderRepo, cartRepo, gateway, sender, publisher
}

func TestCheckoutService_ValidateRequest(t *testing.T) {
	svc, _, _, _, _, _ := newCheckoutFixture()

	t.Run("valid form passes", func(t *testing.T) {
		assert.NoError(t, svc.ValidateRequest(validCheckoutRequest()))
	})

	tests := []struct {
		name   string
		mutate func(*services.CheckoutRequest)
		field  string
	}{
		{"missing name", func(r *services.CheckoutRequest) { r.Name = "" }, "Name"},
		{"short phone", func(r *services.CheckoutRequest) { r.Phone = "12345" }, "Phone"},
		{"long phone", func(r *services.CheckoutRequest) { r.Phone = "123456789012" }, "Phone"},
		{"non numeric phone", func(r *services.CheckoutRequest) { r.Phone = "abcdefghij" }, "Phone"},
		{"missing address", func(r *services.CheckoutRequest) { r.Address = "" }, "Address"},
		{"missing city", func(r *services.CheckoutRequest) { r.City = "" }, "City"},
		{"missing state", func(r *services.CheckoutRequest) { r.State = "" }, "State"},
		{"short postal code", func(r *services.CheckoutRequest) { r.PostalCode = "1234" }, "PostalCode"},
		{"long postal code", func(r *services.CheckoutRequest) { r.PostalCode = "1234567" }, "PostalCode"},
		{"bad email", func(r *services.CheckoutRequest) { r.Email = "not-an-email" }, "Email"},
		{"bad address type", func(r *services.CheckoutRequest) { r.AddressType = "office" }, "AddressType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckoutRequest()
			tt.mutate(&req)

			err := svc.ValidateRequest(req)
			require.Error(t, err)

			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Fields, tt.field)
		})
	}

	t.Run("postal code of five digits passes", func(t *testing.T) {
		req := validCheckoutRequest()
		req.PostalCode = "12345"
		assert.NoError(t, svc.ValidateRequest(req))
	})
}

func TestCheckoutService_CheckoutSuccess(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, _, _ := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	// 550 subtotal + 40 shipping + 20 packing = 610 rupees = 61000 paise.
	gateway.On("CreateOrder", mock.Anything, int64(61000), mock.AnythingOfType("string")).
		Return("order_rzp_123", nil).Once()

	session, err := svc.Checkout(context.Background(), "user-1", validCheckoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "order_rzp_123", session.RazorpayOrderID)
	assert.True(t, dec("610").Equal(session.Amount), "amount = %s", session.Amount)
	assert.Equal(t, int64(61000), session.AmountPaise)
	assert.Equal(t, "INR", session.Currency)
	assert.Equal(t, "rzp_test_key", session.KeyID)
	assert.Equal(t, "Asha Rao", session.PrefillName)
	assert.Equal(t, "8184932229", session.PrefillContact)

	order, err := orderRepo.GetByID(session.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, dec("610").Equal(order.TotalAmount))
	assert.Equal(t, "user-1", order.UserID)
	assert.Nil(t, order.PaymentID)
	assert.Contains(t, order.Address, "12 MG Road")
	assert.Contains(t, order.Address, "500001")
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		switch item.ProductID {
		case "prod-a":
			assert.Equal(t, 2, item.Quantity)
			assert.True(t, dec("200").Equal(item.Price))
		case "prod-b":
			assert.Equal(t, 1, item.Quantity)
			assert.True(t, dec("150").Equal(item.Price))
		default:
			t.Fatalf("unexpected item product %s", item.ProductID)
		}
	}

	// The cart is only cleared on payment success, not at submission.
	cart, err := cartRepo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Len(t, cart, 2)

	gateway.AssertExpectations(t)
}

func TestCheckoutService_CheckoutEmptyCart(t *testing.T) {
	svc, _, _, gateway, _, _ := newCheckoutFixture()

	_, err := svc.Checkout(context.Background(), "user-1", validCheckoutRequest())
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_CheckoutPersistFailureIsAtomic(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, _, _ := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	orderRepo.CreateErr = errors.New("connection reset mid-insert")

	_, err := svc.Checkout(context.Background(), "user-1", validCheckoutRequest())
	require.Error(t, err)

	// Nothing was persisted: no order header, and therefore no item can
	// reference a nonexistent order.
	orders, err := orderRepo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, orders)

	// The payment gateway must never see an order that was not stored.
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_CheckoutGatewayFailure(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, _, _ := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("razorpay gateway error: status 503")).Once()

	_, err := svc.Checkout(context.Background(), "user-1", validCheckoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create payment order")

	// The Pending order stays on record for the retry.
	orders, err := orderRepo.GetAll()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusPending, orders[0].Status)

	gateway.AssertExpectations(t)
}

func TestCheckoutService_ConfirmPaymentSuccess(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, sender, publisher := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	order := &models.Order{
		CustomerName: "Asha Rao",
		Phone:        "8184932229",
		Status:       models.StatusPending,
		UserID:       "user-1",
		TotalAmount:  dec("610"),
	}
	require.NoError(t, orderRepo.Create(order))

	gateway.On("VerifyPaymentSignature", "order_rzp_123", "pay_456", "sig").Return(true).Once()
	sender.On("SendWhatsApp", mock.Anything, "918184932229", mock.Anything).Return("SM1", nil).Once()
	publisher.On("PublishOrderStatus", order.ID, models.StatusPaid).Return(nil).Once()

	err := svc.ConfirmPayment(context.Background(), order.ID, "pay_456", "order_rzp_123", "sig")
	require.NoError(t, err)

	updated, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.Status)
	require.NotNil(t, updated.PaymentID)
	assert.Equal(t, "pay_456", *updated.PaymentID)

	cart, err := cartRepo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Empty(t, cart, "payment success must clear the cart")

	gateway.AssertExpectations(t)
	sender.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCheckoutService_ConfirmPaymentBestEffortNotification(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, sender, publisher := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	order := &models.Order{Phone: "8184932229", Status: models.StatusPending, UserID: "user-1"}
	require.NoError(t, orderRepo.Create(order))

	gateway.On("VerifyPaymentSignature", mock.Anything, mock.Anything, mock.Anything).Return(true).Once()
	sender.On("SendWhatsApp", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("twilio gateway error: timeout")).Once()
	publisher.On("PublishOrderStatus", order.ID, models.StatusPaid).Return(nil).Once()

	// A notification failure must not fail the payment confirmation.
	err := svc.ConfirmPayment(context.Background(), order.ID, "pay_456", "order_rzp_123", "sig")
	require.NoError(t, err)

	updated, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.Status)
}

func TestCheckoutService_ConfirmPaymentRejectsBadSignature(t *testing.T) {
	svc, orderRepo, cartRepo, gateway, sender, _ := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	order := &models.Order{Phone: "8184932229", Status: models.StatusPending, UserID: "user-1"}
	require.NoError(t, orderRepo.Create(order))

	gateway.On("VerifyPaymentSignature", "order_rzp_123", "pay_456", "forged").Return(false).Once()

	err := svc.ConfirmPayment(context.Background(), order.ID, "pay_456", "order_rzp_123", "forged")
	assert.ErrorIs(t, err, services.ErrInvalidSignature)

	// Nothing changed: order still Pending, cart intact, no notification.
	updated, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)
	assert.Nil(t, updated.PaymentID)

	cart, err := cartRepo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Len(t, cart, 2)

	sender.AssertNotCalled(t, "SendWhatsApp", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_ConfirmPaymentUpdateFailureAfterCapture(t *testing.T) {
	svc, _, _, gateway, _, _ := newCheckoutFixture()

	gateway.On("VerifyPaymentSignature", mock.Anything, mock.Anything, mock.Anything).Return(true).Once()

	// The order does not exist, so the post-capture update cannot land.
	err := svc.ConfirmPayment(context.Background(), "missing-order", "pay_456", "order_rzp_123", "sig")
	assert.ErrorIs(t, err, services.ErrOrderUpdateAfterCapture)
}

func TestCheckoutService_FailPayment(t *testing.T) {
	svc, orderRepo, cartRepo, _, sender, publisher := newCheckoutFixture()
	seedCart(t, cartRepo, "user-1")

	order := &models.Order{Phone: "8184932229", Status: models.StatusPending, UserID: "user-1"}
	require.NoError(t, orderRepo.Create(order))

	publisher.On("PublishOrderStatus", order.ID, models.StatusFailed).Return(nil).Once()

	require.NoError(t, svc.FailPayment(order.ID))

	updated, err := orderRepo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, updated.Status)
	assert.Nil(t, updated.PaymentID)

	// A failed payment never clears the cart.
	cart, err := cartRepo.GetByUserID("user-1")
	require.NoError(t, err)
	assert.Len(t, cart, 2)

	sender.AssertNotCalled(t, "SendWhatsApp", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertExpectations(t)
}
