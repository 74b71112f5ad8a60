package handlers

import (
	"errors"
	"log"

	"github.com/saichennu440/Fresh-cuts/internal/clients"
	"github.com/saichennu440/Fresh-cuts/internal/pricing"
	"github.com/saichennu440/Fresh-cuts/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// NotifyHandler exposes the notification relay and the payment-order proxy.
// Both endpoints keep their historic root-level paths for compatibility
// with existing clients.
type NotifyHandler struct {
	notificationService *services.NotificationService
	gateway             services.PaymentGateway
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(notificationService *services.NotificationService, gateway services.PaymentGateway) *NotifyHandler {
	return &NotifyHandler{
		notificationService: notificationService,
		gateway:             gateway,
	}
}

// RegisterRoutes registers the relay and proxy routes on the app root.
func (h *NotifyHandler) RegisterRoutes(app fiber.Router) {
	app.Post("/api/notify-whatsapp", h.HandleNotifyWhatsApp)
	app.Post("/create-razorpay-order", h.HandleCreateRazorpayOrder)
}

// NotifyWhatsAppRequest is the relay's request body.
type NotifyWhatsAppRequest struct {
	Phone   string `json:"phone"`
	OrderID string `json:"orderId"`
}

// HandleNotifyWhatsApp normalizes the phone number and forwards the order
// confirmation to the messaging provider.
func (h *NotifyHandler) HandleNotifyWhatsApp(c *fiber.Ctx) error {
	var req NotifyWhatsAppRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid JSON body.",
		})
	}

	if req.Phone == "" || req.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both `phone` and `orderId` must be supplied in the JSON body.",
		})
	}

	sid, err := h.notificationService.SendOrderConfirmation(c.Context(), req.Phone, req.OrderID)
	if err != nil {
		log.Printf("WhatsApp notify failed for order %s: %v", req.OrderID, err)
		detail := err.Error()
		var gwErr *clients.GatewayError
		if errors.As(err, &gwErr) {
			detail = gwErr.Detail
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to send WhatsApp message.",
			"details": detail,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"sid":     sid,
	})
}

// CreateRazorpayOrderRequest is the payment-order proxy's request body. The
// order field keeps its historic name from the managed-backend days.
type CreateRazorpayOrderRequest struct {
	SupabaseOrderID string          `json:"supabaseOrderId"`
	Amount          decimal.Decimal `json:"amount"`
}

// HandleCreateRazorpayOrder creates a payment-gateway order for the given
// rupee amount and returns the gateway's order handle.
func (h *NotifyHandler) HandleCreateRazorpayOrder(c *fiber.Ctx) error {
	var req CreateRazorpayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating Razorpay order",
		})
	}

	razorpayOrderID, err := h.gateway.CreateOrder(c.Context(), pricing.Paise(req.Amount), req.SupabaseOrderID)
	if err != nil {
		log.Printf("Error creating Razorpay order for %s: %v", req.SupabaseOrderID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating Razorpay order",
		})
	}

	return c.JSON(fiber.Map{
		"razorpayOrderId": razorpayOrderID,
	})
}
