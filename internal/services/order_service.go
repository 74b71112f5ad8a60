package services

import (
	"context"
	"fmt"
	"log"

	"github.com/saichennu440/Fresh-cuts/internal/models"
	"github.com/saichennu440/Fresh-cuts/internal/repositories"
)

// OrderService handles order tracking and the admin status workflow.
type OrderService struct {
	orderRepo repositories.OrderRepository
	notifier  *NotificationService
	publisher StatusPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, notifier *NotificationService, publisher StatusPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders (admin view).
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves a user's own orders.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// UpdateOrderStatus applies an admin-selected status to an order. Any known
// status may follow any other; the transition graph is deliberately left
// unconstrained so operators can correct mistakes. The customer is told
// about the change best-effort, and a status event is published for the
// order feed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	if _, err := s.notifier.SendStatusUpdate(ctx, order.Phone, id, status); err != nil {
		log.Printf("Warning: status notification failed for order %s: %v", id, err)
	}

	if err := s.publisher.PublishOrderStatus(id, status); err != nil {
		log.Printf("Warning: failed to publish status event for order %s: %v", id, err)
	}

	return nil
}

// ResendConfirmation re-sends the order confirmation message. Used by the
// order-success page and the admin manual trigger; there is no
// deduplication, so repeated calls send repeated messages.
func (s *OrderService) ResendConfirmation(ctx context.Context, orderID string) (string, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order.Phone == "" {
		return "", fmt.Errorf("order %s has no phone number", orderID)
	}
	return s.notifier.SendOrderConfirmation(ctx, order.Phone, orderID)
}
