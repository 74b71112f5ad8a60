package repositories

import (
	"github.com/saichennu440/Fresh-cuts/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// Create must persist the order header and all its items atomically: a
// caller must never observe items referencing an order that was not saved.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	MarkPaid(id string, paymentID string) error
	// Orders are never deleted by the application.
}
