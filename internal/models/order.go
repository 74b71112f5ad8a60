package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Pending and the payment outcomes (Paid/Failed) are set by
// the checkout flow; the fulfilment statuses are set by admins.
const (
	StatusPending        = "Pending"
	StatusPaid           = "Paid"
	StatusPacked         = "Packed"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusFailed         = "Failed"
)

// OrderStatuses lists every status an order may hold, in display order.
var OrderStatuses = []string{
	StatusPending,
	StatusPaid,
	StatusPacked,
	StatusOutForDelivery,
	StatusDelivered,
	StatusFailed,
}

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItem is a single line within an order. Price is a snapshot of the
// product's unit price at the time the order was placed and never changes
// afterwards, even if the catalog price does.
type OrderItem struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
}

// Order represents a customer order.
type Order struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerName string          `json:"customer_name"`
	Phone        string          `json:"phone" gorm:"type:varchar(20)"`
	Address      string          `json:"address"`
	AddressType  string          `json:"address_type" gorm:"type:varchar(10)"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	Status       string          `json:"status" gorm:"type:varchar(20);index"`
	PaymentID    *string         `json:"payment_id" gorm:"type:varchar(64)"`
	UserID       string          `json:"user_id" gorm:"type:varchar(36);index"`
	Items        []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
