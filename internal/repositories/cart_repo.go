package repositories

import "github.com/saichennu440/Fresh-cuts/internal/models"

// CartRepository defines the interface for cart data access. Items are
// returned with their product association loaded so callers can snapshot
// prices without a second read.
type CartRepository interface {
	GetByUserID(userID string) ([]models.CartItem, error)
	Get(userID, productID string) (*models.CartItem, error)
	Add(item *models.CartItem) error
	UpdateQuantity(userID, productID string, quantity int) error
	Remove(userID, productID string) error
	Clear(userID string) error
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	GetByUserID(userID string) ([]models.WishlistItem, error)
	Add(item *models.WishlistItem) error
	Remove(userID, productID string) error
	Contains(userID, productID string) (bool, error)
}
