package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/saichennu440/Fresh-cuts/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	items map[string]models.CartItem // keyed by userID+"/"+productID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

func cartKey(userID, productID string) string {
	return userID + "/" + productID
}

// GetByUserID returns a user's cart items.
func (r *MockCartRepository) GetByUserID(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Get returns a single cart line.
func (r *MockCartRepository) Get(userID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[cartKey(userID, productID)]
	if !ok {
		return nil, fmt.Errorf("cart item for product %s not found", productID)
	}
	return &item, nil
}

// Add inserts a new cart line.
func (r *MockCartRepository) Add(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	r.items[cartKey(item.UserID, item.ProductID)] = *item
	return nil
}

// UpdateQuantity sets the quantity of an existing cart line.
func (r *MockCartRepository) UpdateQuantity(userID, productID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(userID, productID)
	item, ok := r.items[key]
	if !ok {
		return fmt.Errorf("cart item for product %s not found for update", productID)
	}
	item.Quantity = quantity
	r.items[key] = item
	return nil
}

// Remove deletes a cart line.
func (r *MockCartRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(userID, productID)
	if _, ok := r.items[key]; !ok {
		return fmt.Errorf("cart item for product %s not found for removal", productID)
	}
	delete(r.items, key)
	return nil
}

// Clear deletes all of a user's cart lines.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.UserID == userID {
			delete(r.items, key)
		}
	}
	return nil
}

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	items map[string]models.WishlistItem
	mu    sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		items: make(map[string]models.WishlistItem),
	}
}

// GetByUserID returns a user's wishlist items.
func (r *MockWishlistRepository) GetByUserID(userID string) ([]models.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.WishlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// Add inserts a wishlist entry.
func (r *MockWishlistRepository) Add(item *models.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	r.items[cartKey(item.UserID, item.ProductID)] = *item
	return nil
}

// Remove deletes a wishlist entry.
func (r *MockWishlistRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey(userID, productID)
	if _, ok := r.items[key]; !ok {
		return fmt.Errorf("wishlist item for product %s not found for removal", productID)
	}
	delete(r.items, key)
	return nil
}

// Contains reports whether the user's wishlist has the product.
func (r *MockWishlistRepository) Contains(userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[cartKey(userID, productID)]
	return ok, nil
}
