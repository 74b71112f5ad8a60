package services

import (
	"fmt"

	"github.com/saichennu440/Fresh-cuts/internal/models"
	"github.com/saichennu440/Fresh-cuts/internal/repositories"
)

// CartService handles business logic for the shopping cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves a user's cart with products attached.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUserID(userID)
}

// AddToCart adds a product to the cart, or bumps the quantity if the
// product is already there.
func (s *CartService) AddToCart(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	if _, err := s.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("product %s not found: %w", productID, err)
	}

	existing, err := s.cartRepo.Get(userID, productID)
	if err == nil && existing != nil {
		return s.cartRepo.UpdateQuantity(userID, productID, existing.Quantity+quantity)
	}

	return s.cartRepo.Add(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *CartService) UpdateQuantity(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.Remove(userID, productID)
	}
	return s.cartRepo.UpdateQuantity(userID, productID, quantity)
}

// RemoveFromCart removes a product from the cart.
func (s *CartService) RemoveFromCart(userID, productID string) error {
	return s.cartRepo.Remove(userID, productID)
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.Clear(userID)
}
