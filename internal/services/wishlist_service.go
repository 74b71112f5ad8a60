package services

import (
	"fmt"

	"github.com/saichennu440/Fresh-cuts/internal/models"
	"github.com/saichennu440/Fresh-cuts/internal/repositories"
)

// WishlistService handles business logic for the wishlist.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetWishlist retrieves a user's wishlist with products attached.
func (s *WishlistService) GetWishlist(userID string) ([]models.WishlistItem, error) {
	return s.wishlistRepo.GetByUserID(userID)
}

// AddToWishlist saves a product to the wishlist. Adding a product that is
// already there is a no-op.
func (s *WishlistService) AddToWishlist(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return fmt.Errorf("product %s not found: %w", productID, err)
	}

	exists, err := s.wishlistRepo.Contains(userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.wishlistRepo.Add(&models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	})
}

// RemoveFromWishlist removes a product from the wishlist.
func (s *WishlistService) RemoveFromWishlist(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}
