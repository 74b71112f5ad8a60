package repositories

import (
	"github.com/saichennu440/Fresh-cuts/internal/models"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
