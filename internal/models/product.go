package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store.
//
// ShippingPrice and PackingPrice are charged per unit on top of the base
// price at checkout. Packing is waived for delivery pincodes listed in
// FreePackingPincodes.
type Product struct {
	ID                  string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name                string          `json:"name" validate:"required,min=3,max=100"`
	Description         string          `json:"description" validate:"omitempty,max=500"`
	Price               decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Category            string          `json:"category" validate:"omitempty,max=100"`
	ImageURL            string          `json:"image_url" validate:"omitempty,url"`
	IsFeatured          bool            `json:"is_featured"`
	ShippingPrice       decimal.Decimal `json:"shipping_price" gorm:"type:decimal(10,2)"`
	PackingPrice        decimal.Decimal `json:"packing_price" gorm:"type:decimal(10,2)"`
	FreePackingPincodes []string        `json:"free_packing_pincodes" gorm:"serializer:json"`
	Stock               int             `json:"stock" validate:"gte=0"`
	gorm.Model                          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
