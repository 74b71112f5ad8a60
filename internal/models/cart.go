package models

import "time"

// CartItem is one product in a user's cart. The product association is
// loaded when the cart is read so checkout can snapshot prices from it.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_cart_user_product,unique"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index:idx_cart_user_product,unique"`
	Quantity  int       `json:"quantity"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}

// WishlistItem marks a product a user has saved for later.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index:idx_wishlist_user_product,unique"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index:idx_wishlist_user_product,unique"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at"`
}
