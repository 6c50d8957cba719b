package models

import "time"

// CartItem is one product in a user's cart. The cart itself is just the
// set of items sharing a user_id; one row per (user, product).
type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    string  `gorm:"index:idx_cart_user_product,unique;not null" json:"user_id"`
	ProductID uint    `gorm:"index:idx_cart_user_product,unique;not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
