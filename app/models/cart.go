package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is a user's single active shopping cart. Total is derived from live
// product prices on every mutation, not frozen. Version backs the optimistic
// concurrency check on cart writes.
type Cart struct {
	gorm.Model
	UserID  uint            `gorm:"not null;uniqueIndex" json:"user_id"`
	Total   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Version int             `gorm:"not null;default:1" json:"-"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// CartItem is one line of a cart.
type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint `gorm:"not null;index;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}
