package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the closed set of retail order states.
type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the closed status set.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot of a cart at checkout time. Item prices are
// frozen; orders are never deleted. PaymentExpiry is AES-GCM encrypted at
// rest; only the last four card digits are ever stored.
type Order struct {
	gorm.Model
	Number string      `gorm:"size:32;uniqueIndex;not null" json:"number"`
	UserID uint        `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"size:50;not null;default:processing;index" json:"status"`

	Total decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	// Shipping address.
	ShipName    string `gorm:"size:255" json:"ship_name"`
	ShipAddress string `gorm:"size:512" json:"ship_address"`
	ShipCity    string `gorm:"size:128" json:"ship_city"`
	ShipZip     string `gorm:"size:32" json:"ship_zip"`
	ShipCountry string `gorm:"size:128" json:"ship_country"`

	PaymentLast4  string `gorm:"size:4" json:"payment_last4"`
	PaymentExpiry string `gorm:"size:255" json:"-"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one frozen line of an order.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
