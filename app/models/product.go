package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalogue item. Stock is never persisted negative;
// checkout clamps decrements at zero.
type Product struct {
	gorm.Model
	Name         string          `gorm:"size:255;not null;index" json:"name"`
	SKU          string          `gorm:"size:100;uniqueIndex" json:"sku"`
	Description  string          `gorm:"type:text" json:"description"`
	Category     string          `gorm:"size:100;index" json:"category"`
	Brand        string          `gorm:"size:100" json:"brand"`
	Color        string          `gorm:"size:50" json:"color"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	RegularPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"regular_price"`
	Stock        int             `gorm:"not null;default:0" json:"stock"`
	SoldCount    int             `gorm:"not null;default:0" json:"sold_count"`

	Images  []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	Ratings []Rating       `gorm:"constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
}

// ProductImage is one entry of a product's ordered image list.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	URL       string `gorm:"size:1024;not null" json:"url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

// Rating is a single user's rating of a product. One per user per product.
type Rating struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_rating_user_product" json:"user_id"`
	Stars     int       `gorm:"not null" json:"stars"`
	Review    string    `gorm:"type:text" json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AverageRating computes the mean star value of the loaded ratings.
// Returns 0 when the product has no ratings.
func (p *Product) AverageRating() float64 {
	if len(p.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Ratings {
		sum += r.Stars
	}
	return float64(sum) / float64(len(p.Ratings))
}
