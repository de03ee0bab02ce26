// Package resources transforms models into their public API shapes.
package resources

import (
	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/collection"
)

// ProductResource is the public shape of a product.
type ProductResource struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	SKU           string   `json:"sku"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Color         string   `json:"color,omitempty"`
	Price         string   `json:"price"`
	RegularPrice  string   `json:"regular_price,omitempty"`
	Stock         int      `json:"stock"`
	SoldCount     int      `json:"sold_count"`
	Images        []string `json:"images"`
	AverageRating float64  `json:"average_rating"`
	RatingCount   int      `json:"rating_count"`
}

// NewProduct maps a product model to its resource.
func NewProduct(p models.Product) ProductResource {
	images := collection.Map(p.Images, func(img models.ProductImage) string { return img.URL })
	if images == nil {
		images = []string{}
	}

	res := ProductResource{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Color:         p.Color,
		Price:         p.Price.StringFixed(2),
		Stock:         p.Stock,
		SoldCount:     p.SoldCount,
		Images:        images,
		AverageRating: p.AverageRating(),
		RatingCount:   len(p.Ratings),
	}
	if !p.RegularPrice.IsZero() {
		res.RegularPrice = p.RegularPrice.StringFixed(2)
	}
	return res
}

// NewProductList maps a slice of products.
func NewProductList(products []models.Product) []ProductResource {
	return collection.Map(products, NewProduct)
}
