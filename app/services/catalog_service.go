package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/cache"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/event"
	"github.com/pawmart/pawmart/pkg/metrics"
)

const productCacheTTL = 5 * time.Minute

func productCacheKey(id uint) string { return fmt.Sprintf("pawmart:product:%d", id) }

// CatalogService manages products, images and ratings. Single-product reads
// go through a redis read-through cache that is invalidated on every write.
type CatalogService struct {
	products *repositories.ProductRepository
}

func NewCatalogService(products *repositories.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ProductInput is the payload for product create/update.
type ProductInput struct {
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	SKU          string   `json:"sku" validate:"required,alpha_dash,max=100"`
	Description  string   `json:"description" validate:"nullable,max=10000"`
	Category     string   `json:"category" validate:"nullable,max=100"`
	Brand        string   `json:"brand" validate:"nullable,max=100"`
	Color        string   `json:"color" validate:"nullable,max=50"`
	Price        string   `json:"price" validate:"required,numeric"`
	RegularPrice string   `json:"regular_price" validate:"nullable,numeric"`
	Stock        int      `json:"stock" validate:"nullable,gte=0"`
	Images       []string `json:"images" validate:"nullable"`
}

// Create adds a product to the catalogue.
func (s *CatalogService) Create(in ProductInput) (models.Product, error) {
	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog: parse price: %w", err)
	}
	regular := decimal.Zero
	if in.RegularPrice != "" {
		if regular, err = decimal.NewFromString(in.RegularPrice); err != nil {
			return models.Product{}, fmt.Errorf("catalog: parse regular price: %w", err)
		}
	}

	product := models.Product{
		Name:         in.Name,
		SKU:          in.SKU,
		Description:  in.Description,
		Category:     in.Category,
		Brand:        in.Brand,
		Color:        in.Color,
		Price:        price,
		RegularPrice: regular,
		Stock:        in.Stock,
	}
	for i, url := range in.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url, Position: i})
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("catalog: create: %w", err)
	}
	return product, nil
}

// Get returns a product by id, serving from cache when possible.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	var cached models.Product
	if cache.Get(productCacheKey(id), &cached) {
		metrics.CacheHits.WithLabelValues("redis").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("redis").Inc()

	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	cache.Set(productCacheKey(id), product, productCacheTTL) //nolint:errcheck
	return product, nil
}

// List returns a page of products, optionally filtered by category.
func (s *CatalogService) List(page, perPage int, category string) ([]models.Product, database.Pagination, error) {
	return s.products.List(page, perPage, category)
}

// Update overwrites a product's fields and invalidates its cache entry.
func (s *CatalogService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	price, err := decimal.NewFromString(in.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("catalog: parse price: %w", err)
	}

	product.Name = in.Name
	product.SKU = in.SKU
	product.Description = in.Description
	product.Category = in.Category
	product.Brand = in.Brand
	product.Color = in.Color
	product.Price = price
	product.Stock = in.Stock
	if in.RegularPrice != "" {
		regular, err := decimal.NewFromString(in.RegularPrice)
		if err != nil {
			return models.Product{}, fmt.Errorf("catalog: parse regular price: %w", err)
		}
		product.RegularPrice = regular
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("catalog: update: %w", err)
	}

	cache.Del(productCacheKey(id)) //nolint:errcheck
	event.FireAsync("product.updated", product.ID)
	return product, nil
}

// Delete removes a product and invalidates its cache entry.
func (s *CatalogService) Delete(id uint) error {
	if _, err := s.products.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return fmt.Errorf("catalog: delete: %w", err)
	}
	cache.Del(productCacheKey(id)) //nolint:errcheck
	return nil
}

// AttachImage appends an uploaded image URL to the product's ordered list.
func (s *CatalogService) AttachImage(productID uint, url string) (models.ProductImage, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductImage{}, ErrNotFound
		}
		return models.ProductImage{}, err
	}

	img, err := s.products.AddImage(productID, url)
	if err != nil {
		return models.ProductImage{}, fmt.Errorf("catalog: add image: %w", err)
	}
	cache.Del(productCacheKey(productID)) //nolint:errcheck
	return img, nil
}

// RatingInput is the payload for AddRating.
type RatingInput struct {
	Stars  int    `json:"stars" validate:"required,gte=1,lte=5"`
	Review string `json:"review" validate:"nullable,max=5000"`
}

// AddRating records a user's rating. One rating per user per product.
func (s *CatalogService) AddRating(productID, userID uint, in RatingInput) (models.Rating, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rating{}, ErrNotFound
		}
		return models.Rating{}, err
	}

	rated, err := s.products.HasRatingBy(productID, userID)
	if err != nil {
		return models.Rating{}, err
	}
	if rated {
		return models.Rating{}, ErrAlreadyRated
	}

	rating := models.Rating{
		ProductID: productID,
		UserID:    userID,
		Stars:     in.Stars,
		Review:    in.Review,
	}
	if err := s.products.AddRating(&rating); err != nil {
		return models.Rating{}, fmt.Errorf("catalog: add rating: %w", err)
	}

	cache.Del(productCacheKey(productID)) //nolint:errcheck
	return rating, nil
}
