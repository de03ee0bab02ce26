package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/metrics"
)

// ProductRepository handles database operations for Product and its child
// rows (images, ratings).
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID loads a product with its ordered images and ratings.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	err := r.db.
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Preload("Ratings").
		First(&product, id).Error
	return product, err
}

// List returns a page of products, optionally filtered by category.
func (r *ProductRepository) List(page, perPage int, category string) ([]models.Product, database.Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	q := r.db.Model(&models.Product{}).
		Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") })
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []models.Product
	pagination, err := database.Paginate(q.Order("id asc"), &products, page, perPage)
	return products, pagination, err
}

// Create persists a new product with its images.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(product).Error
}

// Update persists changes to a product (images replaced wholesale).
func (r *ProductRepository) Update(product *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
}

// Delete removes a product. Cart lines referencing it are left alone;
// references are resolved at read time.
func (r *ProductRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())
	return r.db.Select("Images", "Ratings").Delete(&models.Product{Model: gorm.Model{ID: id}}).Error
}

// AddImage appends an image URL at the next position.
func (r *ProductRepository) AddImage(productID uint, url string) (models.ProductImage, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	var max int
	row := r.db.Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Select("COALESCE(MAX(position), -1)").Row()
	if err := row.Scan(&max); err != nil {
		return models.ProductImage{}, err
	}

	img := models.ProductImage{ProductID: productID, URL: url, Position: max + 1}
	err := r.db.Create(&img).Error
	return img, err
}

// HasRatingBy reports whether the user already rated the product.
func (r *ProductRepository) HasRatingBy(productID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddRating appends a rating row.
func (r *ProductRepository) AddRating(rating *models.Rating) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(rating).Error
}
