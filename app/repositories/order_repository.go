package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/metrics"
)

// OrderRepository handles database operations for Order. Orders are never
// deleted.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	return order, err
}

// ListByUser returns all of a user's orders, newest first.
func (r *OrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error
	return orders, err
}

// List returns a page of all orders, optionally filtered by status.
func (r *OrderRepository) List(page, perPage int, status models.OrderStatus) ([]models.Order, database.Pagination, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	q := r.db.Model(&models.Order{}).Preload("Items").Order("id desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	pagination, err := database.Paginate(q, &orders, page, perPage)
	return orders, pagination, err
}

// UpdateStatus overwrites the order's status. Any transition is permitted.
func (r *OrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
