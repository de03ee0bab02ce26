package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/metrics"
)

// CartRepository handles database operations for Cart. Writes go through a
// version check so concurrent mutations of the same cart never silently
// drop an update.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// FindByUser loads the user's cart with its items.
func (r *CartRepository) FindByUser(userID uint) (models.Cart, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var cart models.Cart
	err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	return cart, err
}

// Create persists a fresh cart with its items.
func (r *CartRepository) Create(cart *models.Cart) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return r.db.Create(cart).Error
}

// SaveVersioned writes the cart and its items only if the stored version
// still matches cart.Version. On success the version is bumped and the item
// rows are replaced. Returns false when another writer got there first.
func (r *CartRepository) SaveVersioned(cart *models.Cart) (bool, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	updated := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cart{}).
			Where("id = ? AND version = ?", cart.ID, cart.Version).
			Updates(map[string]interface{}{
				"total":   cart.Total,
				"version": cart.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // stale version, caller retries
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}

		updated = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if updated {
		cart.Version++
	}
	return updated, nil
}

// Delete removes the cart and its items.
func (r *CartRepository) Delete(cartID uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Cart{}, cartID).Error
	})
}
