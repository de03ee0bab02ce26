package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/metrics"
)

// maxCartRetries bounds the optimistic-lock retry loop on cart mutations.
const maxCartRetries = 3

// CartService manages the user's single active cart. Every mutation
// recomputes the total from live product prices and is written with a
// version check; on conflict the whole mutation is re-applied against the
// fresh cart.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, or ErrNotFound if none exists yet.
func (s *CartService) Get(userID uint) (models.Cart, error) {
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}
	return cart, nil
}

// AddItem inserts or increments a line for the product. The combined
// quantity must not exceed the product's stock.
func (s *CartService) AddItem(userID, productID uint, qty int) (models.Cart, error) {
	if qty <= 0 {
		return models.Cart{}, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}

	cart, err := s.carts.FindByUser(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First add creates the cart lazily.
		if qty > product.Stock {
			return models.Cart{}, ErrInsufficientStock
		}
		cart = models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: productID, Quantity: qty}},
		}
		if err := s.recomputeTotal(&cart); err != nil {
			return models.Cart{}, err
		}
		if err := s.carts.Create(&cart); err != nil {
			return models.Cart{}, fmt.Errorf("cart: create: %w", err)
		}
		return cart, nil
	}
	if err != nil {
		return models.Cart{}, err
	}

	return s.mutate(userID, func(cart *models.Cart) error {
		existing := 0
		for _, item := range cart.Items {
			if item.ProductID == productID {
				existing = item.Quantity
				break
			}
		}
		if existing+qty > product.Stock {
			return ErrInsufficientStock
		}

		found := false
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity += qty
				found = true
				break
			}
		}
		if !found {
			cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: qty})
		}
		return nil
	})
}

// UpdateItemQuantity sets a line to an absolute quantity.
func (s *CartService) UpdateItemQuantity(userID, productID uint, qty int) (models.Cart, error) {
	if qty <= 0 {
		return models.Cart{}, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Cart{}, ErrNotFound
		}
		return models.Cart{}, err
	}
	if qty > product.Stock {
		return models.Cart{}, ErrInsufficientStock
	}

	return s.mutate(userID, func(cart *models.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items[i].Quantity = qty
				return nil
			}
		}
		return ErrNotFound
	})
}

// RemoveItem deletes a line. Removing the last line deletes the cart row
// entirely rather than leaving an empty shell.
func (s *CartService) RemoveItem(userID, productID uint) (models.Cart, error) {
	for attempt := 0; attempt < maxCartRetries; attempt++ {
		cart, err := s.carts.FindByUser(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Cart{}, ErrNotFound
			}
			return models.Cart{}, err
		}

		idx := -1
		for i, item := range cart.Items {
			if item.ProductID == productID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return models.Cart{}, ErrNotFound
		}

		if len(cart.Items) == 1 {
			if err := s.carts.Delete(cart.ID); err != nil {
				return models.Cart{}, fmt.Errorf("cart: delete: %w", err)
			}
			return models.Cart{}, nil
		}

		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		if err := s.recomputeTotal(&cart); err != nil {
			return models.Cart{}, err
		}

		updated, err := s.carts.SaveVersioned(&cart)
		if err != nil {
			return models.Cart{}, err
		}
		if updated {
			return cart, nil
		}
		metrics.CartConflicts.Inc()
	}
	return models.Cart{}, ErrVersionConflict
}

// Clear deletes the user's cart outright.
func (s *CartService) Clear(userID uint) error {
	cart, err := s.carts.FindByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clear
		}
		return err
	}
	return s.carts.Delete(cart.ID)
}

// mutate reloads the cart, applies fn, recomputes the total and writes with
// the version check, retrying on conflict.
func (s *CartService) mutate(userID uint, fn func(cart *models.Cart) error) (models.Cart, error) {
	for attempt := 0; attempt < maxCartRetries; attempt++ {
		cart, err := s.carts.FindByUser(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Cart{}, ErrNotFound
			}
			return models.Cart{}, err
		}

		if err := fn(&cart); err != nil {
			return models.Cart{}, err
		}
		if err := s.recomputeTotal(&cart); err != nil {
			return models.Cart{}, err
		}

		updated, err := s.carts.SaveVersioned(&cart)
		if err != nil {
			return models.Cart{}, err
		}
		if updated {
			return cart, nil
		}
		metrics.CartConflicts.Inc()
	}
	return models.Cart{}, ErrVersionConflict
}

// recomputeTotal derives the cart total from current catalogue prices.
func (s *CartService) recomputeTotal(cart *models.Cart) error {
	total := decimal.Zero
	for _, item := range cart.Items {
		product, err := s.products.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // product vanished; line contributes nothing
			}
			return err
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	cart.Total = total
	return nil
}
