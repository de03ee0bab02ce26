package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/crypt"
	"github.com/pawmart/pawmart/pkg/event"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/metrics"
)

// CheckoutService converts a cart into an order. Order creation, stock
// decrement and cart deletion happen inside one database transaction with
// the product rows locked, so a crash can never leave an order without its
// stock adjustment or a cart that survived its own checkout.
type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// ShippingInput holds the delivery address.
type ShippingInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required,max=512"`
	City    string `json:"city" validate:"required,max=128"`
	Zip     string `json:"zip" validate:"required,max=32"`
	Country string `json:"country" validate:"required,max=128"`
}

// PaymentInput holds card details. The CVV is deliberately never accepted;
// only the last four digits of the number are persisted and the expiry is
// encrypted at rest.
type PaymentInput struct {
	CardNumber string `json:"card_number" validate:"required,digits=16"`
	Expiry     string `json:"expiry" validate:"required,regex=^\\d{2}/\\d{2}$"`
}

// CheckoutInput is the full PlaceOrder payload.
type CheckoutInput struct {
	Shipping ShippingInput `json:"shipping"`
	Payment  PaymentInput  `json:"payment"`
}

// OrderPlaced is the payload of the "order.placed" event.
type OrderPlaced struct {
	OrderID uint
	UserID  uint
	Number  string
	Total   decimal.Decimal
}

// PlaceOrder runs the checkout transaction for the user's cart.
func (s *CheckoutService) PlaceOrder(userID uint, in CheckoutInput) (models.Order, error) {
	start := time.Now()

	expiryEnc, err := crypt.Encrypt(in.Payment.Expiry)
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout: encrypt expiry: %w", err)
	}

	var order models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cart.Items))

		for _, line := range cart.Items {
			// sqlite serialises writers at the database level and
			// rejects FOR UPDATE syntax.
			q := tx
			if tx.Dialector.Name() != "sqlite" {
				q = q.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product models.Product
			if err := q.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
				Subtotal:  subtotal,
			})
			total = total.Add(subtotal)

			// Decrement clamped at zero; availability was checked at
			// add-to-cart time.
			newStock := product.Stock - line.Quantity
			if newStock < 0 {
				newStock = 0
			}
			if err := tx.Model(&product).Updates(map[string]interface{}{
				"stock":      newStock,
				"sold_count": product.SoldCount + line.Quantity,
			}).Error; err != nil {
				return err
			}
		}

		order = models.Order{
			Number: newOrderNumber(),
			UserID: userID,
			Status: models.OrderProcessing,
			Total:  total,

			ShipName:    in.Shipping.Name,
			ShipAddress: in.Shipping.Address,
			ShipCity:    in.Shipping.City,
			ShipZip:     in.Shipping.Zip,
			ShipCountry: in.Shipping.Country,

			PaymentLast4:  lastFour(in.Payment.CardNumber),
			PaymentExpiry: expiryEnc,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Cart{}, cart.ID).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	logger.Info("order placed", "order_id", order.ID, "number", order.Number, "user_id", userID)

	event.FireAsync("order.placed", OrderPlaced{
		OrderID: order.ID,
		UserID:  userID,
		Number:  order.Number,
		Total:   order.Total,
	})

	return order, nil
}

// lastFour masks a card number down to its final four digits.
func lastFour(card string) string {
	card = strings.ReplaceAll(card, " ", "")
	if len(card) <= 4 {
		return card
	}
	return card[len(card)-4:]
}

// newOrderNumber produces an opaque order reference like PM-20260901-3f2a9c.
func newOrderNumber() string {
	buf := make([]byte, 3)
	rand.Read(buf) //nolint:errcheck
	return fmt.Sprintf("PM-%s-%s", time.Now().Format("20060102"), hex.EncodeToString(buf))
}
