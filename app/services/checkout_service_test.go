package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/pkg/crypt"
	"github.com/pawmart/pawmart/pkg/event"
)

func checkoutInput() CheckoutInput {
	return CheckoutInput{
		Shipping: ShippingInput{
			Name:    "Casey Customer",
			Address: "1 Harbour Way",
			City:    "Oslo",
			Zip:     "0150",
			Country: "Norway",
		},
		Payment: PaymentInput{
			CardNumber: "4111111111111111",
			Expiry:     "12/28",
		},
	}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	db := newTestDB(t)
	cartSvc := NewCartService(repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	svc := NewCheckoutService(db)

	user := seedUser(t, db, models.RoleCustomer)
	rope := seedProduct(t, db, "9.99", 10)
	bowl := seedProduct(t, db, "14.25", 5)

	_, err := cartSvc.AddItem(user.ID, rope.ID, 2)
	require.NoError(t, err)
	_, err = cartSvc.AddItem(user.ID, bowl.ID, 1)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)
	defer event.Flush()

	assert.Equal(t, models.OrderProcessing, order.Status)
	assert.True(t, strings.HasPrefix(order.Number, "PM-"))
	assert.Equal(t, "34.23", order.Total.StringFixed(2))
	assert.Equal(t, "1111", order.PaymentLast4)
	require.Len(t, order.Items, 2)

	// Line snapshots carry the price at purchase time.
	assert.Equal(t, rope.Name, order.Items[0].Name)
	assert.Equal(t, "9.99", order.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "19.98", order.Items[0].Subtotal.StringFixed(2))

	// Stock and sold counters moved.
	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, rope.ID).Error)
	assert.Equal(t, 8, reloaded.Stock)
	assert.Equal(t, 2, reloaded.SoldCount)

	// The cart is gone, hard-deleted so a new one can be created.
	err = db.Where("user_id = ?", user.ID).First(&models.Cart{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = cartSvc.AddItem(user.ID, rope.ID, 1)
	assert.NoError(t, err)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db)
	user := seedUser(t, db, models.RoleCustomer)

	_, err := svc.PlaceOrder(user.ID, checkoutInput())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderClampsStockAtZero(t *testing.T) {
	db := newTestDB(t)
	cartSvc := NewCartService(repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	svc := NewCheckoutService(db)

	user := seedUser(t, db, models.RoleCustomer)
	product := seedProduct(t, db, "5.00", 3)

	_, err := cartSvc.AddItem(user.ID, product.ID, 3)
	require.NoError(t, err)

	// The stock shrinks underneath the cart before checkout runs.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("stock", 1).Error)

	order, err := svc.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)
	defer event.Flush()

	// The order still charges the requested quantity; stock bottoms out
	// at zero instead of going negative.
	assert.Equal(t, "15.00", order.Total.StringFixed(2))

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.Equal(t, 0, reloaded.Stock)
	assert.Equal(t, 3, reloaded.SoldCount)
}

func TestPlaceOrderFreezesPriceAgainstLaterChanges(t *testing.T) {
	db := newTestDB(t)
	cartSvc := NewCartService(repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	svc := NewCheckoutService(db)

	user := seedUser(t, db, models.RoleCustomer)
	product := seedProduct(t, db, "10.00", 10)

	_, err := cartSvc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)
	defer event.Flush()

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("price", "99.00").Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Equal(t, "10.00", stored.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "10.00", stored.Total.StringFixed(2))
}

func TestPlaceOrderEncryptsExpiry(t *testing.T) {
	db := newTestDB(t)
	cartSvc := NewCartService(repositories.NewCartRepository(db), repositories.NewProductRepository(db))
	svc := NewCheckoutService(db)

	user := seedUser(t, db, models.RoleCustomer)
	product := seedProduct(t, db, "5.00", 5)

	_, err := cartSvc.AddItem(user.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := svc.PlaceOrder(user.ID, checkoutInput())
	require.NoError(t, err)
	defer event.Flush()

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.NotEqual(t, "12/28", stored.PaymentExpiry)

	plain, err := crypt.Decrypt(stored.PaymentExpiry)
	require.NoError(t, err)
	assert.Equal(t, "12/28", plain)
}
