package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/auth"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/router"
	"github.com/pawmart/pawmart/pkg/ws"
)

func newAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{}, &models.ProductImage{}, &models.Rating{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
		&models.Pet{}, &models.MedicalRecord{},
		&models.Appointment{},
	))
	database.DB = db

	r := router.New()
	RegisterAPI(r, ws.NewHub())
	return r.Handler()
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()

	user := models.User{
		Name:     "Route Test " + string(role),
		Email:    string(role) + "@example.com",
		Phone:    "+1" + string(role),
		Password: "x",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := auth.GenerateToken(user.ID, string(role))
	require.NoError(t, err)
	return token
}

func TestPublicCatalogRoutes(t *testing.T) {
	h := newAPI(t)

	require.NoError(t, database.DB.Create(&models.Product{
		Name: "Rope", SKU: "TOY-1",
	}).Error)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newAPI(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductWritesAreRoleGated(t *testing.T) {
	h := newAPI(t)

	payload := `{"name": "Rope", "sku": "TOY-1", "price": "9.99", "stock": 5}`

	// Customers cannot create products.
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleCustomer))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Inventory managers can.
	req = httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleInventoryManager))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	h := newAPI(t)
	token := tokenFor(t, models.RoleCustomer)

	require.NoError(t, database.DB.Create(&models.Product{
		Name: "Bowl", SKU: "ACC-1", Stock: 10,
	}).Error)
	var product models.Product
	require.NoError(t, database.DB.First(&product).Error)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/cart/items",
		`{"product_id": `+jsonID(product.ID)+`, "quantity": 2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(http.MethodPost, "/api/checkout", `{
		"shipping": {"name": "C", "address": "1 Way", "city": "Oslo", "zip": "0150", "country": "NO"},
		"payment": {"card_number": "4111111111111111", "expiry": "12/28"}
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The cart is gone after checkout.
	rec = do(http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
