package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pawmart/pawmart/app/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	userSeq++

	user := models.User{
		Name:     fmt.Sprintf("User %d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Phone:    fmt.Sprintf("+1555%07d", userSeq),
		Password: "$2a$10$abcdefghijklmnopqrstuv",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

var productSeq int

func seedProduct(t *testing.T, db *gorm.DB, price string, stock int) models.Product {
	t.Helper()
	productSeq++

	product := models.Product{
		Name:  fmt.Sprintf("Product %d", productSeq),
		SKU:   fmt.Sprintf("SKU-%04d", productSeq),
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedPet(t *testing.T, db *gorm.DB, ownerID uint) models.Pet {
	t.Helper()

	pet := models.Pet{OwnerID: ownerID, Name: "Biscuit", Species: "dog"}
	require.NoError(t, db.Create(&pet).Error)
	return pet
}
