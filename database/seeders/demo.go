package seeders

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("products", SeedProducts)
}

// SeedUsers inserts one account per role. Idempotent, re-running keeps the
// existing rows.
func SeedUsers(db *gorm.DB) error {
	users := []struct {
		name, email, phone, password string
		role                         models.Role
		spec                         string
		years                        int
	}{
		{"Admin", "admin@pawmart.shop", "+10000000001", "admin-password", models.RoleAdmin, "", 0},
		{"Iris Stock", "inventory@pawmart.shop", "+10000000002", "inventory-password", models.RoleInventoryManager, "", 0},
		{"Dr. Vale", "vet@pawmart.shop", "+10000000003", "vet-password", models.RoleVeterinarian, "Small animals", 9},
		{"Casey Customer", "customer@pawmart.shop", "+10000000004", "customer-password", models.RoleCustomer, "", 0},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.email, err)
		}
		row := models.User{
			Name:           u.name,
			Email:          u.email,
			Phone:          u.phone,
			Password:       hash,
			Role:           u.role,
			Specialization: u.spec,
			IsVerified:     u.role == models.RoleVeterinarian,
		}
		row.YearsOfExperience = u.years
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts inserts a small demo catalogue.
func SeedProducts(db *gorm.DB) error {
	products := []models.Product{
		{
			Name:        "Tough Chew Rope",
			SKU:         "TOY-ROPE-01",
			Description: "Braided cotton rope for medium and large dogs.",
			Category:    "toys",
			Brand:       "PawPlay",
			Color:       "blue",
			Price:       decimal.NewFromFloat(9.99),
			Stock:       120,
			Images: []models.ProductImage{
				{URL: "https://cdn.pawmart.shop/seed/rope-front.jpg", Position: 0},
				{URL: "https://cdn.pawmart.shop/seed/rope-side.jpg", Position: 1},
			},
		},
		{
			Name:         "Salmon Kibble 5kg",
			SKU:          "FOOD-SALM-5K",
			Description:  "Grain-free salmon kibble for adult cats.",
			Category:     "food",
			Brand:        "FjordFeast",
			Price:        decimal.NewFromFloat(34.50),
			RegularPrice: decimal.NewFromFloat(39.00),
			Stock:        48,
		},
		{
			Name:     "Ceramic Bowl",
			SKU:      "ACC-BOWL-CER",
			Category: "accessories",
			Brand:    "PawPlay",
			Color:    "white",
			Price:    decimal.NewFromFloat(14.25),
			Stock:    75,
		},
	}

	for i := range products {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
