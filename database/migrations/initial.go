package migrations

import (
	"gorm.io/gorm"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/pkg/migration"
	"github.com/pawmart/pawmart/pkg/queue"
)

func init() {
	migration.Register("20260815000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260815000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260815000002_create_carts_table", &CreateCartsTable{})
	migration.Register("20260815000003_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260815000004_create_pets_table", &CreatePetsTable{})
	migration.Register("20260815000005_create_appointments_table", &CreateAppointmentsTable{})
	migration.Register("20260815000006_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products, images, ratings --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{}, &models.ProductImage{}, &models.Rating{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("ratings", "product_images", "products")
}

// -------- 0003: carts --------

type CreateCartsTable struct{}

func (m *CreateCartsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Cart{}, &models.CartItem{})
}

func (m *CreateCartsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items", "carts")
}

// -------- 0004: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0005: pets, medical records --------

type CreatePetsTable struct{}

func (m *CreatePetsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Pet{}, &models.MedicalRecord{})
}

func (m *CreatePetsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("medical_records", "pets")
}

// -------- 0006: appointments --------

type CreateAppointmentsTable struct{}

func (m *CreateAppointmentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Appointment{})
}

func (m *CreateAppointmentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("appointments")
}

// -------- 0007: failed queue jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
