package routes

import (
	"github.com/pawmart/pawmart/app/controllers"
	appgraphql "github.com/pawmart/pawmart/app/graphql"
	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/repositories"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/database"
	"github.com/pawmart/pawmart/pkg/logger"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/rbac"
	"github.com/pawmart/pawmart/pkg/router"
	"github.com/pawmart/pawmart/pkg/ws"
)

// RegisterAPI wires every HTTP route. Repositories and services are built
// here from the shared database handle.
func RegisterAPI(r *router.Router, hub *ws.Hub) {
	users := repositories.NewUserRepository(database.DB)
	products := repositories.NewProductRepository(database.DB)
	carts := repositories.NewCartRepository(database.DB)
	orders := repositories.NewOrderRepository(database.DB)
	pets := repositories.NewPetRepository(database.DB)
	appointments := repositories.NewAppointmentRepository(database.DB)

	accountService := services.NewAccountService(users)
	catalogService := services.NewCatalogService(products)
	cartService := services.NewCartService(carts, products)
	checkoutService := services.NewCheckoutService(database.DB)
	orderService := services.NewOrderService(orders)
	petService := services.NewPetService(pets, users)
	appointmentService := services.NewAppointmentService(appointments, pets, users)

	account := controllers.NewAccountController(accountService)
	catalog := controllers.NewCatalogController(catalogService)
	cart := controllers.NewCartController(cartService)
	checkout := controllers.NewCheckoutController(checkoutService)
	order := controllers.NewOrderController(orderService, hub)
	pet := controllers.NewPetController(petService)
	appointment := controllers.NewAppointmentController(appointmentService)

	manageStock := rbac.HasRole(string(models.RoleAdmin), string(models.RoleInventoryManager))
	adminOnly := rbac.HasRole(string(models.RoleAdmin))
	vetOnly := rbac.HasRole(string(models.RoleVeterinarian))

	api := r.Group("/api")

	api.Post("/register", "account.register", account.Register, rbac.Guest)
	api.Post("/login", "account.login", account.Login, rbac.Guest)

	api.Get("/products", "products.index", catalog.Index)
	api.Get("/products/{id}", "products.show", catalog.Show)

	if schema, err := appgraphql.NewSchema(catalogService); err != nil {
		logger.Error("graphql schema", "error", err)
	} else {
		api.Post("/graphql", "graphql", appgraphql.Handler(schema))
	}

	protected := api.Group("", middleware.Auth)

	protected.Post("/logout", "account.logout", account.Logout)
	protected.Get("/me", "account.me", account.Me)

	protected.Post("/products", "products.store", catalog.Store, manageStock)
	protected.Put("/products/{id}", "products.update", catalog.Update, manageStock)
	protected.Delete("/products/{id}", "products.destroy", catalog.Destroy, manageStock)
	protected.Post("/products/{id}/images", "products.images.store", catalog.UploadImage, manageStock)
	protected.Post("/products/{id}/ratings", "products.ratings.store", catalog.Rate)

	protected.Get("/cart", "cart.show", cart.Show)
	protected.Post("/cart/items", "cart.items.store", cart.AddItem)
	protected.Put("/cart/items/{productID}", "cart.items.update", cart.UpdateItem)
	protected.Delete("/cart/items/{productID}", "cart.items.destroy", cart.RemoveItem)
	protected.Delete("/cart", "cart.clear", cart.Clear)

	protected.Post("/checkout", "checkout", checkout.PlaceOrder)

	protected.Get("/orders", "orders.index", order.Index)
	protected.Get("/orders/feed", "orders.feed", order.Feed)
	protected.Get("/orders/{id}", "orders.show", order.Show)
	protected.Post("/orders/{id}/cancel", "orders.cancel", order.Cancel)

	admin := protected.Group("/admin", adminOnly)
	admin.Get("/orders", "admin.orders.index", order.AdminIndex)
	admin.Put("/orders/{id}/status", "admin.orders.status", order.UpdateStatus)

	protected.Get("/pets", "pets.index", pet.Index)
	protected.Post("/pets", "pets.store", pet.Store)
	protected.Get("/pets/{id}", "pets.show", pet.Show)
	protected.Put("/pets/{id}", "pets.update", pet.Update)
	protected.Delete("/pets/{id}", "pets.destroy", pet.Destroy)
	protected.Post("/pets/{id}/medical-records", "pets.records.store", pet.AddMedicalRecord, vetOnly)

	protected.Post("/appointments", "appointments.store", appointment.Store)
	protected.Get("/appointments", "appointments.index", appointment.Index)
	protected.Get("/appointments/schedule", "appointments.schedule", appointment.Schedule, vetOnly)
	protected.Put("/appointments/{id}/status", "appointments.status", appointment.UpdateStatus)
}
