package routes

import (
	"gorm.io/gorm"

	"github.com/casatartufo/tartufo/app/controllers"
	"github.com/casatartufo/tartufo/app/repositories"
	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/pkg/middleware"
	"github.com/casatartufo/tartufo/pkg/router"
)

// RegisterAPI wires repositories, services and controllers onto the router.
// The database handle is injected so tests can run the full HTTP surface
// against an in-memory database.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	slotRepo := repositories.NewDeliverySlotRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authController := controllers.NewAuthController(
		services.NewAuthService(userRepo))
	catalogController := controllers.NewCatalogController(
		services.NewCatalogService(productRepo, slotRepo))
	orderController := controllers.NewOrderController(
		services.NewOrderService(orderRepo, productRepo, slotRepo, userRepo))

	api := r.Group("/api")

	// Public surface.
	api.Post("/register", "auth.register", authController.Register)
	api.Post("/login", "auth.login", authController.Login)
	api.Get("/check_session", "auth.check", authController.CheckSession)
	api.Get("/products", "catalog.index", catalogController.ListProducts)
	api.Get("/products/{id}", "catalog.show", catalogController.GetProduct)
	api.Get("/delivery-slots", "catalog.slots", catalogController.ListDeliverySlots)

	// Everything below requires a logged-in session.
	protected := api.Group("", middleware.RequireAuth)
	protected.Post("/logout", "auth.logout", authController.Logout)
	protected.Put("/user/address", "auth.address", authController.UpdateAddress)
	protected.Post("/orders", "orders.place", orderController.PlaceOrder)
	protected.Get("/orders/history", "orders.history", orderController.History)
}
