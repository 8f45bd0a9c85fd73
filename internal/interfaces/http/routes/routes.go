// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/preferences"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// Services bundles the domain services the HTTP layer exposes. They
// are built once in main and shared across handlers.
type Services struct {
	Catalog     *catalog.Service
	Cart        *cart.Service
	Checkout    *checkout.Service
	Order       *order.Service
	Stripe      *payment.StripeService
	Preferences *preferences.Service
	PDF         *pdf.Service
	Logger      *logrus.Logger
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	setupCatalogRoutes(rg, svcs, cfg)
	setupCartRoutes(rg, svcs, cfg)
	setupCheckoutRoutes(rg, svcs, cfg)
	setupWebhookRoutes(rg, svcs)
	setupPreferencesRoutes(rg, svcs, cfg)
	setupAdminRoutes(rg, svcs, cfg)
}

// setupCatalogRoutes sets up catalog browse routes
func setupCatalogRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(svcs.Catalog, cfg)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.BrowseProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}

	rg.GET("/categories", catalogHandler.GetCategories)
}

// setupCartRoutes sets up session cart routes
func setupCartRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(svcs.Cart, cfg)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// setupCheckoutRoutes sets up checkout routes
func setupCheckoutRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(svcs.Checkout, cfg)

	checkoutGroup := rg.Group("/checkout")
	{
		checkoutGroup.POST("/validate", checkoutHandler.ValidateForm)
		checkoutGroup.POST("/session", checkoutHandler.CreateSession)
	}
}

// setupWebhookRoutes sets up payment provider webhook routes
func setupWebhookRoutes(rg *gin.RouterGroup, svcs *Services) {
	webhookHandler := handlers.NewWebhookHandler(svcs.Stripe, svcs.Logger)

	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/stripe", webhookHandler.HandleStripeWebhook)
	}
}

// setupPreferencesRoutes sets up display preference routes
func setupPreferencesRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	preferencesHandler := handlers.NewPreferencesHandler(svcs.Preferences, cfg)

	prefs := rg.Group("/preferences")
	{
		prefs.GET("/theme", preferencesHandler.GetTheme)
		prefs.PUT("/theme", preferencesHandler.SetTheme)
	}
}

// setupAdminRoutes sets up operator routes guarded by the shared key
func setupAdminRoutes(rg *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(svcs.Order, svcs.PDF, cfg)
	catalogHandler := handlers.NewCatalogHandler(svcs.Catalog, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AdminKey(cfg))
	{
		admin.POST("/catalog/refresh", catalogHandler.RefreshCatalog)

		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.PUT("/:id/cancel", orderHandler.CancelOrder)
			orders.GET("/:id/invoice", orderHandler.GenerateInvoice)
		}
	}
}
