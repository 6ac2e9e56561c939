// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/businessrule"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/domain/customer"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/domain/payment"
	"github.com/your-org/pos-backend/internal/domain/product"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/receipt"
	"gorm.io/gorm"
)

// Dependencies carries the shared services the route handlers need
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Registry     *businessrule.Registry
	Sessions     *businessrule.SessionStore
	CartService  *cart.Service
	Payments     *payment.Manager
	OrderService *order.Service
	Finalizer    *order.Finalizer
}

// SetupRoutes wires all API routes onto the router group
func SetupRoutes(api *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(user.NewService(deps.DB, deps.Config))
	productHandler := handlers.NewProductHandler(product.NewService(deps.DB, deps.RedisClient))
	customerHandler := handlers.NewCustomerHandler(customer.NewService(deps.DB))
	cartHandler := handlers.NewCartHandler(deps.CartService)
	configHandler := handlers.NewBusinessConfigHandler(deps.Registry, deps.Sessions)
	pricingHandler := handlers.NewPricingHandler(deps.Config, deps.CartService, deps.Sessions)
	paymentHandler := handlers.NewPaymentHandler(deps.Payments)
	orderHandler := handlers.NewOrderHandler(deps.OrderService, deps.Finalizer)
	receiptHandler := handlers.NewReceiptHandler(deps.OrderService, receipt.NewService(deps.Config))

	// Public authentication routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// Everything below requires a signed-in staff account
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(deps.Config))

	authorized.GET("/auth/profile", authHandler.GetProfile)
	authorized.PUT("/auth/password", authHandler.ChangePassword)

	// Catalog
	products := authorized.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/categories", productHandler.ListCategories)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Customers
	customers := authorized.Group("/customers")
	{
		customers.GET("", customerHandler.SearchCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.POST("", customerHandler.CreateCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
	}

	// Terminal-scoped routes: cart, rules, pricing, payment, finalize
	terminal := authorized.Group("")
	terminal.Use(middleware.TerminalMiddleware())
	{
		terminal.GET("/business-types", configHandler.ListTypes)

		cfg := terminal.Group("/business-config")
		{
			cfg.GET("", configHandler.GetActive)
			cfg.PUT("/type", configHandler.SelectType)
			cfg.PUT("/order-type", configHandler.SetOrderType)
			cfg.PUT("/location", configHandler.SetLocation)
			cfg.PUT("/fields/:field_id", configHandler.SetCustomField)
			cfg.POST("/reset", configHandler.ClearSelections)
		}

		cartGroup := terminal.Group("/cart")
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PUT("/items/:product_id", cartHandler.UpdateItem)
			cartGroup.DELETE("/items/:product_id", cartHandler.RemoveItem)
			cartGroup.DELETE("", cartHandler.ClearCart)
		}

		terminal.GET("/pricing", pricingHandler.GetQuote)

		pay := terminal.Group("/payment")
		{
			pay.POST("", paymentHandler.BeginAttempt)
			pay.GET("", paymentHandler.GetStatus)
			pay.DELETE("", paymentHandler.CancelAttempt)
			pay.PUT("/tendered", paymentHandler.SetTendered)
			pay.PUT("/phone", paymentHandler.SetPhone)
			pay.POST("/push", paymentHandler.SendPush)
			pay.POST("/push/resend", paymentHandler.ResendPush)
			pay.POST("/push/reset", paymentHandler.ResetPush)
		}

		terminal.POST("/orders/finalize", orderHandler.FinalizePaid)
		terminal.POST("/orders/park", orderHandler.FinalizePending)
	}

	// Order history and the pending queue
	orders := authorized.Group("/orders")
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/number/:number", orderHandler.GetOrderByNumber)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateStatus)
		orders.POST("/:id/settle", orderHandler.SettlePending)
		orders.GET("/:id/receipt", receiptHandler.GetReceipt)
	}
	authorized.GET("/pending-orders", orderHandler.ListPending)

	// Admin routes
	admin := authorized.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/users", authHandler.ListUsers)
		admin.POST("/users", authHandler.CreateUser)
		admin.DELETE("/users/:id", authHandler.DeactivateUser)

		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.DELETE("/customers/:id", customerHandler.DeleteCustomer)
	}
}
