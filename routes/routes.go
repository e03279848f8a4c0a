package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/entity"
	"backend/middlewares"
	"backend/pkg/payments"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, provider payments.Provider, hub *ws.NotifyHub, log *zap.Logger) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	users := repository.NewUserRepository(db)
	rests := repository.NewRestaurantRepository(db)
	menus := repository.NewMenuRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	pays := repository.NewPaymentRepository(db)
	promos := repository.NewPromotionRepository(db)

	// Services
	access := services.NewAccessService(users, rests)
	cartSvc := services.NewCartService(db, carts, menus, rests, promos)
	authSvc := services.NewAuthService(db, users, cartSvc, cfg.JWTSecret, cfg.JWTTTL)
	restSvc := services.NewRestaurantService(rests)
	menuSvc := services.NewMenuService(menus, access)
	promoSvc := services.NewPromotionService(carts, promos, rests)
	orderSvc := services.NewOrderService(orders, pays, access)
	checkoutSvc := services.NewCheckoutService(db, carts, cartSvc, orders, pays, promos, rests,
		provider, access, hub, log)
	reconSvc := services.NewReconciliationService(db, orders, pays, hub, log)

	// Controllers
	guest := middlewares.NewGuestCartCodec(cfg.GuestCartCookieName, cfg.GuestCartHashKey, cfg.GuestCartBlockKey)
	authCtrl := controllers.NewAuthController(authSvc, guest)
	restCtrl := controllers.NewRestaurantController(restSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc, guest)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	promoCtrl := controllers.NewPromotionController(promoSvc)
	webhookCtrl := controllers.NewWebhookController(provider, reconSvc, log)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.Auth(cfg.JWTSecret), authCtrl.Me)

	// Public catalog
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/menu", menuCtrl.ListPublic)
	r.GET("/promotions/validate", promoCtrl.Validate)

	// Cart: guests and customers both; guests carry a signed cookie.
	cart := r.Group("/cart", middlewares.OptionalAuth(cfg.JWTSecret), middlewares.GuestCart(guest))
	{
		cart.GET("/current", cartCtrl.Current)
		cart.POST("", cartCtrl.Create)
		cart.POST("/items", cartCtrl.AddItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.POST("/apply-promo", cartCtrl.ApplyPromo)
		cart.POST("/clear", cartCtrl.Clear)
	}

	// Checkout requires a signed-in customer.
	checkout := r.Group("/checkout", middlewares.Auth(cfg.JWTSecret))
	{
		checkout.POST("/validate", checkoutCtrl.Validate)
		checkout.POST("/create-intent", checkoutCtrl.CreateIntent)
		checkout.POST("/confirm", checkoutCtrl.Confirm)
	}

	// Orders (customer)
	u := r.Group("/orders", middlewares.Auth(cfg.JWTSecret))
	{
		u.GET("", orderCtrl.List)
		u.GET("/:id", orderCtrl.Detail)
		u.GET("/:id/history", orderCtrl.History)
		u.GET("/:id/receipt", orderCtrl.Receipt)
		u.POST("/:id/cancel", checkoutCtrl.Cancel)
	}

	// Restaurant staff surface; fine-grained rank checks live in the services.
	staff := r.Group("/restaurants/:id", middlewares.Auth(cfg.JWTSecret))
	{
		staff.GET("/orders", orderCtrl.ListForRestaurant)
		staff.PATCH("/orders/:orderId/status", checkoutCtrl.UpdateStatus)
		staff.GET("/menu/manage", menuCtrl.ListForStaff)
		staff.POST("/menu", menuCtrl.CreateItem)
	}
	r.PATCH("/menu-items/:id", middlewares.Auth(cfg.JWTSecret), menuCtrl.UpdateItem)

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.Auth(cfg.JWTSecret, entity.RoleAdmin))
	{
		admin.GET("/promotions", promoCtrl.List)
		admin.POST("/promotions", promoCtrl.Create)
		admin.PATCH("/promotions/:id", promoCtrl.Update)
	}

	// Provider callbacks; signature check replaces auth.
	r.POST("/webhooks/payments", webhookCtrl.HandlePayment)

	// Realtime order notifications
	r.GET("/ws/notifications", middlewares.Auth(cfg.JWTSecret), hub.HandleWebSocket)
}
