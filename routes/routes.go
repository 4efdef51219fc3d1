package routes

import (
	"log"

	"boutique-shop/controllers"
	"boutique-shop/libs"
	"boutique-shop/middleware"
	"boutique-shop/models"
	"boutique-shop/repositories"
	"boutique-shop/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	cartRepo := repositories.NewCartRepository()
	productRepo := repositories.NewProductRepository()
	categoryRepo := repositories.NewCategoryRepository()
	orderRepo := repositories.NewOrderRepository()
	userRepo := repositories.NewUserRepository()
	settingsRepo := repositories.NewSettingsRepository()

	var notifier services.OrderNotifier
	if emailSvc, err := models.NewEmailService(); err == nil {
		notifier = emailSvc
	} else {
		log.Printf("Email notifications disabled: %v", err)
	}

	cartSvc := services.NewCartService(cartRepo, productRepo)
	checkoutSvc := services.NewCheckoutService(orderRepo, settingsRepo, notifier)
	orderSvc := services.NewOrderService(orderRepo, libs.NewBordereauGenerator())
	productSvc := services.NewProductService(productRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	settingsSvc := services.NewSettingsService(settingsRepo)
	authSvc := services.NewAuthService(userRepo)

	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc, cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	productCtrl := controllers.NewProductController(productSvc)
	categoryCtrl := controllers.NewCategoryController(categorySvc)
	settingsCtrl := controllers.NewSettingsController(settingsSvc)
	authCtrl := controllers.NewAuthController(authSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/auth/login", authCtrl.Login)

		api.GET("/products", productCtrl.GetAll)
		api.GET("/products/:slug", productCtrl.GetBySlug)
		api.GET("/categories", categoryCtrl.GetAll)
		api.GET("/settings", settingsCtrl.Get)
		api.GET("/wilayas", settingsCtrl.GetWilayas)

		api.GET("/cart", cartCtrl.GetCart)
		api.PUT("/cart", cartCtrl.SyncCart)
		api.DELETE("/cart", cartCtrl.ClearCart)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		api.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		api.POST("/checkout/validate", checkoutCtrl.ValidateStep)
		api.POST("/checkout", checkoutCtrl.PlaceOrder)
	}

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PUT("/auth/profile", authCtrl.UpdateProfile)
		auth.POST("/auth/change-password", authCtrl.ChangePassword)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		orders.GET("", orderCtrl.GetAllOrders)
		orders.GET("/:id", orderCtrl.GetOrderByID)
		orders.POST("/change-status", orderCtrl.ChangeStatus)
		orders.POST("/Bordereaus", orderCtrl.ExportBordereaus)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", orderCtrl.Dashboard)

		admin.POST("/products", productCtrl.Create)
		admin.PUT("/products/:id", productCtrl.Update)
		admin.DELETE("/products/:id", productCtrl.Delete)

		admin.POST("/categories", categoryCtrl.Create)
		admin.PUT("/categories/:id", categoryCtrl.Update)
		admin.DELETE("/categories/:id", categoryCtrl.Delete)

		admin.PUT("/settings", settingsCtrl.Update)
	}

	router.Static("/uploads", "./uploads")
}
