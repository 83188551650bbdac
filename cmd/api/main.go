package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	cartAPI "github.com/ridloal/cart-approval-api/internal/cart/api"
	cartRepo "github.com/ridloal/cart-approval-api/internal/cart/repository"
	cartService "github.com/ridloal/cart-approval-api/internal/cart/service"
	"github.com/ridloal/cart-approval-api/internal/platform/config"
	"github.com/ridloal/cart-approval-api/internal/platform/database"
	"github.com/ridloal/cart-approval-api/internal/platform/logger"
	"github.com/ridloal/cart-approval-api/internal/platform/web"
	productAPI "github.com/ridloal/cart-approval-api/internal/product/api"
	productRepo "github.com/ridloal/cart-approval-api/internal/product/repository"
	productService "github.com/ridloal/cart-approval-api/internal/product/service"
	userAPI "github.com/ridloal/cart-approval-api/internal/user/api"
	userRepo "github.com/ridloal/cart-approval-api/internal/user/repository"
	userService "github.com/ridloal/cart-approval-api/internal/user/service"
)

func main() {
	_ = godotenv.Load()

	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	authCfg := config.LoadAuthConfig()
	cartCfg := config.LoadCartConfig()

	logger.Info("Starting Cart Approval API...")

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return
	}

	// Repositories
	userRepository := userRepo.NewPostgresUserRepository(db)
	productRepository := productRepo.NewPostgresProductRepository(db)
	cartRepository := cartRepo.NewPostgresCartRepository(db)

	// Services
	usrService := userService.NewUserService(userRepository, authCfg.JWTSecret, authCfg.TokenTTL)
	prdService := productService.NewProductService(productRepository)
	crtService := cartService.NewCartService(cartRepository, productRepository)

	sweeper := cartService.NewReviewTimeoutSweeper(crtService, cartCfg.PendingMaxAge)
	sweeper.Start()
	defer sweeper.Stop()

	// Handlers
	userHandler := userAPI.NewUserHandler(usrService)
	productHandler := productAPI.NewProductHandler(prdService)
	cartHandler := cartAPI.NewCartHandler(crtService)

	adminOnly := []gin.HandlerFunc{userAPI.RequireAuth(usrService), userAPI.RequireAdmin()}

	router := gin.Default()
	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, adminOnly...)
	cartHandler.RegisterRoutes(api, adminOnly...)
	api.GET("/health", func(c *gin.Context) {
		web.OKWithMessage(c, "Cart Approval API is running!", nil)
	})

	logger.Info("Cart Approval API running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run server", err)
	}
}
