package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/PabloDarma22/E-commerce/cache"
	"github.com/PabloDarma22/E-commerce/config"
	"github.com/PabloDarma22/E-commerce/db"
	"github.com/PabloDarma22/E-commerce/handlers"
	"github.com/PabloDarma22/E-commerce/logger"
	"github.com/PabloDarma22/E-commerce/middleware"
	"github.com/PabloDarma22/E-commerce/models"
	"github.com/PabloDarma22/E-commerce/services"
	"github.com/PabloDarma22/E-commerce/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	err = database.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	var catalogCache *cache.Catalog
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		catalogCache = cache.NewCatalog(rdb, 5*time.Minute)
		log.Info().Msg("catalog cache enabled")
	}

	var uploader *storage.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = storage.NewUploader(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init s3 uploader")
		}
	}

	authHandler := handlers.NewAuthHandler(database, cfg.JWTSecret)
	productHandler := handlers.NewProductHandler(database, catalogCache, uploader)
	cartHandler := handlers.NewCartHandler(services.NewCartService(database))
	checkoutHandler := handlers.NewCheckoutHandler(services.NewCheckoutService(database))
	orderHandler := handlers.NewOrderHandler(
		database,
		services.NewOrderService(database),
		services.NewPaymentService(database),
	)
	addressHandler := handlers.NewAddressHandler(database)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/products", productHandler.List)
	r.GET("/products/:slug", productHandler.GetBySlug)
	r.GET("/categories", productHandler.ListCategories)

	auth := r.Group("", middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)

		auth.GET("/cart", cartHandler.GetCart)
		auth.POST("/cart/items", cartHandler.AddItem)
		auth.PUT("/cart/items/:item_id", cartHandler.UpdateItem)
		auth.DELETE("/cart/items/:item_id", cartHandler.RemoveItem)
		auth.DELETE("/cart", cartHandler.Clear)

		auth.POST("/checkout", checkoutHandler.Confirm)

		auth.GET("/orders", orderHandler.ListMine)
		auth.GET("/orders/:id", orderHandler.GetByID)
		auth.POST("/orders/:id/pay", orderHandler.Pay)

		auth.GET("/addresses", addressHandler.List)
		auth.POST("/addresses", addressHandler.Create)
		auth.POST("/addresses/:id/default", addressHandler.SetDefault)
		auth.DELETE("/addresses/:id", addressHandler.Delete)
	}

	admin := r.Group("/admin", middleware.AuthRequired(cfg.JWTSecret), middleware.AdminOnly())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/products/:id/image", productHandler.UploadImage)
		admin.POST("/categories", productHandler.CreateCategory)

		admin.GET("/orders", orderHandler.ListAll)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
}
