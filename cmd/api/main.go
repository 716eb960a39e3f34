package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clothing-shop-api/internal/client"
	"clothing-shop-api/internal/config"
	"clothing-shop-api/internal/logger"
	"clothing-shop-api/internal/repository"
	"clothing-shop-api/internal/server"
	"clothing-shop-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitDBClient(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal("database init failed", zap.Error(err))
	}

	rdb, err := client.InitRedisClient(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("redis init failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	couponRepo := repository.NewCouponRepository(db)

	authService := service.NewAuthService(userRepo, rdb, cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, reviewRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)
	cartService := service.NewCartService(db, cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(db, cartRepo, productRepo, orderRepo, couponRepo)
	orderService := service.NewOrderService(orderRepo)
	wishlistService := service.NewWishlistService(userRepo, productRepo)
	paymentService := service.NewPaymentService(orderRepo)

	srv := server.NewServer(
		authService,
		catalogService,
		reviewService,
		cartService,
		checkoutService,
		orderService,
		wishlistService,
		paymentService,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		logger.Log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
