package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/tranduykhanh2004/storely/internal/api"
	"github.com/tranduykhanh2004/storely/internal/auth"
	"github.com/tranduykhanh2004/storely/internal/db"
	"github.com/tranduykhanh2004/storely/internal/metrics"
	"github.com/tranduykhanh2004/storely/internal/middleware"
	"github.com/tranduykhanh2004/storely/internal/services"
	"github.com/tranduykhanh2004/storely/internal/supabase"
	"github.com/tranduykhanh2004/storely/pkg/config"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry metrics
	ctx := context.Background()
	appMetrics, meterProvider, err := metrics.InitMetrics(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize metrics")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("error shutting down meter provider")
		}
	}()

	// Initialize database
	database, err := db.NewDB(cfg.GetDSN(), cfg.OTELServiceName)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate schema")
	}

	// Initialize Supabase client
	supaClient, err := supabase.New(supabase.Config{
		URL:        cfg.SupabaseURL,
		AnonKey:    cfg.SupabaseAnonKey,
		ServiceKey: cfg.SupabaseServiceKey,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create supabase client")
	}

	// Initialize services
	storageService := services.NewStorageService(supaClient, cfg.SupabaseStorageBucket)
	profileService := services.NewProfileService(database.DB)
	authService := services.NewAuthService(supaClient, profileService)
	categoryService := services.NewCategoryService(database.DB, storageService)
	subcategoryService := services.NewSubcategoryService(database.DB)
	productService := services.NewProductService(database.DB, appMetrics)
	variantService := services.NewProductVariantService(database.DB, storageService)
	colorService := services.NewProductColorService(database.DB, storageService)
	itemService := services.NewProductItemService(database.DB)
	featuredService := services.NewFeaturedItemService(database.DB)
	flashSaleService := services.NewFlashSaleService(database.DB)
	bannerService := services.NewBannerService(database.DB, storageService)
	newsFeedService := services.NewNewsFeedService(database.DB, storageService)
	cartService := services.NewCartService(database.DB, appMetrics)
	orderService := services.NewOrderService(database.DB, cartService, appMetrics)

	// Initialize app
	app := api.NewApp(api.Services{
		Guard:           auth.NewGuard(database.DB),
		Auth:            authService,
		Profiles:        profileService,
		Categories:      categoryService,
		Subcategories:   subcategoryService,
		Products:        productService,
		ProductVariants: variantService,
		ProductColors:   colorService,
		ProductItems:    itemService,
		FeaturedItems:   featuredService,
		FlashSales:      flashSaleService,
		Banners:         bannerService,
		NewsFeeds:       newsFeedService,
		Cart:            cartService,
		Orders:          orderService,
		Storage:         storageService,
	})

	// Setup router with middleware
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RecoverMiddleware)
	router.Use(middleware.MetricsMiddleware(appMetrics))
	router.Use(auth.NewMiddleware(cfg.SupabaseJWTSecret, supaClient).Handler)
	app.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":          cfg.AppPort,
			"otlp_endpoint": cfg.OTELExporterOTLPEndpoint,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}
