package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	app_auth "softglow/internal/app/auth"
	app_carts "softglow/internal/app/carts"
	app_catalog "softglow/internal/app/catalog"
	app_contact "softglow/internal/app/contact"
	app_favorites "softglow/internal/app/favorites"
	app_feedback "softglow/internal/app/feedback"
	app_notifications "softglow/internal/app/notifications"
	app_orders "softglow/internal/app/orders"
	"softglow/internal/config"
	http_auth "softglow/internal/handler/http/auth"
	http_carts "softglow/internal/handler/http/carts"
	http_catalog "softglow/internal/handler/http/catalog"
	http_contact "softglow/internal/handler/http/contact"
	http_favorites "softglow/internal/handler/http/favorites"
	http_feedback "softglow/internal/handler/http/feedback"
	"softglow/internal/handler/http/middleware"
	http_notifications "softglow/internal/handler/http/notifications"
	http_orders "softglow/internal/handler/http/orders"
	kafka_handler "softglow/internal/handler/kafka"
	"softglow/internal/infrastructure/database"
	"softglow/internal/infrastructure/kafka"
	"softglow/internal/infrastructure/razorpay"
	postgres_admin_repo "softglow/internal/repository/admin_repo/postgres"
	postgres_cart_repo "softglow/internal/repository/cart_repo/postgres"
	postgres_contact_repo "softglow/internal/repository/contact_repo/postgres"
	postgres_customer_repo "softglow/internal/repository/customer_repo/postgres"
	postgres_favorite_repo "softglow/internal/repository/favorite_repo/postgres"
	postgres_feedback_repo "softglow/internal/repository/feedback_repo/postgres"
	postgres_notification_repo "softglow/internal/repository/notification_repo/postgres"
	postgres_order_repo "softglow/internal/repository/order_repo/postgres"
	postgres_outbox_repo "softglow/internal/repository/outbox_repo/postgres"
	postgres_product_repo "softglow/internal/repository/product_repo/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("SoftGlow API starting...")

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsURL, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	kafkaProducer, err := kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create Kafka producer", zap.Error(err))
	}
	defer func() {
		if err := kafkaProducer.Close(); err != nil {
			appLogger.Error("Error closing Kafka producer", zap.Error(err))
		} else {
			appLogger.Info("Kafka producer closed.")
		}
	}()

	gateway := razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, appLogger)

	productRepository := postgres_product_repo.NewProductRepository(db)
	cartRepository := postgres_cart_repo.NewCartRepository(db, appLogger)
	outboxRepository := postgres_outbox_repo.NewOutboxRepository(db, appLogger)
	orderRepository := postgres_order_repo.NewOrderRepository(db, outboxRepository, appLogger)
	customerRepository := postgres_customer_repo.NewCustomerRepository(db)
	adminRepository := postgres_admin_repo.NewAdminRepository(db)
	notificationRepository := postgres_notification_repo.NewNotificationRepository(db)
	favoriteRepository := postgres_favorite_repo.NewFavoriteRepository(db)
	feedbackRepository := postgres_feedback_repo.NewFeedbackRepository(db)
	contactRepository := postgres_contact_repo.NewContactRepository(db)

	tokens := app_auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	catalogService := app_catalog.NewCatalogService(productRepository, appLogger)
	cartService := app_carts.NewCartService(cartRepository, productRepository, appLogger)
	orderService := app_orders.NewOrderService(
		orderRepository, cartRepository, productRepository, customerRepository,
		outboxRepository, kafkaProducer, gateway,
		cfg.KafkaOrderEventsTopic, cfg.KafkaEmailsTopic, cfg.Currency, appLogger)
	notificationService := app_notifications.NewNotificationService(notificationRepository, adminRepository, appLogger)
	favoriteService := app_favorites.NewFavoriteService(favoriteRepository, productRepository, appLogger)
	feedbackService := app_feedback.NewFeedbackService(feedbackRepository, orderRepository, appLogger)
	contactService := app_contact.NewContactService(contactRepository, appLogger)
	authService := app_auth.NewAuthService(customerRepository, adminRepository, outboxRepository, tokens, cfg.KafkaEmailsTopic, appLogger)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(cfg.OutboxPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				appLogger.Info("Outbox poller stopped.")
				return
			case <-ticker.C:
				pollCtx, pollCancel := context.WithTimeout(rootCtx, cfg.OutboxPollTimeout)
				if err := orderService.ProcessOutbox(pollCtx); err != nil {
					appLogger.Error("Error processing outbox messages", zap.Error(err))
				}
				pollCancel()
			}
		}
	}()

	orderEventsHandler := kafka_handler.NewOrderEventsHandler(notificationService, appLogger)
	go func() {
		err := kafka.StartConsumer(rootCtx, cfg.GetKafkaBrokers(), cfg.KafkaOrderEventsTopic, cfg.KafkaConsumerGroup, orderEventsHandler.Handle, appLogger)
		if err != nil {
			appLogger.Error("Kafka consumer exited with error", zap.Error(err))
		}
	}()

	authenticator := middleware.NewAuthenticator(tokens)

	authHandler := http_auth.NewAuthHandler(authService, appLogger)
	catalogHandler := http_catalog.NewCatalogHandler(catalogService, appLogger)
	cartHandler := http_carts.NewCartHandler(cartService, appLogger)
	orderHandler := http_orders.NewOrderHandler(orderService, appLogger)
	notificationHandler := http_notifications.NewNotificationHandler(notificationService, appLogger)
	favoriteHandler := http_favorites.NewFavoriteHandler(favoriteService, appLogger)
	feedbackHandler := http_feedback.NewFeedbackHandler(feedbackService, appLogger)
	contactHandler := http_contact.NewContactHandler(contactService, appLogger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(60 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Metrics)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	router.Handle("/metrics", promhttp.Handler())

	http_auth.RegisterRoutes(router, authHandler, authenticator)
	http_catalog.RegisterRoutes(router, catalogHandler, authenticator)
	http_carts.RegisterRoutes(router, cartHandler, authenticator)
	http_orders.RegisterRoutes(router, orderHandler, authenticator)
	http_notifications.RegisterRoutes(router, notificationHandler, authenticator)
	http_favorites.RegisterRoutes(router, favoriteHandler, authenticator)
	http_feedback.RegisterRoutes(router, feedbackHandler, authenticator)
	http_contact.RegisterRoutes(router, contactHandler, authenticator)

	serverAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server starting", zap.String("address", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutdown signal received, stopping...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		appLogger.Info("HTTP server stopped gracefully.")
	}
}
