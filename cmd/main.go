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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	addCartItemHandler "github.com/perkpoint/storefront-service/internal/api/handlers/add_cart_item"
	clearCartHandler "github.com/perkpoint/storefront-service/internal/api/handlers/clear_cart"
	createOrderHandler "github.com/perkpoint/storefront-service/internal/api/handlers/create_order"
	createPaymentIntentHandler "github.com/perkpoint/storefront-service/internal/api/handlers/create_payment_intent"
	createProductHandler "github.com/perkpoint/storefront-service/internal/api/handlers/create_product"
	deleteProductHandler "github.com/perkpoint/storefront-service/internal/api/handlers/delete_product"
	getCartHandler "github.com/perkpoint/storefront-service/internal/api/handlers/get_cart"
	getCollectionDatesHandler "github.com/perkpoint/storefront-service/internal/api/handlers/get_collection_dates"
	getOrderHandler "github.com/perkpoint/storefront-service/internal/api/handlers/get_order"
	getSettingsHandler "github.com/perkpoint/storefront-service/internal/api/handlers/get_settings"
	getTimeSlotsHandler "github.com/perkpoint/storefront-service/internal/api/handlers/get_time_slots"
	listOrdersHandler "github.com/perkpoint/storefront-service/internal/api/handlers/list_orders"
	listProductsHandler "github.com/perkpoint/storefront-service/internal/api/handlers/list_products"
	stripeWebhookHandler "github.com/perkpoint/storefront-service/internal/api/handlers/stripe_webhook"
	updateCartItemHandler "github.com/perkpoint/storefront-service/internal/api/handlers/update_cart_item"
	updateOrderStatusHandler "github.com/perkpoint/storefront-service/internal/api/handlers/update_order_status"
	updateProductHandler "github.com/perkpoint/storefront-service/internal/api/handlers/update_product"
	updateSettingsHandler "github.com/perkpoint/storefront-service/internal/api/handlers/update_settings"
	"github.com/perkpoint/storefront-service/internal/api/middleware"
	"github.com/perkpoint/storefront-service/internal/config"
	productCache "github.com/perkpoint/storefront-service/internal/infra/cache/products"
	cartRepo "github.com/perkpoint/storefront-service/internal/infra/storage/cart"
	orderRepo "github.com/perkpoint/storefront-service/internal/infra/storage/order"
	productRepo "github.com/perkpoint/storefront-service/internal/infra/storage/product"
	reservationRepo "github.com/perkpoint/storefront-service/internal/infra/storage/reservation"
	settingsRepo "github.com/perkpoint/storefront-service/internal/infra/storage/settings"
	"github.com/perkpoint/storefront-service/internal/integrations/stripepay"
	cartService "github.com/perkpoint/storefront-service/internal/service/cart"
	catalogService "github.com/perkpoint/storefront-service/internal/service/catalog"
	ordersService "github.com/perkpoint/storefront-service/internal/service/orders"
	settingsService "github.com/perkpoint/storefront-service/internal/service/settings"
	createOrderUC "github.com/perkpoint/storefront-service/internal/usecase/create_order"
	getCollectionDatesUC "github.com/perkpoint/storefront-service/internal/usecase/get_collection_dates"
	getTimeSlotsUC "github.com/perkpoint/storefront-service/internal/usecase/get_time_slots"
	"github.com/perkpoint/storefront-service/pkg/dbmetrics"
	"github.com/perkpoint/storefront-service/pkg/logger"
	"github.com/perkpoint/storefront-service/pkg/metrics"
	"github.com/perkpoint/storefront-service/pkg/simpletxmanager"
	"github.com/perkpoint/storefront-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting storefront-service...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (если включен)
	var catalogCacheImpl catalogService.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable, catalog cache disabled: %v", err)
		} else {
			catalogCacheImpl = productCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, log)
			log.Info("Catalog cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
		cancel()
	}

	// Инициализируем платежный клиент Stripe
	stripeClient := stripepay.NewClient(stripepay.Config{
		SecretKey:        cfg.Stripe.SecretKey,
		WebhookSecret:    cfg.Stripe.WebhookSecret,
		Currency:         cfg.Stripe.Currency,
		WebhookTolerance: time.Duration(cfg.Stripe.WebhookTolerance) * time.Second,
	})

	// Инициализируем репозитории (с метриками или без)
	var (
		productRepository     *productRepo.Repository
		settingsRepository    *settingsRepo.Repository
		cartRepository        *cartRepo.Repository
		orderRepository       *orderRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс transaction manager, общий для обеих реализаций
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		productRepository = productRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		cartRepository = cartRepo.NewRepository(wrappedDB)
		orderRepository = orderRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		productRepository = productRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		cartRepository = cartRepo.NewRepository(db)
		orderRepository = orderRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	catalogSvc := catalogService.NewService(productRepository, catalogCacheImpl, log)
	cartSvc := cartService.NewService(cartRepository, productRepository, settingsSvc, log)
	ordersSvc := ordersService.NewService(orderRepository, reservationRepository, stripeClient, log)

	// Загружаем настройки витрины при старте
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsSvc.Load(startupCtx); err != nil {
		log.Fatal("Failed to load storefront settings: %v", err)
	}
	cancelStartup()

	// Инициализируем use cases
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(reservationRepository, settingsSvc, log)
	getCollectionDatesUseCase := getCollectionDatesUC.NewUseCase(settingsSvc, log)
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		reservationRepository,
		cartRepository,
		settingsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getCollectionDates := getCollectionDatesHandler.NewHandler(getCollectionDatesUseCase, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	listProducts := listProductsHandler.NewHandler(catalogSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	getCart := getCartHandler.NewHandler(cartSvc, log)
	addCartItem := addCartItemHandler.NewHandler(cartSvc, log)
	updateCartItem := updateCartItemHandler.NewHandler(cartSvc, log)
	clearCart := clearCartHandler.NewHandler(cartSvc, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(ordersSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(stripeClient, ordersSvc, log)
	listOrders := listOrdersHandler.NewHandler(ordersSvc, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(ordersSvc, log)
	createProduct := createProductHandler.NewHandler(catalogSvc, log)
	updateProduct := updateProductHandler.NewHandler(catalogSvc, log)
	deleteProduct := deleteProductHandler.NewHandler(catalogSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Меню
	api.HandleFunc("/products", listProducts.Handle).Methods(http.MethodGet)

	// Настройки витрины (опции продуктов, заблокированные даты)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// Даты и слоты самовывоза
	api.HandleFunc("/collection-dates", getCollectionDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)

	// Вебхуки Stripe (авторизация - подпись запроса)
	api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Корзина ---
	protected.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/cart/items", addCartItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items", updateCartItem.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/cart", clearCart.Handle).Methods(http.MethodDelete)

	// --- Заказы ---
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id}/payment-intent", createPaymentIntent.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют JWT с ролью admin)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminJWTSecret))

	// --- Заказы ---
	admin.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог ---
	admin.HandleFunc("/products", createProduct.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", updateProduct.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/products/{id}", deleteProduct.Handle).Methods(http.MethodDelete)

	// --- Настройки витрины ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
