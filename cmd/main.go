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

	addAdviceHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/add_advice"
	addCartItemHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/add_cart_item"
	addReviewHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/add_review"
	cancelBookingHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/cancel_booking"
	checkoutCartHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/checkout_cart"
	clearCartHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/clear_cart"
	createSlotHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_booking"
	getCartHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_cart"
	getTrainerBookingsHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_trainer_bookings"
	getTrainerSlotsHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_trainer_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/get_user_bookings"
	releaseSlotHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/release_slot"
	removeCartItemHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/remove_cart_item"
	updateBookingStatusHandler "github.com/m04kA/SMC-TrainerService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-TrainerService/internal/api/middleware"
	"github.com/m04kA/SMC-TrainerService/internal/config"
	"github.com/m04kA/SMC-TrainerService/internal/infra/cartstore"
	bookingRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TrainerService/internal/infra/storage/slot"
	notifyServiceClient "github.com/m04kA/SMC-TrainerService/internal/integrations/notifyservice"
	trainerServiceClient "github.com/m04kA/SMC-TrainerService/internal/integrations/trainerservice"
	bookingsService "github.com/m04kA/SMC-TrainerService/internal/service/bookings"
	cartService "github.com/m04kA/SMC-TrainerService/internal/service/cart"
	scheduleService "github.com/m04kA/SMC-TrainerService/internal/service/schedule"
	checkoutCartUC "github.com/m04kA/SMC-TrainerService/internal/usecase/checkout_cart"
	getAvailableSlotsUC "github.com/m04kA/SMC-TrainerService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TrainerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainerService/pkg/logger"
	"github.com/m04kA/SMC-TrainerService/pkg/metrics"
	"github.com/m04kA/SMC-TrainerService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TrainerService/pkg/txmanager"
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

	log.Info("Starting SMC-TrainerService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем интеграционных клиентов
	trainerClient := trainerServiceClient.NewClient(
		cfg.TrainerService.URL,
		time.Duration(cfg.TrainerService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TrainerService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.TrainerService.URL, cfg.TrainerService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// In-memory хранилище корзин
	cartStore := cartstore.NewStore()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		notifyClient,
		txMgr,
		bookingsService.Policy{
			CancellationWindow:  time.Duration(cfg.Booking.CancellationWindowHours) * time.Hour,
			ReleaseSlotOnCancel: cfg.Booking.ReleaseSlotOnCancel,
		},
		log,
	)
	cartSvc := cartService.NewService(
		slotRepository,
		cartStore,
		trainerClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		slotRepository,
		trainerClient,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		trainerClient,
		log,
	)
	checkoutCartUseCase := checkoutCartUC.NewUseCase(
		bookingRepository,
		slotRepository,
		cartStore,
		trainerClient,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createSlot := createSlotHandler.NewHandler(scheduleSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(scheduleSvc, log)
	releaseSlot := releaseSlotHandler.NewHandler(scheduleSvc, log)
	getTrainerSlots := getTrainerSlotsHandler.NewHandler(scheduleSvc, log)
	addCartItem := addCartItemHandler.NewHandler(cartSvc, log)
	removeCartItem := removeCartItemHandler.NewHandler(cartSvc, log)
	getCart := getCartHandler.NewHandler(cartSvc, log)
	clearCart := clearCartHandler.NewHandler(cartSvc, log)
	checkoutCart := checkoutCartHandler.NewHandler(checkoutCartUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTrainerBookings := getTrainerBookingsHandler.NewHandler(bookingSvc, log)
	addAdvice := addAdviceHandler.NewHandler(bookingSvc, log)
	addReview := addReviewHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты тренера
	api.HandleFunc("/trainers/{trainerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание тренера ---
	protected.HandleFunc("/trainers/{trainerId}/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/trainers/{trainerId}/slots", getTrainerSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/trainers/{trainerId}/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/trainers/{trainerId}/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPatch)

	// --- Корзина ---
	protected.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/cart", clearCart.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/items", addCartItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items/{itemId}", removeCartItem.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/checkout", checkoutCart.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/advice", addAdvice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/review", addReview.Handle).Methods(http.MethodPost)

	// --- История ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/trainers/{trainerId}/bookings", getTrainerBookings.Handle).Methods(http.MethodGet)

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
