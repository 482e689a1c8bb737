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

	cancelBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_booking"
	changeQuantityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/change_booking_quantity"
	changeStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/change_booking_status"
	getBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_booking"
	getRefundActionsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_refund_actions"
	refundBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/refund_booking"
	rescheduleBookingHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	eventRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/event"
	metaRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/meta"
	formServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/formservice"
	capacityService "github.com/m04kA/SMC-ReservationService/internal/service/capacity"
	policyService "github.com/m04kA/SMC-ReservationService/internal/service/policy"
	refundsService "github.com/m04kA/SMC-ReservationService/internal/service/refunds"
	changeQuantityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/change_quantity"
	rescheduleBookingUC "github.com/m04kA/SMC-ReservationService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	settings := cfg.Policy.ToDomain()
	registry := domain.NewStatusRegistry()
	defaults := settings.Defaults

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

	// Инициализируем интеграционного клиента
	formClient := formServiceClient.NewClient(
		cfg.FormService.URL,
		time.Duration(cfg.FormService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (FormService=%s timeout=%ds)",
		cfg.FormService.URL, cfg.FormService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		eventRepository   *eventRepo.Repository
		metaRepository    *metaRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB, registry, defaults)
		eventRepository = eventRepo.NewRepository(wrappedDB)
		metaRepository = metaRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db, registry, defaults)
		eventRepository = eventRepo.NewRepository(db)
		metaRepository = metaRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(eventRepository, log)
	refundsSvc := refundsService.NewService(settings, log)
	policySvc := policyService.NewService(
		bookingRepository,
		metaRepository,
		refundsSvc,
		registry,
		settings,
		&policyService.Overrides{},
		&policyService.RealTimeProvider{},
		log,
	)

	// Инициализируем use cases
	changeQuantityUseCase := changeQuantityUC.NewUseCase(
		bookingRepository,
		metaRepository,
		capacitySvc,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		eventRepository,
		metaRepository,
		policySvc,
		formClient,
		txMgr,
		settings,
		log,
	)

	// Инициализируем handlers
	getBooking := getBookingHandler.NewHandler(policySvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(policySvc, log)
	changeStatus := changeStatusHandler.NewHandler(policySvc, log)
	changeQuantity := changeQuantityHandler.NewHandler(changeQuantityUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, log)
	refundBooking := refundBookingHandler.NewHandler(policySvc, log)
	getRefundActions := getRefundActionsHandler.NewHandler(refundsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют идентификации актора
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Actor(log))

	// --- Бронирования ---
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/status", changeStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/quantity", changeQuantity.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/refund", refundBooking.Handle).Methods(http.MethodPost)

	// --- Группы бронирований ---
	api.HandleFunc("/booking-groups/{groupId}/cancel", cancelBooking.HandleGroup).Methods(http.MethodPatch)
	api.HandleFunc("/booking-groups/{groupId}/status", changeStatus.HandleGroup).Methods(http.MethodPatch)
	api.HandleFunc("/booking-groups/{groupId}/quantity", changeQuantity.HandleGroup).Methods(http.MethodPatch)
	api.HandleFunc("/booking-groups/{groupId}/refund", refundBooking.HandleGroup).Methods(http.MethodPost)

	// --- Возвраты ---
	api.HandleFunc("/refund-actions", getRefundActions.Handle).Methods(http.MethodPost)

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
