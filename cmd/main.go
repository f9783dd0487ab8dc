package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	createBookingHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/get_booking"
	getCalendarSettingsHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/get_calendar_settings"
	listBookingsHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/update_booking_status"
	updateCalendarSettingsHandler "github.com/m04kA/SMC-FleetBookingService/internal/api/handlers/update_calendar_settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetBookingService/internal/config"
	"github.com/m04kA/SMC-FleetBookingService/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-FleetBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-FleetBookingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-FleetBookingService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-FleetBookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-FleetBookingService/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-FleetBookingService/internal/usecase/get_availability"
	getAvailableSlotsUC "github.com/m04kA/SMC-FleetBookingService/internal/usecase/get_available_slots"
	schema "github.com/m04kA/SMC-FleetBookingService/migrations"
	"github.com/m04kA/SMC-FleetBookingService/pkg/clock"
	"github.com/m04kA/SMC-FleetBookingService/pkg/datelock"
	"github.com/m04kA/SMC-FleetBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetBookingService/pkg/logger"
	"github.com/m04kA/SMC-FleetBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FleetBookingService/pkg/txmanager"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"config.toml"`
	Migrate bool   `help:"Apply migrations and exit."`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("fleet-booking-service"),
		kong.Description("Fleet service booking availability and slot allocation"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	// Загружаем конфигурацию
	cfg, err := config.Load(CLI.Config)
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

	log.Info("Starting SMC-FleetBookingService...")
	log.Info("Configuration loaded from %s", CLI.Config)

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load calendar timezone: %v", err)
	}
	clk := clock.New(loc)
	log.Info("Calendar timezone: %s", loc)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
		bookingMetrics   createBookingUC.Metrics = metrics.Nop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		bookingMetrics = metricsCollector
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

	// Миграции
	if cfg.Database.AutoMigrate || CLI.Migrate {
		applied, err := migrations.NewRunner(db, schema.FS, log).Up(context.Background())
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied: %d", applied)
	}
	if CLI.Migrate {
		return
	}

	// Обёртка БД: метрики запросов и транзакции через контекст
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Блокировка дня через redis (опционально)
	var locker createBookingUC.DateLocker = datelock.NopLock{}
	if cfg.Redis.Enabled {
		redisLock, err := datelock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisLock.Close()
		locker = redisLock
		log.Info("Redis date lock enabled (addr=%s)", cfg.Redis.Addr)
	}

	// Уведомления о новых бронированиях (опционально)
	var bookingNotifier createBookingUC.Notifier = notifier.Nop{}
	if cfg.Notifier.Enabled {
		bookingNotifier = notifier.NewClient(
			cfg.Notifier.URL,
			cfg.Notifier.Token,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Booking notifier enabled (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, log)

	// Настройки по умолчанию создаются при первом чтении
	if _, err := settingsSvc.Load(context.Background()); err != nil {
		log.Fatal("Failed to load calendar settings: %v", err)
	}

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		txMgr,
		locker,
		bookingNotifier,
		bookingMetrics,
		clk,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, settingsSvc, clk, log)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, settingsSvc, clk, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCalendarSettings := getCalendarSettingsHandler.NewHandler(settingsSvc, log)
	updateCalendarSettings := updateCalendarSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/{date}", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings/calendar", getCalendarSettings.Handle).Methods(http.MethodGet)

	// Создание бронирования: лимит по IP, Idempotency-Key, админ получает confirmed
	var create http.Handler = http.HandlerFunc(createBooking.Handle)
	create = middleware.DetectAdmin(cfg.Admin.Token)(create)
	create = middleware.Idempotency(
		cache.New(time.Duration(cfg.Idempotency.TTL)*time.Second, 10*time.Minute),
		time.Duration(cfg.Idempotency.TTL)*time.Second,
	)(create)
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewIPRateLimiter(
			rate.Limit(cfg.RateLimit.RequestsPerSecond),
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.IdleTTL)*time.Second,
			cfg.RateLimit.TrustedProxies,
		)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		create = middleware.RateLimit(limiter)(create)
		log.Info("Rate limit enabled: %.2f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Handle("/bookings", create).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin(cfg.Admin.Token))

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/settings/calendar", updateCalendarSettings.Handle).Methods(http.MethodPut)

	if cfg.Admin.Token == "" {
		log.Warn("Admin token is empty, admin routes are disabled")
	}

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
