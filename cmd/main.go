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

	cancelBookingHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_booking"
	getResourceBookingsHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_resource_bookings"
	getScheduleConfigHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_schedule_config"
	getSlotGridHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_slot_grid"
	getUserBookingsHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/get_user_bookings"
	rescheduleBookingHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/update_booking_status"
	updateScheduleConfigHandler "github.com/m04kA/Clinic-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/Clinic-SchedulingService/internal/api/middleware"
	"github.com/m04kA/Clinic-SchedulingService/internal/config"
	bookingRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/payment"
	configRepo "github.com/m04kA/Clinic-SchedulingService/internal/infra/storage/scheduleconfig"
	directoryServiceClient "github.com/m04kA/Clinic-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/Clinic-SchedulingService/internal/integrations/notifications"
	bookingsService "github.com/m04kA/Clinic-SchedulingService/internal/service/bookings"
	configService "github.com/m04kA/Clinic-SchedulingService/internal/service/config"
	checkAvailabilityUC "github.com/m04kA/Clinic-SchedulingService/internal/usecase/check_availability"
	getSlotGridUC "github.com/m04kA/Clinic-SchedulingService/internal/usecase/get_slot_grid"
	reconcileOrphansUC "github.com/m04kA/Clinic-SchedulingService/internal/usecase/reconcile_orphans"
	rescheduleBookingUC "github.com/m04kA/Clinic-SchedulingService/internal/usecase/reschedule_booking"
	submitBookingUC "github.com/m04kA/Clinic-SchedulingService/internal/usecase/submit_booking"
	"github.com/m04kA/Clinic-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/Clinic-SchedulingService/pkg/logger"
	"github.com/m04kA/Clinic-SchedulingService/pkg/metrics"
	"github.com/m04kA/Clinic-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/Clinic-SchedulingService/pkg/txmanager"
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

	log.Info("Starting Clinic-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона клиники: в ней интерпретируются границы рабочего дня
	location, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Clinic timezone: %s", cfg.Scheduling.Timezone)

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

	// Инициализируем клиент справочника клиники
	directoryClient := directoryServiceClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	log.Info("DirectoryService client initialized (url=%s, timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout)

	// Инициализируем публикацию событий бронирования
	type eventPublisher interface {
		Publish(ctx context.Context, key string, event notifications.BookingEvent) error
		Close() error
	}
	var publisher eventPublisher = notifications.NoopPublisher{}

	if cfg.Notifications.Enabled {
		mqPublisher, err := notifications.NewPublisher(cfg.Notifications.URL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = mqPublisher
		log.Info("Notifications publisher connected (exchange=%s)", cfg.Notifications.Exchange)
	} else {
		log.Info("Notifications disabled")
	}
	defer publisher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		paymentRepository *paymentRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс transaction manager, общий для txmanager и simpletxmanager
	type txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr txManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		txMgr,
		publisher,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		log,
	)

	// Инициализируем use cases
	getSlotGridUseCase := getSlotGridUC.NewUseCase(
		bookingRepository,
		configRepository,
		directoryClient,
		location,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		directoryClient,
		log,
	)

	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		configRepository,
		directoryClient,
		txMgr,
		publisher,
		time.Duration(cfg.Scheduling.CommitTimeout)*time.Second,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		configRepository,
		txMgr,
		publisher,
		log,
	)

	reconcileOrphansUseCase := reconcileOrphansUC.NewUseCase(
		bookingRepository,
		txMgr,
		publisher,
		time.Duration(cfg.Reconciliation.GraceMinutes)*time.Minute,
		log,
	)

	// Инициализируем handlers
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(submitBookingUseCase, getSlotGridUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getResourceBookings := getResourceBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(configSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Сетка слотов ресурса на день
	api.HandleFunc("/resources/{kind}/{resourceId}/slot-grid",
		getSlotGrid.Handle).Methods(http.MethodGet)

	// Справочная проверка доступности интервала
	api.HandleFunc("/resources/{kind}/{resourceId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Эффективная конфигурация расписания ресурса
	api.HandleFunc("/resources/{kind}/{resourceId}/config",
		getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Фиксация заявки на бронирование
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (вся заявка целиком)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Перевод бронирования по жизненному циклу (для персонала клиники)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на новый интервал
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для персонала клиники) ---
	// Расписание ресурса (агенда врача или кабинета)
	protected.HandleFunc("/resources/{kind}/{resourceId}/bookings",
		getResourceBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации расписания
	protected.HandleFunc("/resources/{kind}/config",
		updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Фоновая сверка осиротевших приёмов
	stopReconcileCh := make(chan struct{})
	if cfg.Reconciliation.Enabled {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Reconciliation.Interval) * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					result, err := reconcileOrphansUseCase.Execute(context.Background())
					if err != nil {
						log.Error("Orphan reconciliation failed: %v", err)
						continue
					}
					if result.OrphansFound > 0 {
						log.Info("Orphan reconciliation: found=%d, cancelled=%d",
							result.OrphansFound, result.BookingsCancelled)
					}
				case <-stopReconcileCh:
					return
				}
			}
		}()
		log.Info("Orphan reconciliation started (interval=%ds, grace=%dmin)",
			cfg.Reconciliation.Interval, cfg.Reconciliation.GraceMinutes)
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую сверку
	if cfg.Reconciliation.Enabled {
		close(stopReconcileCh)
		log.Info("Orphan reconciliation stopped")
	}

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
