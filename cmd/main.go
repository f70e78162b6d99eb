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

	cancelBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/cancel_booking"
	createEventBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_event_booking"
	createUnitBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/create_unit_booking"
	facilitiesHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/facilities"
	getAvailabilityHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/list_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/record_payment"
	rescheduleBookingHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-FacilityService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/config"
	"github.com/m04kA/SMC-FacilityService/internal/infra/queue"
	eventBookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/eventbooking"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
	rescheduleLogRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/reschedulelog"
	unitBookingRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/unitbooking"
	membershipClient "github.com/m04kA/SMC-FacilityService/internal/integrations/membership"
	availabilityService "github.com/m04kA/SMC-FacilityService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-FacilityService/internal/service/bookings"
	createEventBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/create_event_booking"
	createUnitBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/create_unit_booking"
	getAvailabilityUC "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
	rescheduleBookingUC "github.com/m04kA/SMC-FacilityService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-FacilityService/internal/worker/completion"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/logger"
	"github.com/m04kA/SMC-FacilityService/pkg/metrics"
	"github.com/m04kA/SMC-FacilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-FacilityService/pkg/txmanager"
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

	log.Info("Starting SMC-FacilityService...")
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

	// Инициализируем клиента сервиса членства
	var membership interface {
		GetDiscountWithGracefulDegradation(ctx context.Context, userID int64) (*membershipClient.Discount, error)
	}
	if cfg.Membership.Enabled {
		membership = membershipClient.NewClient(
			cfg.Membership.URL,
			time.Duration(cfg.Membership.Timeout)*time.Second,
			log,
		)
		log.Info("Membership client initialized (url=%s, timeout=%ds)", cfg.Membership.URL, cfg.Membership.Timeout)
	} else {
		membership = membershipClient.DisabledClient{}
		log.Info("Membership integration disabled, no discounts will be applied")
	}

	// Инициализируем публикацию событий жизненного цикла
	var publisher interface {
		Publish(ctx context.Context, routingKey string, payload interface{}) error
	}
	if cfg.Queue.Enabled {
		queuePublisher, err := queue.NewPublisher(cfg.Queue.URL, cfg.Queue.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer queuePublisher.Close()
		publisher = queuePublisher
	} else {
		publisher = queue.NoopPublisher{}
		log.Info("Queue integration disabled, lifecycle events will not be published")
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		facilityRepository    *facilityRepo.Repository
		unitRepository        *unitBookingRepo.Repository
		eventRepository       *eventBookingRepo.Repository
		rescheduleRepository  *rescheduleLogRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		unitRepository = unitBookingRepo.NewRepository(wrappedDB)
		eventRepository = eventBookingRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		facilityRepository = facilityRepo.NewRepository(db)
		unitRepository = unitBookingRepo.NewRepository(db)
		eventRepository = eventBookingRepo.NewRepository(db)
		rescheduleRepository = rescheduleLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(unitRepository, eventRepository, log)
	bookingsSvc := bookingsService.NewService(
		unitRepository,
		eventRepository,
		rescheduleRepository,
		txMgr,
		cfg.Booking.CancellationPolicy(),
		&bookingsService.RealTimeProvider{},
		publisher,
		log,
	)

	// Инициализируем use cases
	createUnitBookingUseCase := createUnitBookingUC.NewUseCase(
		facilityRepository,
		unitRepository,
		availabilitySvc,
		membership,
		txMgr,
		publisher,
		cfg.Booking.ReminderOffset(),
		log,
	)
	createEventBookingUseCase := createEventBookingUC.NewUseCase(
		facilityRepository,
		eventRepository,
		availabilitySvc,
		membership,
		txMgr,
		publisher,
		cfg.Booking.ReminderOffset(),
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		facilityRepository,
		unitRepository,
		eventRepository,
		rescheduleRepository,
		availabilitySvc,
		txMgr,
		publisher,
		cfg.Booking.ReminderOffset(),
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		facilityRepository,
		unitRepository,
		eventRepository,
		log,
	)

	// Инициализируем handlers
	createUnitBooking := createUnitBookingHandler.NewHandler(createUnitBookingUseCase, log)
	createEventBooking := createEventBookingHandler.NewHandler(createEventBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	facilities := facilitiesHandler.NewHandler(facilityRepository, log)

	// Запускаем фоновое завершение просроченных бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	completionWorker := completion.NewWorker(unitRepository, eventRepository, cfg.Booking.CompletionSweepInterval(), log)
	go completionWorker.Run(workerCtx)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог объектов
	api.HandleFunc("/facilities", facilities.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{facilityId}", facilities.HandleGet).Methods(http.MethodGet)

	// Расписание занятости объекта
	api.HandleFunc("/facilities/{facilityId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирований
	protected.HandleFunc("/unit-bookings", createUnitBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/event-bookings", createEventBooking.Handle).Methods(http.MethodPost)

	// Чтение бронирований
	protected.HandleFunc("/bookings/{kind}", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{kind}/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Операции над бронированиями
	protected.HandleFunc("/bookings/{kind}/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/payments", recordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{kind}/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

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

	// Останавливаем фоновый воркер и сбор метрик
	stopWorker()
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
