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

	cancelAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/cancel_appointment"
	convertReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/convert_reservation"
	createReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/create_reservation"
	getAppointmentHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_availability"
	getCalendarConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/get_calendar_config"
	releaseReservationHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/release_reservation"
	updateCalendarConfigHandler "github.com/m04kA/SMC-ScheduleService/internal/api/handlers/update_calendar_config"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/config"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	"github.com/m04kA/SMC-ScheduleService/internal/infra/cache"
	appointmentRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/appointment"
	calendarRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	cancelAppointmentUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/cancel_appointment"
	convertReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/convert_reservation"
	getAppointmentUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_appointment"
	getAvailabilityUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_availability"
	getCalendarConfigUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_calendar_config"
	holdSlotUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/hold_slot"
	releaseReservationUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/release_reservation"
	updateCalendarConfigUC "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_calendar_config"
	"github.com/m04kA/SMC-ScheduleService/internal/worker/expirer"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SMC-ScheduleService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		reservationRepository *reservationRepo.Repository
		calendarRepository    *calendarRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем кеш доступности (если включен)
	var availabilityCache *cache.AvailabilityCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		availabilityCache = cache.New(redisClient, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		if metricsCollector != nil {
			availabilityCache.WithMetrics(metricsCollector)
		}
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	// Кеш в usecases уходит через интерфейсы: типизированный nil-указатель
	// в интерфейсном параметре перестает быть nil, поэтому присваиваем
	// только при включенном Redis
	var (
		availabilityReadCache getAvailabilityUC.AvailabilityCache
		holdInvalidator       holdSlotUC.CacheInvalidator
		convertInvalidator    convertReservationUC.CacheInvalidator
		releaseInvalidator    releaseReservationUC.CacheInvalidator
		cancelInvalidator     cancelAppointmentUC.CacheInvalidator
		expirerInvalidator    expirer.CacheInvalidator
	)
	if availabilityCache != nil {
		availabilityReadCache = availabilityCache
		holdInvalidator = availabilityCache
		convertInvalidator = availabilityCache
		releaseInvalidator = availabilityCache
		cancelInvalidator = availabilityCache
		expirerInvalidator = availabilityCache
	}

	// Инициализируем публикацию событий
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Event publishing enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		reservationRepository,
		calendarRepository,
		availabilityReadCache,
		log,
	)
	holdSlotUseCase := holdSlotUC.NewUseCase(
		appointmentRepository,
		reservationRepository,
		calendarRepository,
		txMgr,
		holdInvalidator,
		log,
	)
	if metricsCollector != nil {
		holdSlotUseCase.WithMetrics(metricsCollector)
	}
	convertReservationUseCase := convertReservationUC.NewUseCase(
		reservationRepository,
		appointmentRepository,
		calendarRepository,
		txMgr,
		convertInvalidator,
		publisher,
		log,
	)
	releaseReservationUseCase := releaseReservationUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		releaseInvalidator,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		calendarRepository,
		cancelInvalidator,
		publisher,
		log,
	)
	getAppointmentUseCase := getAppointmentUC.NewUseCase(appointmentRepository, log)
	getCalendarConfigUseCase := getCalendarConfigUC.NewUseCase(calendarRepository, log)
	updateCalendarConfigUseCase := updateCalendarConfigUC.NewUseCase(calendarRepository, log)

	// Запускаем фоновую уборку протухших резервов
	workerCtx, stopWorker := context.WithCancel(context.Background())
	expireWorker := expirer.New(
		reservationRepository,
		calendarRepository,
		expirerInvalidator,
		publisher,
		log,
		time.Duration(cfg.Worker.ExpireInterval)*time.Second,
	)
	if metricsCollector != nil {
		expireWorker.WithMetrics(metricsCollector)
	}
	go expireWorker.Run(workerCtx)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(holdSlotUseCase, log)
	convertReservation := convertReservationHandler.NewHandler(convertReservationUseCase, log)
	releaseReservation := releaseReservationHandler.NewHandler(releaseReservationUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(getAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getCalendarConfig := getCalendarConfigHandler.NewHandler(getCalendarConfigUseCase, log)
	updateCalendarConfig := updateCalendarConfigHandler.NewHandler(updateCalendarConfigUseCase, log)

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

	// API prefix с ограничением частоты запросов
	api := r.PathPrefix("/api/v1").Subrouter()
	rateLimiter := middleware.NewRateLimiter(10, 20)
	api.Use(rateLimiter.Middleware)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты услуги на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация календаря
	api.HandleFunc("/calendar/config", getCalendarConfig.Handle).Methods(http.MethodGet)

	// Удержание и освобождение слотов (держатель идентифицируется токеном)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}/convert", convertReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", releaseReservation.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление календарем (для менеджеров) ---
	protected.HandleFunc("/calendar/config", updateCalendarConfig.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновую уборку
	stopWorker()

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
