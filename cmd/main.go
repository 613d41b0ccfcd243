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

	createBookingHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/create_booking"
	createPlaceHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/create_place"
	createScheduleSlotHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/create_schedule_slot"
	deletePlaceHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/delete_place"
	deleteScheduleSlotHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/delete_schedule_slot"
	deleteSchoolHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/delete_school"
	getSchedulingHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/get_scheduling"
	getSiteConfigHandler "github.com/m04kA/OpenHouse-BookingService/internal/api/handlers/get_site_config"
	"github.com/m04kA/OpenHouse-BookingService/internal/api/middleware"
	"github.com/m04kA/OpenHouse-BookingService/internal/config"
	appointmentRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/appointment"
	placeRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/place"
	scheduleRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/schedule"
	schoolRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/school"
	siteconfigRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/siteconfig"
	studentRepo "github.com/m04kA/OpenHouse-BookingService/internal/infra/storage/student"
	"github.com/m04kA/OpenHouse-BookingService/internal/integrations/mailer"
	"github.com/m04kA/OpenHouse-BookingService/internal/integrations/recaptcha"
	"github.com/m04kA/OpenHouse-BookingService/internal/migrator"
	catalogService "github.com/m04kA/OpenHouse-BookingService/internal/service/catalog"
	configService "github.com/m04kA/OpenHouse-BookingService/internal/service/config"
	createBookingUC "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_booking"
	createPlaceUC "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_place"
	createScheduleSlotUC "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_schedule_slot"
	getSchedulingUC "github.com/m04kA/OpenHouse-BookingService/internal/usecase/get_scheduling"
	"github.com/m04kA/OpenHouse-BookingService/pkg/dbmetrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/logger"
	"github.com/m04kA/OpenHouse-BookingService/pkg/metrics"
	"github.com/m04kA/OpenHouse-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/OpenHouse-BookingService/pkg/txmanager"
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

	log.Info("Starting OpenHouse-BookingService...")
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

	// Применяем миграции (если включено)
	if cfg.Database.Migrate {
		m, err := migrator.New(db, cfg.Database.MigrationsDir)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := m.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to get schema version: %v", err)
		}
		log.Info("Migrations applied, schema version: %d", version)
	}

	// Инициализируем интеграционных клиентов
	captchaClient := recaptcha.NewClient(
		cfg.Recaptcha.VerifyURL,
		cfg.Recaptcha.MinScore,
		time.Duration(cfg.Recaptcha.Timeout)*time.Second,
		log,
	)
	mailerClient := mailer.NewClient(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log,
	)
	log.Info("Integration clients initialized (recaptcha=%s, smtp=%s:%d)",
		cfg.Recaptcha.VerifyURL, cfg.SMTP.Host, cfg.SMTP.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		placeRepository       *placeRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		studentRepository     *studentRepo.Repository
		schoolRepository      *schoolRepo.Repository
		siteconfigRepository  *siteconfigRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		placeRepository = placeRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		schoolRepository = schoolRepo.NewRepository(wrappedDB)
		siteconfigRepository = siteconfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		placeRepository = placeRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		schoolRepository = schoolRepo.NewRepository(db)
		siteconfigRepository = siteconfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		placeRepository,
		scheduleRepository,
		schoolRepository,
		log,
	)
	configSvc := configService.NewService(
		siteconfigRepository,
		schoolRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		studentRepository,
		schoolRepository,
		appointmentRepository,
		placeRepository,
		scheduleRepository,
		siteconfigRepository,
		captchaClient,
		mailerClient,
		txMgr,
		log,
	)
	getSchedulingUseCase := getSchedulingUC.NewUseCase(
		placeRepository,
		scheduleRepository,
		appointmentRepository,
		siteconfigRepository,
		log,
	)
	createPlaceUseCase := createPlaceUC.NewUseCase(
		placeRepository,
		appointmentRepository,
		txMgr,
		log,
	)
	createScheduleSlotUseCase := createScheduleSlotUC.NewUseCase(
		scheduleRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getScheduling := getSchedulingHandler.NewHandler(getSchedulingUseCase, log)
	getSiteConfig := getSiteConfigHandler.NewHandler(configSvc, log)
	createPlace := createPlaceHandler.NewHandler(createPlaceUseCase, log)
	createScheduleSlot := createScheduleSlotHandler.NewHandler(createScheduleSlotUseCase, log)
	deletePlace := deletePlaceHandler.NewHandler(catalogSvc, log)
	deleteScheduleSlot := deleteScheduleSlotHandler.NewHandler(catalogSvc, log)
	deleteSchool := deleteSchoolHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// Расписание площадки с занятостью
	api.HandleFunc("/sites/{siteId}/scheduling", getScheduling.Handle).Methods(http.MethodGet)

	// Публичная конфигурация площадки
	api.HandleFunc("/sites/{siteId}/config", getSiteConfig.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/sites/{siteId}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(cfg.Server.AdminToken))

	// Создание места с материализацией записей
	admin.HandleFunc("/sites/{siteId}/places", createPlace.Handle).Methods(http.MethodPost)

	// Создание слота расписания с материализацией записей
	admin.HandleFunc("/sites/{siteId}/schedule-slots", createScheduleSlot.Handle).Methods(http.MethodPost)

	// Удаление места
	admin.HandleFunc("/sites/{siteId}/places/{placeId}", deletePlace.Handle).Methods(http.MethodDelete)

	// Удаление слота расписания
	admin.HandleFunc("/sites/{siteId}/schedule-slots/{slotId}", deleteScheduleSlot.Handle).Methods(http.MethodDelete)

	// Удаление школы
	admin.HandleFunc("/sites/{siteId}/schools/{schoolId}", deleteSchool.Handle).Methods(http.MethodDelete)

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
