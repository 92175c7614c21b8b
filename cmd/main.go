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

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/create_booking"
	createServiceHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/create_service"
	deleteSpecialDateHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/delete_special_date"
	getAvailableSlotsHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/get_client_bookings"
	getDayBookingsHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/get_day_bookings"
	getScheduleHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/get_schedule"
	listServicesHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/update_business_hours"
	updateServiceHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/update_service"
	upsertSpecialDateHandler "github.com/robin-uz/BraidByKARI-sub000/internal/api/handlers/upsert_special_date"
	"github.com/robin-uz/BraidByKARI-sub000/internal/api/middleware"
	"github.com/robin-uz/BraidByKARI-sub000/internal/config"
	bookingRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/catalog"
	scheduleRepo "github.com/robin-uz/BraidByKARI-sub000/internal/infra/storage/schedule"
	"github.com/robin-uz/BraidByKARI-sub000/internal/integrations/notifier"
	bookingsService "github.com/robin-uz/BraidByKARI-sub000/internal/service/bookings"
	catalogService "github.com/robin-uz/BraidByKARI-sub000/internal/service/catalog"
	scheduleService "github.com/robin-uz/BraidByKARI-sub000/internal/service/schedule"
	confirmBookingUC "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/confirm_booking"
	createBookingUC "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/robin-uz/BraidByKARI-sub000/internal/usecase/get_available_slots"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/dbmetrics"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/logger"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/metrics"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/simpletxmanager"
	"github.com/robin-uz/BraidByKARI-sub000/pkg/txmanager"
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

	log.Info("Starting BraidByKARI booking service...")
	log.Info("Configuration loaded from config.toml")

	// Таймзона салона: критична для проверки "запись уже состоялась"
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Server.Timezone, err)
	}

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

	// Клиент сервиса уведомлений (с заглушкой, когда выключен)
	var notifierClient interface {
		PublishBookingEvent(ctx context.Context, event notifier.BookingEvent) error
	}
	if cfg.Notifier.Enabled {
		notifierClient = notifier.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	} else {
		notifierClient = notifier.NoopClient{}
		log.Info("Notifier disabled, booking events will be dropped")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		catalogRepository  *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		notifierClient,
		location,
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		notifierClient,
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		txMgr,
		notifierClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(confirmBookingUseCase, bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getDayBookings := getDayBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(scheduleSvc, log)
	upsertSpecialDate := upsertSpecialDateHandler.NewHandler(scheduleSvc, log)
	deleteSpecialDate := deleteSpecialDateHandler.NewHandler(scheduleSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступных слотов на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Расписание салона
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи (попадает в pending, слот не занимает)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи клиентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	// Подтверждение/отмена записи администратором
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Расписание дня
	admin.HandleFunc("/schedule/bookings", getDayBookings.Handle).Methods(http.MethodGet)

	// Управление расписанием
	admin.HandleFunc("/schedule/business-hours/{dayOfWeek}", updateBusinessHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/special-dates/{date}", upsertSpecialDate.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/special-dates/{date}", deleteSpecialDate.Handle).Methods(http.MethodDelete)

	// Управление каталогом услуг
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

	// CORS для браузерных клиентов
	corsHandler := ghandlers.CORS(
		ghandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		ghandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		}),
		ghandlers.AllowedHeaders([]string{"Content-Type", "X-User-ID", "X-User-Role"}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
