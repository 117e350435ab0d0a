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

	checkInHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/check_out"
	confirmBookingHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/create_booking"
	createPenaltyHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/create_penalty"
	extendVisitHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/extend_visit"
	findFreeSpacesHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/find_free_spaces"
	getActiveVisitsHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_active_visits"
	getBookingHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_booking"
	getExpiringVisitsHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_expiring_visits"
	getPenaltiesHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_penalties"
	getSpacesHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_spaces"
	getUserBookingsHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_user_bookings"
	getUserPenaltiesHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/get_user_penalties"
	revokePenaltyHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/revoke_penalty"
	sweepOverdueHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/sweep_overdue"
	walkinBookingHandler "github.com/m04kA/Coworkly-BookingService/internal/api/handlers/walkin_booking"
	"github.com/m04kA/Coworkly-BookingService/internal/api/middleware"
	"github.com/m04kA/Coworkly-BookingService/internal/config"
	"github.com/m04kA/Coworkly-BookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/booking"
	penaltyRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/penalty"
	spaceRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/space"
	visitRepo "github.com/m04kA/Coworkly-BookingService/internal/infra/storage/visit"
	userServiceClient "github.com/m04kA/Coworkly-BookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/Coworkly-BookingService/internal/service/bookings"
	penaltiesService "github.com/m04kA/Coworkly-BookingService/internal/service/penalties"
	spacesService "github.com/m04kA/Coworkly-BookingService/internal/service/spaces"
	visitsService "github.com/m04kA/Coworkly-BookingService/internal/service/visits"
	createBookingUC "github.com/m04kA/Coworkly-BookingService/internal/usecase/create_booking"
	walkinBookingUC "github.com/m04kA/Coworkly-BookingService/internal/usecase/walkin_booking"
	"github.com/m04kA/Coworkly-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Coworkly-BookingService/pkg/logger"
	"github.com/m04kA/Coworkly-BookingService/pkg/metrics"
	"github.com/m04kA/Coworkly-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/Coworkly-BookingService/pkg/txmanager"
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

	log.Info("Starting Coworkly-BookingService...")
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

	// Подключаемся к redis (если включен), деградация до прямых запросов
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, free-space cache disabled: %v", err)
			redisClient = nil
		} else {
			log.Info("Connected to redis at %s", cfg.Redis.Addr)
		}
	}
	freeSpacesCache := cache.NewFreeSpacesCache(
		redisClient,
		time.Duration(cfg.Redis.FreeSpacesTTLSecond)*time.Second,
	)

	// Инициализируем интеграционного клиента
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (UserService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		visitRepository   *visitRepo.Repository
		penaltyRepository *penaltyRepo.Repository
		spaceRepository   *spaceRepo.Repository
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
		visitRepository = visitRepo.NewRepository(wrappedDB)
		penaltyRepository = penaltyRepo.NewRepository(wrappedDB)
		spaceRepository = spaceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		visitRepository = visitRepo.NewRepository(db)
		penaltyRepository = penaltyRepo.NewRepository(db)
		spaceRepository = spaceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	penaltySvc := penaltiesService.NewService(penaltyRepository, userClient, log)
	visitSvc := visitsService.NewService(visitRepository, bookingRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	spaceSvc := spacesService.NewService(spaceRepository, freeSpacesCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		penaltySvc,
		userClient,
		txMgr,
		log,
	)
	walkinBookingUseCase := walkinBookingUC.NewUseCase(
		userClient,
		createBookingUseCase,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	walkinBooking := walkinBookingHandler.NewHandler(walkinBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createPenalty := createPenaltyHandler.NewHandler(penaltySvc, log)
	revokePenalty := revokePenaltyHandler.NewHandler(penaltySvc, log)
	getPenalties := getPenaltiesHandler.NewHandler(penaltySvc, log)
	getUserPenalties := getUserPenaltiesHandler.NewHandler(penaltySvc, log)
	checkIn := checkInHandler.NewHandler(visitSvc, log)
	checkOut := checkOutHandler.NewHandler(visitSvc, log)
	extendVisit := extendVisitHandler.NewHandler(visitSvc, log)
	getActiveVisits := getActiveVisitsHandler.NewHandler(visitSvc, log)
	getExpiringVisits := getExpiringVisitsHandler.NewHandler(visitSvc, log)
	sweepOverdue := sweepOverdueHandler.NewHandler(visitSvc, log)
	findFreeSpaces := findFreeSpacesHandler.NewHandler(spaceSvc, log)
	getSpaces := getSpacesHandler.NewHandler(spaceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

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

	// Каталог активных пространств
	api.HandleFunc("/spaces", getSpaces.Handle).Methods(http.MethodGet)

	// Поиск свободных пространств в интервале
	api.HandleFunc("/spaces/free", findFreeSpaces.Handle).Methods(http.MethodGet)

	// Активные пространства локации
	api.HandleFunc("/locations/{locationId}/spaces", getSpaces.HandleByLocation).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Активные штрафы пользователя
	protected.HandleFunc("/users/{userId}/penalties", getUserPenalties.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: ADMIN)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminOnly)

	// Подтверждение бронирования
	admin.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Walk-in бронирование с ресепшена
	admin.HandleFunc("/walkin", walkinBooking.Handle).Methods(http.MethodPost)

	// Реестр штрафов
	admin.HandleFunc("/penalties", createPenalty.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/penalties", getPenalties.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/penalties/{penaltyId}", revokePenalty.Handle).Methods(http.MethodDelete)

	// Визиты
	admin.HandleFunc("/visits/checkin", checkIn.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/visits/active", getActiveVisits.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/visits/expiring", getExpiringVisits.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/visits/overdue", sweepOverdue.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/visits/{visitId}/checkout", checkOut.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/visits/{visitId}/extend", extendVisit.Handle).Methods(http.MethodPost)

	// Фоновый проход по просроченным визитам (если включен)
	stopSweeperCh := make(chan struct{})
	if cfg.Sweeper.Enabled {
		interval := time.Duration(cfg.Sweeper.IntervalSeconds) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if _, err := visitSvc.SweepOverdue(context.Background()); err != nil {
						log.Error("Overdue sweeper failed: %v", err)
					}
				case <-stopSweeperCh:
					return
				}
			}
		}()
		log.Info("Overdue sweeper started with interval %s", interval)
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

	// Останавливаем фоновые задачи
	if cfg.Sweeper.Enabled {
		close(stopSweeperCh)
		log.Info("Overdue sweeper stopped")
	}
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
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
