package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BookingBot/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-BookingBot/internal/api/handlers/cancel_booking"
	getBookingHandler "github.com/m04kA/SMC-BookingBot/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-BookingBot/internal/api/handlers/get_user_bookings"
	handleEventHandler "github.com/m04kA/SMC-BookingBot/internal/api/handlers/handle_event"
	"github.com/m04kA/SMC-BookingBot/internal/api/middleware"
	"github.com/m04kA/SMC-BookingBot/internal/config"
	"github.com/m04kA/SMC-BookingBot/internal/conversation"
	bookingRepo "github.com/m04kA/SMC-BookingBot/internal/infra/storage/booking"
	sessionStore "github.com/m04kA/SMC-BookingBot/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-BookingBot/internal/infra/storage/user"
	bookingsService "github.com/m04kA/SMC-BookingBot/internal/service/bookings"
	"github.com/m04kA/SMC-BookingBot/internal/transport/telegram"
	finalizeBookingUC "github.com/m04kA/SMC-BookingBot/internal/usecase/finalize_booking"
	"github.com/m04kA/SMC-BookingBot/pkg/logger"
	"github.com/m04kA/SMC-BookingBot/pkg/metrics"
	"github.com/m04kA/SMC-BookingBot/pkg/ratelimit"
	"github.com/m04kA/SMC-BookingBot/pkg/txmanager"
)

// limiterIdleTimeout через сколько забывать лимитер молчащего пользователя
const limiterIdleTimeout = 10 * time.Minute

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

	log.Info("Starting SMC-BookingBot (env=%s)...", cfg.App.Env)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	if cfg.Metrics.Enabled {
		metricsCollector.RegisterDBStats(db, cfg.Database.DBName)
	}

	// Хранилище сессий: Get/Save/Delete для автомата, Sweep/Count для очистки
	type SessionStorage interface {
		conversation.SessionStore
		sessionStore.Sweepable
	}
	var sessions SessionStorage

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		sessions = sessionStore.NewRedisStore(client, cfg.Session.SessionTTL())
		log.Info("Session store: redis (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Session.SessionTTL())
	default:
		sessions = sessionStore.NewMemoryStore(cfg.Session.SessionTTL())
		log.Info("Session store: memory (ttl=%s)", cfg.Session.SessionTTL())
	}

	// Инициализируем репозитории
	userRepository := userRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	txMgr := txmanager.New(db)

	// Инициализируем use case
	finalizeBookingUseCase := finalizeBookingUC.NewUseCase(
		userRepository,
		bookingRepository,
		txMgr,
		time.Duration(cfg.Finalizer.Timeout)*time.Second,
		log,
	)

	// Сервис истории бронирований
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Автомат диалога
	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Schedule.Timezone, err)
	}

	var machineMetrics conversation.Metrics = conversation.NopMetrics{}
	if cfg.Metrics.Enabled {
		machineMetrics = metricsCollector
	}

	machine := conversation.NewMachine(
		sessions,
		finalizeBookingUseCase,
		conversation.Config{
			Catalog:  cfg.Catalog.Catalog(),
			Schedule: cfg.Schedule.WorkSchedule(),
			Shop:     cfg.Shop.ShopInfo(),
			Location: location,
			Strict:   cfg.IsDev(),
		},
		machineMetrics,
		log,
	)

	limiter := ratelimit.New(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	// Фоновая очистка сессий и лимитеров
	var gauge sessionStore.Gauge
	if cfg.Metrics.Enabled {
		gauge = metricsCollector
	}
	sweepInterval := time.Duration(cfg.Session.SweepInterval) * time.Second
	sweeper := sessionStore.NewSweeper(sessions, gauge, sweepInterval, log)

	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiter.Cleanup(limiterIdleTimeout)
			}
		}
	}()

	// Telegram бот
	if cfg.Telegram.Enabled {
		botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Fatal("Failed to create telegram bot: %v", err)
		}
		botAPI.Debug = cfg.Telegram.Debug
		log.Info("Authorized on account %s", botAPI.Self.UserName)

		var droppedMetrics telegram.Metrics
		if cfg.Metrics.Enabled {
			droppedMetrics = metricsCollector
		}

		bot := telegram.NewBot(botAPI, machine, limiter, droppedMetrics, telegram.Config{
			UpdateTimeout: cfg.Telegram.UpdateTimeout,
			Workers:       cfg.Telegram.Workers,
		}, log)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Run(ctx); err != nil {
				log.Error("Telegram bot stopped with error: %v", err)
			}
		}()
	}

	// Инициализируем handlers
	handleEvent := handleEventHandler.NewHandler(machine, limiter, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, pingCancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer pingCancel()

		if err := db.PingContext(pingCtx); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix, все маршруты требуют X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// Событие диалога (тот же автомат, что и в Telegram)
	api.HandleFunc("/events", handleEvent.Handle).Methods(http.MethodPost)

	// Бронирования пользователя
	api.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

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

	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем бота и фоновые задачи, дожидаемся начатых диалогов
	cancel()
	wg.Wait()

	log.Info("Stopped gracefully")
}
