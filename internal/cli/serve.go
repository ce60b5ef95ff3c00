package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createManualBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_manual_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_customer_bookings"
	getScheduleSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule_settings"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	listMenusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_menus"
	manageBlocksHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/manage_blocks"
	streamBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/stream_bookings"
	transitionBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/transition_booking"
	updateScheduleSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_schedule_settings"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	adminBlockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/adminblock"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	menuRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/menu"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	blocksService "github.com/m04kA/SMC-SalonBooking/internal/service/blocks"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	customersService "github.com/m04kA/SMC-SalonBooking/internal/service/customers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/drafts"
	lifecycleService "github.com/m04kA/SMC-SalonBooking/internal/service/lifecycle"
	menusService "github.com/m04kA/SMC-SalonBooking/internal/service/menus"
	settingsService "github.com/m04kA/SMC-SalonBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	createManualBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_manual_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// eventBus публикация и подписка на живые обновления
type eventBus interface {
	Publish(ctx context.Context, ev events.Event)
	Subscribe(ctx context.Context) (<-chan events.Event, error)
}

func NewServeCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before start")
	return cmd
}

func serve(configPath string, migrate bool) error {
	// Загружаем конфигурацию
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting salon booking service (shop=%s, timezone=%s)", cfg.App.ShopName, cfg.App.Timezone)

	defaults, err := cfg.Schedule.ToDomain()
	if err != nil {
		return fmt.Errorf("schedule defaults: %w", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	ctx := context.Background()
	sqlDB, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прокси
	db := dbmetrics.WrapWithDefault(sqlDB, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(db).WithRetryObserver(metricsCollector)

	if migrate {
		if err := migrations.Up(ctx, db, log); err != nil {
			return err
		}
	}

	// Шина живых обновлений
	var bus eventBus = events.NopBus{}
	if cfg.Redis.Enabled {
		client := events.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			// Бронирования работают и без Redis, админка просто не получит push
			log.Warn("Redis unavailable at %s, live updates degraded: %v", cfg.Redis.Addr, err)
		}
		cancel()

		bus = events.NewRedisBus(client, cfg.Redis.Channel, log)
		log.Info("Live updates via Redis channel %q", cfg.Redis.Channel)
	}

	// Драйвер уведомлений
	mailer, err := notifier.New(notifier.Options{
		Driver:   cfg.Notifier.Driver,
		AMQPURL:  cfg.Notifier.AMQPURL,
		Queue:    cfg.Notifier.Queue,
		RelayURL: cfg.Notifier.RelayURL,
		Token:    cfg.Notifier.Token,
		Timeout:  time.Duration(cfg.Notifier.Timeout) * time.Second,
	}, log)
	if err != nil {
		return err
	}
	log.Info("Notifier driver: %s", cfg.Notifier.Driver)

	shop := drafts.Shop{Name: cfg.App.ShopName}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	customerRepository := customerRepo.NewRepository(db)
	menuRepository := menuRepo.NewRepository(db)
	settingsRepository := settingsRepo.NewRepository(db)
	blockRepository := adminBlockRepo.NewRepository(db)

	// Инициализируем сервисы
	calculator := availability.NewCalculator(bookingRepository, blockRepository, log).WithRecorder(metricsCollector)
	menuSvc := menusService.NewService(menuRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, defaults, log)
	resolver := customersService.NewResolver(customerRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, customerRepository, log)
	blockSvc := blocksService.NewService(blockRepository, bus, log)
	lifecycleSvc := lifecycleService.NewService(
		bookingRepository,
		calculator,
		settingsSvc,
		mailer,
		bus,
		txMgr,
		metricsCollector,
		shop,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(menuSvc, settingsSvc, calculator, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		resolver,
		menuSvc,
		settingsSvc,
		calculator,
		mailer,
		bus,
		txMgr,
		metricsCollector,
		shop,
		log,
	)
	createManualBookingUseCase := createManualBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		menuSvc,
		settingsSvc,
		calculator,
		bus,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listMenus := listMenusHandler.NewHandler(menuSvc, log)
	publicSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, true, log)
	adminSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, false, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createManualBooking := createManualBookingHandler.NewHandler(createManualBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	transition := transitionBookingHandler.NewHandler(lifecycleSvc, log)
	stream := streamBookingsHandler.NewHandler(bus, streamBookingsHandler.DefaultHeartbeat, log)
	getSettings := getScheduleSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateScheduleSettingsHandler.NewHandler(settingsSvc, log)
	blocks := manageBlocksHandler.NewHandler(blockSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/menus", listMenus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/available-slots", publicSlots.Handle).Methods(http.MethodGet)

	// Заявки с сайта ограничены по IP
	var submit http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			return err
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, proxies, log)
		go limiter.Cleanup(10*time.Minute, stopMetricsCh)
		submit = limiter.Middleware()(submit)
	}
	api.Handle("/bookings", submit).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log))

	admin.HandleFunc("/available-slots", adminSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createManualBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/stream", stream.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/notification-preview", transition.Preview).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", transition.Confirm).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/reject", transition.Reject).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", transition.Cancel).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/accept-alternative", transition.AcceptAlternative).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/complete", transition.Complete).Methods(http.MethodPatch)
	admin.HandleFunc("/customers/{customerId:[0-9]+}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	admin.HandleFunc("/schedule-settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocks", blocks.List).Methods(http.MethodGet)
	admin.HandleFunc("/blocks", blocks.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blocks/{blockId:[0-9]+}", blocks.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	log.Info("Starting server on %s", addr)

	// Graceful shutdown: сигнал отменяет контекст запросов, SSE-потоки закрываются сразу
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, srv, ln, time.Duration(cfg.Server.ShutdownTimeout)*time.Second); err != nil {
		log.Error("Server stopped with error: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}

// runServer обслуживает ln до отмены ctx. Контексты запросов наследуются от ctx,
// поэтому долгие запросы (поток обновлений) завершаются до Shutdown.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
