package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"momopress/internal/amqp"
	"momopress/internal/config"
	"momopress/internal/database"
	"momopress/internal/handlers"
	"momopress/internal/logger"
	"momopress/internal/metrics"
	"momopress/internal/notify"
	"momopress/internal/server"
	"momopress/internal/services"
	"momopress/internal/smsstore"
	"momopress/internal/validator"
	"momopress/internal/worker"
)

// @title           MoMo Press API
// @version         1.0
// @description     MoMo Press reads MTN Mobile Money SMS, records the transactions they describe and tracks monthly budgets.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	db := dbManager.DB()
	source, closeSource, err := messageSource(appConfig, db)
	if err != nil {
		return err
	}
	defer closeSource()

	notifier, closeNotifier := alertNotifier(ctx, appConfig)
	defer closeNotifier()

	// Initialize services
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db)
	budgetService := services.NewBudgetService(db, ledgerService)
	checkpointService := services.NewCheckpointService(db)
	statsService := services.NewStatsService(ledgerService, userService)
	inboxService := services.NewInboxService(db, appMetrics)
	auditService := services.NewAuditService(db)
	syncService := services.NewSyncService(services.SyncDeps{
		Source:      source,
		Users:       userService,
		Ledger:      ledgerService,
		Budgets:     budgetService,
		Checkpoints: checkpointService,
		Notifier:    notifier,
		Metrics:     appMetrics,
	}, services.SyncOptions{
		Sender:       appConfig.SMSSender,
		FetchTimeout: appConfig.SyncFetchTimeout,
		Location:     appConfig.Location,
	})

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register()

	router := server.NewRouter(server.Deps{
		Users:          userService,
		Budgets:        budgetService,
		Checkpoints:    checkpointService,
		Stats:          statsService,
		Inbox:          inboxService,
		Audit:          auditService,
		Sync:           syncService,
		Clock:          handlers.LocalClock(appConfig.Location),
		PipelineAPIKey: appConfig.PipelineAPIKey,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := worker.NewScheduler(userService, syncService, appConfig.SyncInterval)
	if appConfig.SyncInterval > 0 {
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting MoMo Press server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if scheduler.IsRunning() {
			if err := scheduler.Stop(shutdownCtx); err != nil {
				log.Warnw("Scheduler did not stop cleanly", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// messageSource opens the configured SMS source. The returned func releases it.
func messageSource(cfg *config.Config, db *gorm.DB) (services.MessageSource, func(), error) {
	switch cfg.SMSSource {
	case "", "inbox":
		return services.NewInboxSource(db), func() {}, nil
	case "dump":
		if cfg.SMSPath == "" {
			return nil, nil, fmt.Errorf("SMS_PATH is required for the dump source")
		}
		return smsstore.NewDumpSource(cfg.SMSPath), func() {}, nil
	case "android":
		src, err := smsstore.NewAndroidSource(cfg.SMSPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SMS database: %w", err)
		}
		return src, func() { _ = src.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported SMS_SOURCE %q (use inbox, dump or android)", cfg.SMSSource)
}

// alertNotifier logs budget alerts and, when AMQP is configured, publishes them too.
// An unreachable broker leaves alerts logged only.
func alertNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, func()) {
	if cfg.AMQPURL == "" {
		return notify.Log{}, func() {}
	}

	client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.For(logger.ComponentNotify).Warnw("AMQP unavailable, alerts will only be logged", "error", err)
		return notify.Log{}, func() {}
	}
	return notify.Multi{notify.Log{}, notify.NewQueue(client)}, func() { _ = client.Close() }
}
