package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erp/selling/internal/bootstrap"
	"github.com/erp/selling/internal/infrastructure/auth"
	"github.com/erp/selling/internal/infrastructure/cache"
	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/erp/selling/internal/infrastructure/event"
	"github.com/erp/selling/internal/infrastructure/logger"
	"github.com/erp/selling/internal/infrastructure/persistence"
	"github.com/erp/selling/internal/infrastructure/telemetry"
	"github.com/erp/selling/internal/interfaces/http/handler"
	"github.com/erp/selling/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/erp/selling/docs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

//go:generate swag init --dir ../../ --generalInfo cmd/server/main.go --output ../../docs --parseInternal

//	@title			Selling API
//	@version		1.0
//	@description	Customers, credit control and the selling documents that consume them

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logCfg := logger.ConfigForEnvironment(cfg.App.Env, cfg.Log.Level)
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if cfg.Log.Output != "" {
		logCfg.Output = cfg.Log.Output
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting selling service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Telemetry
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh, cfg.Telemetry.DBLogFullSQL)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.Driver == config.DriverSQLite || cfg.Database.AutoMigrate {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}
	if err := telemetry.EnableDBTracing(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
		log.Fatal("Failed to enable database tracing", zap.Error(err))
	}

	// Application services
	container := bootstrap.NewContainer(db.DB, cfg, log)

	metrics, err := telemetry.NewSellingMetrics(meterProvider.Meter("selling"))
	if err != nil {
		log.Fatal("Failed to create selling metrics", zap.Error(err))
	}
	container.SetMetrics(metrics)

	var closers []shutdownStep
	if cfg.Idempotency.Enabled {
		store, err := cache.NewIdempotencyStore(ctx, cfg, log)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		container.SetIdempotencyStore(store, cfg.Idempotency.TTL)
		closers = append(closers, closer("idempotency store", store.Close))
	}

	// Event bus
	bus := event.NewInMemoryEventBus(cfg.Event, log.Named("events"))
	bus.Subscribe(container.CustomerActivity)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	container.SetEventPublisher(bus)

	// HTTP
	engine, err := router.NewEngine(cfg, log)
	if err != nil {
		log.Fatal("Failed to create HTTP engine", zap.Error(err))
	}
	handler.NewHealthHandler(version, map[string]handler.Pinger{"database": db}).RegisterRoutes(engine)

	router.NewRouter(engine, auth.NewJWTService(cfg.JWT), router.WithLogger(log)).
		Register(
			handler.NewCustomerHandler(container.Customers, container.Comments),
			handler.NewCustomerGroupHandler(container.CustomerGroups),
			handler.NewContactHandler(container.Contacts, container.Addresses),
			handler.NewPartyHandler(container.Parties, container.Credit, container.Contacts, container.Addresses, container.Payments),
			handler.NewFinanceHandler(container.Companies, container.Payments),
			handler.NewSalesOrderHandler(container.SalesOrders, container.SalesInvoices),
			handler.NewDeliveryNoteHandler(container.DeliveryNotes),
			handler.NewSalesInvoiceHandler(container.SalesInvoices),
		).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// queued events drain before the database closes; the log pipeline goes last
	steps := []shutdownStep{
		{name: "http server", fn: srv.Shutdown},
		{name: "event bus", fn: bus.Stop},
	}
	steps = append(steps, closers...)
	steps = append(steps,
		shutdownStep{name: "meter provider", fn: meterProvider.Shutdown},
		shutdownStep{name: "tracer provider", fn: tracerProvider.Shutdown},
	)
	if failed := runShutdown(shutdownCtx, log, steps); failed == 0 {
		log.Info("Server exited gracefully")
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}
}
