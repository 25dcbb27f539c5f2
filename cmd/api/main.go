package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"todo-api/internal/config"
	pgRepo "todo-api/internal/infra/adapter/persistence/postgres"
	sqliteRepo "todo-api/internal/infra/adapter/persistence/sqlite"
	"todo-api/internal/infra/db"
	"todo-api/internal/observability/logging"
	"todo-api/internal/observability/metrics"
	"todo-api/internal/observability/tracing"
	"todo-api/internal/repository"

	todoUC "todo-api/internal/usecase/todo"

	hhttp "todo-api/internal/handler/http"
	"todo-api/internal/handler/http/requestid"
	htodo "todo-api/internal/handler/http/todo"

	_ "todo-api/docs" // swagger docs
)

// @title           Todo API
// @version         1.0
// @description     Todo の作成・取得・更新・削除を行う REST API

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back every migration and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateDown {
		if err := rollback(ctx, logger, cfg.Database); err != nil {
			logger.Error("rollback failed", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog default.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.New(logging.Options{Level: cfg.Level, Format: cfg.Format})
	slog.SetDefault(logger)
	return logger
}

// run wires every component and blocks until ctx is cancelled or the
// listener fails.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	tp, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     cfg.Version,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to flush traces", slog.Any("error", err))
		}
	}()

	database, err := initDatabase(ctx, logger, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	repo := newTodoRepo(cfg.Database.Driver, database)
	prometheus.MustRegister(metrics.NewTodosTotalCollector(repo, logger))

	handler := setupServer(logger, cfg, database, repo)
	return runServer(ctx, logger, cfg, handler)
}

// initDatabase opens the connection pool and, unless disabled, applies
// pending migrations.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) (*sql.DB, error) {
	database, err := db.Open(ctx, db.Config{
		Driver: cfg.Driver,
		DSN:    cfg.DSN,
		Pool: db.ConnectionConfig{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !cfg.Migrate {
		logger.Warn("database migrations skipped (DB_MIGRATE=false)")
		return database, nil
	}
	if err := db.MigrateUp(ctx, database, cfg.Driver); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("database migrations applied", slog.String("driver", cfg.Driver))
	return database, nil
}

// rollback drops the schema. It never runs the server.
func rollback(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) error {
	cfg.Migrate = false
	database, err := initDatabase(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := db.MigrateDown(ctx, database, cfg.Driver); err != nil {
		return err
	}
	logger.Warn("database migrations rolled back", slog.String("driver", cfg.Driver))
	return nil
}

func newTodoRepo(driver string, database *sql.DB) repository.TodoRepository {
	if driver == config.DriverSQLite {
		return sqliteRepo.NewTodoRepo(database)
	}
	return pgRepo.NewTodoRepo(database)
}

// setupServer registers all routes and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, database *sql.DB, repo repository.TodoRepository) http.Handler {
	mux := http.NewServeMux()

	htodo.Register(mux, todoUC.Service{Repo: repo})

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Driver: cfg.Database.Driver, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Request ID → Tracing → Recovery → Logging → Body Limit → Metrics
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
		hhttp.MetricsMiddleware,
	)
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// within the configured shutdown timeout.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, handler http.Handler) error {
	// in-flight requests must outlive the shutdown signal
	baseCtx := context.WithoutCancel(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return baseCtx
		},
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Version),
			slog.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return eg.Wait()
}
