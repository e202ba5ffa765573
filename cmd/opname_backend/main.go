package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/services"
	"github.com/SscSPs/stock_opname_app/internal/handlers"
	"github.com/SscSPs/stock_opname_app/internal/middleware"
	"github.com/SscSPs/stock_opname_app/internal/platform/cache"
	"github.com/SscSPs/stock_opname_app/internal/platform/config"
	"github.com/SscSPs/stock_opname_app/internal/platform/export"
	"github.com/SscSPs/stock_opname_app/internal/platform/lock"
	"github.com/SscSPs/stock_opname_app/internal/platform/notify"
	"github.com/SscSPs/stock_opname_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/stock_opname_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Stock Opname API
// @version 1.0
// @description Medicine stock reconciliation ledger for field units and the central office.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	infra, rdb, err := buildInfrastructure(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize infrastructure", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	loginLimiter, err := middleware.NewLimiter(cfg.LoginRateLimit, rdb)
	if err != nil {
		logger.Error("Failed to create login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, infra)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, security headers)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.SecureHeaders(cfg.IsProduction),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// open dashboard streams end when the process is asked to stop
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// buildInfrastructure picks Redis backed locks, notifications and rate limits
// when REDIS_URL is set and in-process ones otherwise.
func buildInfrastructure(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Infrastructure, *redis.Client, error) {
	infra := services.Infrastructure{
		Spreadsheet: export.NewXLSXWriter(),
	}
	if cfg.GotenbergURL != "" {
		infra.Document = export.NewGotenbergRenderer(cfg.GotenbergURL)
	} else {
		logger.Warn("GOTENBERG_URL not set, PDF export disabled")
	}

	if cfg.RedisURL == "" {
		infra.Locker = lock.NewLocalLocker(cfg.LockTTL)
		infra.Notifier = notify.NewHub()
		logger.Info("Using in-process locks and notifications")
		return infra, nil, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return infra, nil, err
	}
	notifier := notify.NewRedisNotifier(rdb, logger)
	if err := notifier.Listen(ctx); err != nil {
		_ = rdb.Close()
		return infra, nil, err
	}
	infra.Locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
	infra.Notifier = notifier
	logger.Info("Using Redis for locks and notifications")
	return infra, rdb, nil
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// pgx stdlib driver so migrations share the pool's driver
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
