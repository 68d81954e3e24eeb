package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/trackit/api"
	"github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/app"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
	"github.com/frahmantamala/trackit/internal/telemetry"
	"github.com/frahmantamala/trackit/internal/transport/rest"
	"github.com/frahmantamala/trackit/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the console HTTP server in front of the TrackIT backend`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	GormDB *gorm.DB
	DB     *sqlx.DB
	Redis  *redis.Client
	Store  pagecache.Store
	App    *app.App
	Logger *slog.Logger
}

// Close releases the database and cache connections.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error("Redis close error", "error", err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			d.Logger.Error("Database close error", "error", err)
		}
	}
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	shutdownTracing := telemetry.Setup(context.Background(), deps.Config.Observability.Tracing, deps.Logger)

	if _, err := api.Load(context.Background()); err != nil {
		deps.Logger.Error("invalid openapi document", "error", err)
		os.Exit(1)
	}

	health := rest.NewHealthHandler(healthComponents(deps))
	router := deps.App.Router(health, api.Document)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "backend", deps.Config.Backend.BaseURL)

	server := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(router, "trackit-console"),
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			deps.Logger.Error("Tracer shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Observability.Logging
	logger.Init(cfg.Env, logCfg.Level, logCfg.Format)
	log := logger.LoggerWrapper()

	deps := &Dependencies{Config: cfg, Logger: log}

	deps.DB, err = connectSQL(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	deps.GormDB, err = connectGorm(cfg.Database, deps.DB)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	switch cfg.Cache.Driver {
	case "redis":
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		store := pagecache.NewRedisStore(deps.Redis, cfg.Cache.TTL)
		ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		deps.Store = store
	default:
		deps.Store = pagecache.NewMemoryStore(cfg.Cache.TTL)
	}

	deps.App, err = app.New(cfg, deps.GormDB, deps.Store, log)
	if err != nil {
		deps.Close()
		return nil, err
	}

	log.Info("dependencies ready", "db_driver", cfg.Database.Driver, "cache_driver", cfg.Cache.Driver)
	return deps, nil
}

// connectSQL opens the session database through database/sql.
func connectSQL(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	driver := "pgx"
	if cfg.Driver == "sqlite" {
		driver = "sqlite3"
	}
	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	return db, nil
}

// connectGorm shares the sqlx pool with gorm.
func connectGorm(cfg internal.DatabaseConfig, db *sqlx.DB) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Dialector{Conn: db.DB}
	default:
		dialector = postgres.New(postgres.Config{Conn: db.DB})
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}

func healthComponents(deps *Dependencies) map[string]rest.Pinger {
	components := map[string]rest.Pinger{"database": deps.DB}
	if store, ok := deps.Store.(*pagecache.RedisStore); ok {
		components["cache"] = rest.PingFunc(store.Ping)
	}
	return components
}
