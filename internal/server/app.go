// Package server initializes and runs the authentication server: it opens
// the configured stores, runs database migrations, wires the auth service,
// and serves the REST API until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"authstack/internal/logging"
	"authstack/internal/server/config"
	"authstack/internal/server/migrations"
	"authstack/internal/server/repositories/sessions"
	"authstack/internal/server/repositories/users"
	"authstack/internal/server/rest"
	"authstack/internal/server/services"
)

// sessionCleanupInterval is how often expired session rows are purged. Only
// relevant for the Postgres store; Redis keys expire on their own.
const sessionCleanupInterval = 1 * time.Hour

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redisClient *redis.Client
	sessions    sessions.Repository
	restServer  *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	app := &App{
		config: cfg,
		logger: logger,
		db:     db,
	}

	userRepo := users.NewPostgresRepository(db)

	switch cfg.SessionStore {
	case config.StoreRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url error: %w", err)
		}
		app.redisClient = redis.NewClient(opts)
		app.sessions = sessions.NewRedisRepository(app.redisClient)
	default:
		app.sessions = sessions.NewPostgresRepository(db)
	}

	authService := services.NewAuthService(userRepo, app.sessions, cfg)
	app.restServer = rest.NewServer(cfg, authService, logger)

	return app, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// startSessionCleanup purges expired session rows until ctx is cancelled.
func (app *App) startSessionCleanup(ctx context.Context) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := app.sessions.DeleteExpired(ctx); err != nil {
				app.logger.Warn(ctx, "session cleanup failed", "error", err.Error())
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app",
		"environment", app.config.Environment,
		"session_store", app.config.SessionStore,
	)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.restServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	if app.config.SessionStore == config.StorePostgres {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startSessionCleanup(ctx)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err.Error())
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err.Error())
		}
	}
}
