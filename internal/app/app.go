// Package app assembles the process-wide dependencies from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Mostofa-Abedin/trello/internal/api"
	"github.com/Mostofa-Abedin/trello/internal/api/handler"
	"github.com/Mostofa-Abedin/trello/internal/core/ports"
	"github.com/Mostofa-Abedin/trello/internal/core/service"
	"github.com/Mostofa-Abedin/trello/internal/infrastructure/crypto"
	"github.com/Mostofa-Abedin/trello/internal/infrastructure/db/redis"
	"github.com/Mostofa-Abedin/trello/internal/infrastructure/db/sqlstore"
	"github.com/Mostofa-Abedin/trello/internal/pkg/config"
)

// App is built once at startup and closed at shutdown.
type App struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *gorm.DB
	Redis  *goredis.Client // nil when REDIS_ADDR is empty
	Users  *service.UserService
	Echo   *echo.Echo
}

// New opens storage, optionally connects to Redis and wires the HTTP layer.
// Everything opened so far is released when a later step fails.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	db, err := sqlstore.Open(ctx, sqlstore.Config{
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	a.DB = db

	if cfg.Database.MigrateOnStart {
		if err := sqlstore.CreateSchema(ctx, db, cfg.Database.URL); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("schema: %w", err)
		}
	}

	var cache ports.UserViewCache
	redisCfg := redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if redisCfg.Enabled() {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.Redis = rdb
		cache = redis.NewViewCache(rdb, cfg.Redis.UserViewTTL)
	} else {
		log.Info().Msg("REDIS_ADDR not set, user view cache disabled")
	}

	a.Users = service.NewUserService(
		sqlstore.NewUserRepository(db),
		crypto.NewBcryptHasher(cfg.BcryptCost),
		cache,
		log.With().Str("component", "users").Logger(),
	)

	a.Echo = api.NewRouter(api.Deps{
		Log:       log,
		Users:     a.Users,
		Readiness: a.readinessChecks(),
		Registry:  prometheus.NewRegistry(),
	})

	return a, nil
}

func (a *App) readinessChecks() []handler.Dependency {
	checks := []handler.Dependency{{
		Name: string(sqlstore.DialectOf(a.Config.Database.URL)),
		Ping: func(ctx context.Context) error { return sqlstore.Ping(ctx, a.DB) },
	}}
	if a.Redis != nil {
		checks = append(checks, handler.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return a.Redis.Ping(ctx).Err() },
		})
	}
	return checks
}

// Close releases Redis and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, sqlstore.Close(a.DB))
	}
	return errors.Join(errs...)
}
