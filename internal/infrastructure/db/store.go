// Package db selects and opens the storage backends named in the config.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/recipe-app/recipe-api/internal/core/ports"
	"github.com/recipe-app/recipe-api/internal/infrastructure/db/memory"
	mongodb "github.com/recipe-app/recipe-api/internal/infrastructure/db/mongo"
	"github.com/recipe-app/recipe-api/internal/infrastructure/db/postgres"
	redisdb "github.com/recipe-app/recipe-api/internal/infrastructure/db/redis"
	"github.com/recipe-app/recipe-api/internal/pkg/config"
)

type check struct {
	name string
	ping func(context.Context) error
}

// Storage bundles the repositories and token store the services need.
type Storage struct {
	Users   ports.UserRepository
	Recipes ports.RecipeRepository
	Tokens  ports.TokenStore

	checks  []check
	closers []func(context.Context) error
}

// Open connects to the configured backends and prepares their schema.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Storage, error) {
	s := &Storage{}
	if err := s.open(ctx, cfg, logger); err != nil {
		return nil, err
	}
	return s, nil
}

// open connects every backend. Whatever was opened before a failing step is
// closed again.
func (s *Storage) open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	err := s.openDatabase(ctx, cfg, logger)
	if err == nil {
		err = s.openTokenStore(ctx, cfg, logger)
	}
	if err != nil {
		if cerr := s.Close(context.Background()); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close storage after open error")
		}
		return err
	}
	return nil
}

func (s *Storage) openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, database, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, client.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, database); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		s.Users = mongodb.NewUserRepository(database)
		s.Recipes = mongodb.NewRecipeRepository(database)
		s.checks = append(s.checks, check{"mongo", func(ctx context.Context) error { return client.Ping(ctx, nil) }})

	case config.DriverPostgres:
		sqlDB, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		s.closers = append(s.closers, closeSQL(sqlDB))
		if err := postgres.Migrate(ctx, sqlDB); err != nil {
			return err
		}
		s.Users = postgres.NewUserRepository(sqlDB)
		s.Recipes = postgres.NewRecipeRepository(sqlDB)
		s.checks = append(s.checks, check{"postgres", sqlDB.PingContext})

	case config.DriverMemory:
		store := memory.NewStore()
		s.closers = append(s.closers, store.Close)
		s.Users = store.Users()
		s.Recipes = store.Recipes()
		s.checks = append(s.checks, check{"memory", store.Ping})

	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	logger.Info().Str("driver", cfg.DBDriver).Msg("database ready")
	return nil
}

func (s *Storage) openTokenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	switch cfg.TokenStore {
	case config.TokenStoreRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		s.Tokens = redisdb.NewTokenStore(client, cfg.Auth.TokenTTL)
		s.checks = append(s.checks, check{"redis", func(ctx context.Context) error { return client.Ping(ctx).Err() }})

	case config.TokenStoreMemory:
		s.Tokens = memory.NewTokenStore()

	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", cfg.TokenStore)
	}

	logger.Info().Str("store", cfg.TokenStore).Msg("token store ready")
	return nil
}

// Names lists the backends Ping checks.
func (s *Storage) Names() []string {
	names := make([]string, 0, len(s.checks))
	for _, c := range s.checks {
		names = append(names, c.name)
	}
	return names
}

// Ping checks every backend and returns the failures keyed by name.
func (s *Storage) Ping(ctx context.Context) map[string]error {
	failures := make(map[string]error)
	for _, c := range s.checks {
		if err := c.ping(ctx); err != nil {
			failures[c.name] = err
		}
	}
	return failures
}

// Close releases connections in reverse opening order.
func (s *Storage) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func closeSQL(db *sql.DB) func(context.Context) error {
	return func(context.Context) error { return db.Close() }
}

// WaitFor retries connecting to the configured database and token store
// until both answer a ping or the attempts run out.
func WaitFor(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	backoff := retry.WithMaxRetries(cfg.Wait.Attempts-1, retry.NewConstant(cfg.Wait.Interval))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := pingOnce(ctx, cfg); err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Msg("database unavailable, waiting")
			return retry.RetryableError(err)
		}
		logger.Info().Int("attempt", attempt).Msg("database available")
		return nil
	})
}

func pingOnce(ctx context.Context, cfg *config.Config) error {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, _, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		_ = client.Disconnect(ctx)
	case config.DriverPostgres:
		sqlDB, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		_ = sqlDB.Close()
	}

	if cfg.TokenStore == config.TokenStoreRedis {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		_ = client.Close()
	}
	return nil
}
