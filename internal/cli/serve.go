package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recipe-app/recipe-api/internal/api"
	"github.com/recipe-app/recipe-api/internal/core/service"
	"github.com/recipe-app/recipe-api/internal/infrastructure/db"
	"github.com/recipe-app/recipe-api/internal/pkg/config"
	"github.com/recipe-app/recipe-api/pkg/logger"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	storage, err := db.Open(ctx, cfg, logger.Component(log, "storage"))
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	e := newServer(cfg, storage, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("db", cfg.DBDriver).Str("tokens", cfg.TokenStore).Msg("server starting")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func newServer(cfg *config.Config, storage *db.Storage, log zerolog.Logger) *echo.Echo {
	users := service.NewUserService(storage.Users, storage.Tokens, logger.Component(log, "users"))
	auth := service.NewAuthService(storage.Users, storage.Tokens, cfg.Auth.TokenSecret, logger.Component(log, "auth"))
	recipes := service.NewRecipeService(storage.Recipes, logger.Component(log, "recipes"))

	return api.NewRouter(api.Dependencies{
		Users:   users,
		Auth:    auth,
		Recipes: recipes,
		Health:  storage,
		Logger:  logger.Component(log, "http"),
	})
}
