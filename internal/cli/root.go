// Package cli wires configuration, storage and services into the
// recipe-api commands.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/recipe-app/recipe-api/internal/pkg/config"
	"github.com/recipe-app/recipe-api/pkg/logger"
)

const serviceName = "recipe-api"

// NewRootCommand creates the root command. Without a subcommand it serves
// the HTTP API.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           serviceName,
		Short:         "Recipe API server",
		Long:          "HTTP API for user accounts, token authentication and owner-scoped recipes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewCreateSuperuserCommand())
	cmd.AddCommand(NewWaitForDBCommand())

	return cmd
}

// bootstrap loads the environment config and initialises the process logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})
	return cfg, log, nil
}
