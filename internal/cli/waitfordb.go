package cli

import (
	"github.com/spf13/cobra"

	"github.com/recipe-app/recipe-api/internal/infrastructure/db"
	"github.com/recipe-app/recipe-api/pkg/logger"
)

// NewWaitForDBCommand blocks until the configured backends accept
// connections. Container entrypoints run it before serve.
func NewWaitForDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wait-for-db",
		Short: "Wait until the database and token store are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			return db.WaitFor(cmd.Context(), cfg, logger.Component(log, "wait"))
		},
	}
}
