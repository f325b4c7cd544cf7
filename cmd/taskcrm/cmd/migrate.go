package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tables or indexes of the configured storage",
	Long: `For MongoDB this creates the unique users.email index and the task
lookup indexes. For PostgreSQL and SQLite it creates the users, customers
and tasks tables. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		if err := store.Migrate(ctx); err != nil {
			return err
		}

		log.Info().Str("driver", cfg.Storage.Driver).Msg("migration complete")
		return nil
	},
}
