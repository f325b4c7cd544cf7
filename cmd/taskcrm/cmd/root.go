package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/task-crm/internal/infrastructure/config"
	redisdb "github.com/99minutos/task-crm/internal/infrastructure/db/redis"
	"github.com/99minutos/task-crm/internal/infrastructure/storage"
	"github.com/99minutos/task-crm/pkg/logger"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "taskcrm",
	Short: "Task CRM API server",
	Long: `Task CRM serves a JSON API for users, tasks and customers with
JWT authentication and role-scoped task visibility.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(usersCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (*storage.Backend, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage connected")
	return store, nil
}

// connectRedis returns a nil client when Redis is disabled.
func connectRedis(ctx context.Context) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		log.Info().Msg("redis disabled, login throttling off")
		return nil, nil
	}
	rdb, err := redisdb.Dial(ctx, redisdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	return rdb, nil
}
