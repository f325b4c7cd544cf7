package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/task-crm/internal/api"
)

const shutdownTimeout = 10 * time.Second

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(context.Background()); err != nil {
				log.Warn().Err(err).Msg("storage close failed")
			}
		}()

		if autoMigrate {
			if err := store.Migrate(ctx); err != nil {
				return err
			}
		}

		rdb, err := connectRedis(ctx)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer rdb.Close()
		}

		e, err := api.NewRouter(cfg, store, rdb, log)
		if err != nil {
			return fmt.Errorf("failed to build router: %w", err)
		}

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           e,
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			log.Info().Str("addr", srv.Addr).Str("prefix", cfg.APIPrefix).Msg("http server listening")
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-shutdown:
			log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Create tables or indexes before serving")
}
