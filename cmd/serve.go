package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bid-reconciler/internal/server"
	"bid-reconciler/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reconciliation scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := buildDeps(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := d.Close(); err != nil {
					utils.Error("failed to release resources", map[string]any{"error": err.Error()})
				}
			}()

			if cfg.SchedulerEnabled {
				if err := d.scheduler.Start(); err != nil {
					return err
				}
				defer d.scheduler.Stop()
			} else {
				utils.Warn("reconciliation scheduler disabled", nil)
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           server.SetupRouter(d.service),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				utils.Info("starting bid reconciler", map[string]any{"addr": srv.Addr})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
			case <-ctx.Done():
				utils.Info("shutting down", nil)
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("port", "", "HTTP port (default 8080)")
	_ = viper.BindPFlag("PORT", cmd.Flags().Lookup("port"))
	return cmd
}
