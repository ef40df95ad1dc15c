package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hanko-field/cartview/internal/di"
	"github.com/hanko-field/cartview/internal/platform/observability"
)

func newServeCmd() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve shipment views over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := flags.load(ctx)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			baseLogger, err := observability.NewLogger(cfg.Observability.LogLevel)
			if err != nil {
				return fmt.Errorf("initialise logger: %w", err)
			}
			defer func() {
				_ = baseLogger.Sync()
			}()
			logger := baseLogger.Named(cfg.Observability.ServiceName)
			ctx = observability.WithLogger(ctx, logger)

			reg, err := di.OpenRegistry(ctx, cfg)
			if err != nil {
				return fmt.Errorf("open repositories: %w", err)
			}
			container, err := di.NewContainer(ctx, cfg, reg, logger)
			if err != nil {
				_ = reg.Close(ctx)
				return fmt.Errorf("build container: %w", err)
			}

			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      container.Handler,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
				BaseContext: func(net.Listener) context.Context {
					return observability.WithLogger(context.Background(), logger)
				},
			}

			serveErr := make(chan error, 1)
			go func() {
				logger.Info("server starting",
					zap.String("addr", srv.Addr),
					zap.String("store", cfg.Store.Kind),
					zap.String("version", version),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					_ = container.Close(context.Background())
					return fmt.Errorf("server error: %w", err)
				}
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
			}
			if err := container.Close(shutdownCtx); err != nil {
				logger.Warn("repository close error", zap.Error(err))
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file with CARTVIEW_* overrides")
	cmd.Flags().StringVar(&flags.fixtures, "fixtures", "", "Serve carts from a YAML fixture file")
	cmd.Flags().StringVar(&flags.markets, "markets", "", "Path to the market registry YAML")
	return cmd
}
