package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/typeb/pkg/adapters/http"
	"github.com/aretw0/typeb/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Serves POST /encrypt, POST /decrypt, the /keys API and /metrics.
Every request builds its own machine from a stored or inline key sheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, _ := newLogger(cmd)
		port, _ := cmd.Flags().GetString("port")

		store, err := openStore(cmd)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)
		hooks := metrics.Hooks().Merge(observability.LogHooks(logger))

		handler := httpAdapter.NewHandler(store,
			httpAdapter.WithLifecycleHooks(hooks),
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting typeb server", "addr", srv.Addr)
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting typeb server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				return srv.Close()
			}
			logger.Info("typeb server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "P", "8080", "Port to listen on")
}
