package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra/internal/adapters/httpapi"
	"github.com/atomgraph/webalgebra/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the engine in server mode, exposing document evaluation and
single-operation calls over a JSON API, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		metrics := observability.NewPrometheus()
		engine, logger, err := buildEngine(cmd, metrics)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpapi.NewHandler(engine, logger, metrics),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting HTTP server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server failed", "error", err)
			os.Exit(1)
		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				logger.Error("could not stop server gracefully", "error", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	serveCmd.Flags().String("port", "8080", "Port for the HTTP server")
	rootCmd.AddCommand(serveCmd)
}
