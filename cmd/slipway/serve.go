package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/opskit/slipway"
	"github.com/opskit/slipway/internal/logging"
	"github.com/opskit/slipway/pkg/adapters/excel"
	"github.com/opskit/slipway/pkg/adapters/httpapi"
	"github.com/opskit/slipway/pkg/adapters/memory"
	"github.com/opskit/slipway/pkg/adapters/pagerduty"
	redisstore "github.com/opskit/slipway/pkg/adapters/redis"
	"github.com/opskit/slipway/pkg/observability"
	"github.com/opskit/slipway/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the wizard as an HTTP server, exposing spreadsheet, directory and session endpoints as a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := resolveConfig(cmd)
		if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
			cfg.RedisAddr = addr
		}
		port, _ := cmd.Flags().GetString("port")
		level, _ := cmd.Flags().GetString("log-level")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")

		logger := logging.New(logging.ParseLevel(level))

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		opts := []slipway.Option{
			slipway.WithLogger(logger),
			slipway.WithLifecycleHooks(metrics.Hooks()),
		}
		if cfg.DeckPath != "" {
			opts = append(opts, slipway.WithDeckFile(cfg.DeckPath))
		}
		wiz, err := slipway.New(opts...)
		if err != nil {
			fmt.Printf("Error initializing wizard: %v\n", err)
			os.Exit(1)
		}

		var directory ports.Directory
		if cfg.PagerDutyToken != "" {
			var clientOpts []pagerduty.ClientOption
			if cfg.PagerDutyBaseURL != "" {
				clientOpts = append(clientOpts, pagerduty.WithBaseURL(cfg.PagerDutyBaseURL))
			}
			directory = pagerduty.NewClient(cfg.PagerDutyToken, clientOpts...)
		} else {
			logger.Info("no PagerDuty token configured, serving fixture services")
			directory = pagerduty.NewFixture()
		}

		var sessions ports.StateStore
		if cfg.RedisAddr != "" {
			sessions = redisstore.New(cfg.RedisAddr, cfg.RedisPassword, 0,
				redisstore.WithTTL(sessionTTL))
			logger.Info("session store: redis", "addr", cfg.RedisAddr)
		} else {
			sessions = memory.NewStore()
			logger.Info("session store: memory")
		}

		handler := httpapi.NewHandler(
			wiz.Engine(),
			excel.NewStore(cfg.SpreadsheetPath),
			directory,
			sessions,
			httpapi.WithLogger(logger),
			httpapi.WithHooks(metrics.Hooks()),
			httpapi.WithRegistry(registry),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Slipway Server on %s\n", srv.Addr)
			fmt.Printf("Spreadsheet: %s\n", cfg.SpreadsheetPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Slipway Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (default: in-memory)")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Redis session expiry (0 disables)")
}
