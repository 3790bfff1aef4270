package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harunoguchi/trader-battle/internal/api"
	"github.com/harunoguchi/trader-battle/internal/api/handlers"
)

var apiPort string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve results over HTTP",
	Long: `Starts the read-only results API.

Endpoints:
  GET /health                            health check
  GET /api/results/daily/{date}          one date's summary
  GET /api/results/monthly/{year}/{month} the month's matrix
  GET /api/picks/{week}                  one week's picks
  GET /api/calendar/{date}               calendar classification

Example:
  battle api
  battle api --port 8080`,
	RunE: runAPIServer,
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "listen port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	svc, cfg, log, err := initService()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	router := api.NewRouter(handlers.NewResultsHandler(svc, log), log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
