package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/config"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/pipeline"
	"github.com/spendwise/backend/internal/router"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}
}

func connect(cfg *config.Config) error {
	if cfg.Database.Driver == config.DriverPostgres {
		return models.ConnectPostgres(cfg.PostgresDSN())
	}

	// Create data directory
	if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), os.ModePerm); err != nil {
		return fmt.Errorf("creating the data directory: %w", err)
	}

	return models.Connect(cfg.Database.DSN)
}

// serve runs the API until ctx is done.
func serve(ctx context.Context, cfg *config.Config) error {
	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("api_url is not a valid URL: %w", err)
	}

	if err := connect(cfg); err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := models.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	strategy, err := newStrategy(cfg, models.DB)
	if err != nil {
		return err
	}

	adv, err := newAdvisor(ctx, cfg)
	if err != nil {
		return err
	}

	broker := events.NewBroker(cfg.Events.Buffer)
	defer broker.Close()

	publisher, closePublisher, err := newPublisher(cfg, broker)
	if err != nil {
		return err
	}
	defer closePublisher()

	opts, err := pipelineOptions(cfg)
	if err != nil {
		return err
	}

	co := controllers.Controller{
		Ledger: ledger.New(models.DB, pipeline.New(models.DB, strategy, adv, publisher, opts)),
		Broker: broker,
	}

	routerOpts := router.Options{
		AllowOrigins: cfg.AllowOrigins(),
		Pprof:        cfg.Pprof.Enabled,
	}

	r, teardown, err := router.Config(apiURL, routerOpts)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(co, r.Group("/"), routerOpts)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.Server.Address).Str("version", router.Version()).Msg("starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	// Closing the broker ends open event streams, they would block the shutdown otherwise
	broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}
