package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vocastudy/backend/internal/adapter/postgres"
	"github.com/vocastudy/backend/internal/adapter/postgres/item"
	"github.com/vocastudy/backend/internal/adapter/provider/openai"
	"github.com/vocastudy/backend/internal/config"
	"github.com/vocastudy/backend/internal/domain"
	"github.com/vocastudy/backend/internal/service/scheduler"
	"github.com/vocastudy/backend/internal/transport/middleware"
	"github.com/vocastudy/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// storage and provider adapters into the scheduler service, bootstraps the
// item store, and serves the REST API until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	schedCfg, err := schedulerConfig(cfg.Scheduler)
	if err != nil {
		return err
	}

	repo := item.New(pool, postgres.NewTxManager(pool))
	generator := openai.New(cfg.OpenAI, logger)

	svc, err := scheduler.NewService(logger, repo, generator, generator, clockwork.NewRealClock(), schedCfg)
	if err != nil {
		return err
	}

	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("bootstrap item store: %w", err)
	}

	mux := http.NewServeMux()
	rest.NewHandler(svc, logger).Register(mux)
	rest.NewHealthHandler(pool, BuildVersion()).RegisterHealth(mux)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// schedulerConfig converts the validated raw scheduler settings into the
// service's Config.
func schedulerConfig(cfg config.SchedulerConfig) (scheduler.Config, error) {
	rungs := make([]domain.Rung, len(cfg.Ladder))
	for i, r := range cfg.Ladder {
		rungs[i] = domain.Rung{Checkpoint: r.Checkpoint, ThresholdDays: r.ThresholdDays}
	}
	ladder, err := domain.NewCheckpointLadder(rungs)
	if err != nil {
		return scheduler.Config{}, fmt.Errorf("scheduler ladder: %w", err)
	}

	zone, err := time.LoadLocation(cfg.ReferenceTimezone)
	if err != nil {
		return scheduler.Config{}, fmt.Errorf("reference timezone: %w", err)
	}

	return scheduler.Config{
		Ladder:               ladder,
		NewItemsPerSelection: cfg.NewItemsPerSelection,
		ReferenceZone:        zone,
		DefaultModality:      domain.Modality(cfg.DefaultModality),
	}, nil
}
