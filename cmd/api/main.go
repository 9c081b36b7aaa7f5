package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"goal-forecast/internal/api"
	"goal-forecast/internal/config"
	"goal-forecast/internal/data"
	"goal-forecast/internal/insight"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/projection"
	"goal-forecast/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML or TOML config")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := applog.DefaultConfig()
	logCfg.Level = applog.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	if cfg.Server.IsProduction() {
		logCfg.Format = "json"
		gin.SetMode(gin.ReleaseMode)
	}
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	state := store.Seeded(nil)
	if cfg.GoalsFile != "" {
		goals, err := data.LoadGoals(cfg.GoalsFile)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		state = store.New(goals, nil)
	}

	ai := insight.NewClient(cfg.AI.InsightConfig(), logger.WithComponent(applog.ComponentInsight))
	if !ai.Enabled() {
		logger.Warn("AI_API_KEY not set, plans and explanations use the local fallback")
	}

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		State:   state,
		Engine:  projection.NewEngine(cfg.Simulation.Workers, logger.WithComponent(applog.ComponentEngine)),
		Insight: ai,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server",
			applog.FieldOperation, applog.OpStartup,
			"addr", srv.Addr,
			"env", cfg.Server.Env,
			"goals", len(state.Goals()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", applog.FieldOperation, applog.OpShutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
