package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"goal-forecast/internal/config"
	"goal-forecast/internal/data"
	applog "goal-forecast/internal/log"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
	"goal-forecast/internal/store"
)

var (
	flagConfig  string
	flagSeed    int64
	flagWorkers int
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:          "forecast",
	Short:        "Savings goal forecaster",
	Long:         "Project savings goals forward with closed-form and Monte Carlo models.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to YAML or TOML config")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed (0 = config seed, then clock)")
	rootCmd.PersistentFlags().IntVarP(&flagWorkers, "workers", "w", 0, "Parallel simulation workers (0 = all CPUs)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging to stderr")
}

// loadConfig is the shared configuration path: file (or defaults), then .env and
// environment, then command-line flags.
func loadConfig() (*config.Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Simulation = config.MergeSimulation(cfg.Simulation, config.SimulationConfig{
		Seed:    flagSeed,
		Workers: flagWorkers,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = applog.ComponentCLI
	cfg.Output = os.Stderr
	cfg.Level = slog.LevelWarn
	if flagVerbose {
		cfg.Level = slog.LevelDebug
	}
	return applog.New(cfg)
}

func newEngine(cfg *config.Config) *projection.Engine {
	e := projection.NewEngine(cfg.Simulation.Workers, newLogger())
	if !flagQuiet {
		e.Progress = progressPrinter(os.Stderr)
	}
	return e
}

// progressPrinter returns an Engine.Progress callback. Workers report out of order, so only
// a count above the highest one printed is written, and the final line ends the run.
func progressPrinter(w io.Writer) func(done, total int) {
	var (
		mu      sync.Mutex
		printed int
	)
	return func(done, total int) {
		if done%250 != 0 && done != total {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if done <= printed {
			return
		}
		printed = done
		fmt.Fprintf(w, "\r  Simulating [%d/%d]", done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

func newState(cfg *config.Config) (*store.State, error) {
	if cfg.GoalsFile == "" {
		return store.Seeded(nil), nil
	}
	goals, err := data.LoadGoals(cfg.GoalsFile)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	return store.New(goals, nil), nil
}

// seedFor returns the configured seed or a clock-derived one.
func seedFor(cfg *config.Config) int64 {
	if cfg.Simulation.Seed != 0 {
		return cfg.Simulation.Seed
	}
	return time.Now().UnixNano()
}

// assumptionsFor resolves market parameters: explicit flags win over --risk, which wins over config.
func assumptionsFor(cmd *cobra.Command, cfg *config.Config, risk string, mean, vol float64) (model.Assumptions, error) {
	a := cfg.Simulation.Assumptions()
	if risk != "" {
		p, err := model.ParseRiskProfile(risk)
		if err != nil {
			return model.Assumptions{}, err
		}
		a = p.Assumptions()
	}
	if cmd.Flags().Changed("return") {
		a.AnnualMeanReturn = mean
	}
	if cmd.Flags().Changed("volatility") {
		a.AnnualVolatility = vol
	}
	return a, nil
}
