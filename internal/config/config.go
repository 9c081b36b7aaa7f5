package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"goal-forecast/internal/insight"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

// Config is the on-disk configuration shape. YAML and TOML files use the same keys.
type Config struct {
	Server     ServerConfig     `yaml:"server" toml:"server"`
	Simulation SimulationConfig `yaml:"simulation" toml:"simulation"`
	AI         AIConfig         `yaml:"ai" toml:"ai"`
	Log        LogConfig        `yaml:"log" toml:"log"`

	// Optional: seed the goal store from a JSON/YAML file instead of the built-in goals.
	// Relative paths are resolved against the config file directory first.
	GoalsFile string `yaml:"goals_file" toml:"goals_file"`
}

type ServerConfig struct {
	Port        string   `yaml:"port" toml:"port"`
	Env         string   `yaml:"env" toml:"env"`
	CORSOrigins []string `yaml:"cors_origins" toml:"cors_origins"`
}

type SimulationConfig struct {
	NumSimulations   int               `yaml:"num_simulations" toml:"num_simulations"`
	Workers          int               `yaml:"workers" toml:"workers"`
	Seed             int64             `yaml:"seed" toml:"seed"`
	HistogramBins    int               `yaml:"histogram_bins" toml:"histogram_bins"`
	AnnualMeanReturn float64           `yaml:"annual_mean_return" toml:"annual_mean_return"`
	AnnualVolatility float64           `yaml:"annual_volatility" toml:"annual_volatility"`
	AnnualInflation  float64           `yaml:"annual_inflation" toml:"annual_inflation"`
	RiskProfile      model.RiskProfile `yaml:"risk_profile" toml:"risk_profile"`
}

type AIConfig struct {
	APIKey  string        `yaml:"api_key" toml:"api_key"`
	BaseURL string        `yaml:"base_url" toml:"base_url"`
	Model   string        `yaml:"model" toml:"model"`
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	// CacheTTL keeps identical model responses in memory; 0 disables the cache.
	CacheTTL time.Duration `yaml:"cache_ttl" toml:"cache_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	moderate := model.RiskModerate.Assumptions()
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Env:         "development",
			CORSOrigins: []string{"*"},
		},
		Simulation: SimulationConfig{
			NumSimulations:   model.DefaultNumSimulations,
			HistogramBins:    projection.DefaultHistogramBins,
			AnnualMeanReturn: moderate.AnnualMeanReturn,
			AnnualVolatility: moderate.AnnualVolatility,
			AnnualInflation:  0.025,
			RiskProfile:      model.RiskModerate,
		},
		AI: AIConfig{
			BaseURL: insight.DefaultBaseURL,
			Model:   insight.DefaultModel,
			Timeout: insight.DefaultTimeout,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the file and fills unset fields from Default, but does not validate.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}

	out := Merge(*Default(), c)
	if out.GoalsFile != "" && !filepath.IsAbs(out.GoalsFile) {
		// Prefer interpreting relative paths as relative to the config file directory,
		// but fall back to the provided path (relative to cwd) if that doesn't exist.
		cand := filepath.Join(filepath.Dir(path), out.GoalsFile)
		if _, err := os.Stat(cand); err == nil {
			out.GoalsFile = cand
		}
	}
	return &out, nil
}

// Merge overlays the non-zero fields of override onto base.
func Merge(base, override Config) Config {
	out := base
	if override.Server.Port != "" {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if len(override.Server.CORSOrigins) > 0 {
		out.Server.CORSOrigins = append([]string(nil), override.Server.CORSOrigins...)
	}
	out.Simulation = MergeSimulation(base.Simulation, override.Simulation)
	if override.AI.APIKey != "" {
		out.AI.APIKey = override.AI.APIKey
	}
	if override.AI.BaseURL != "" {
		out.AI.BaseURL = override.AI.BaseURL
	}
	if override.AI.Model != "" {
		out.AI.Model = override.AI.Model
	}
	if override.AI.Timeout != 0 {
		out.AI.Timeout = override.AI.Timeout
	}
	if override.AI.CacheTTL != 0 {
		out.AI.CacheTTL = override.AI.CacheTTL
	}
	if override.Log.Level != "" {
		out.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		out.Log.Format = override.Log.Format
	}
	if override.GoalsFile != "" {
		out.GoalsFile = override.GoalsFile
	}
	return out
}

// MergeSimulation overlays non-zero fields from override onto base.
// This is used when loading a config file and then applying overrides from a request or flags.
func MergeSimulation(base, override SimulationConfig) SimulationConfig {
	out := base
	if override.NumSimulations != 0 {
		out.NumSimulations = override.NumSimulations
	}
	if override.Workers != 0 {
		out.Workers = override.Workers
	}
	if override.Seed != 0 {
		out.Seed = override.Seed
	}
	if override.HistogramBins != 0 {
		out.HistogramBins = override.HistogramBins
	}
	// A zero return or inflation cannot be expressed through an override; use the
	// risk profile or an explicit request field for that.
	if override.AnnualMeanReturn != 0 {
		out.AnnualMeanReturn = override.AnnualMeanReturn
	}
	if override.AnnualVolatility != 0 {
		out.AnnualVolatility = override.AnnualVolatility
	}
	if override.AnnualInflation != 0 {
		out.AnnualInflation = override.AnnualInflation
	}
	if override.RiskProfile != "" {
		out.RiskProfile = override.RiskProfile
	}
	return out
}

// ApplyEnv overlays environment variables onto c. Binaries load .env before calling this.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("AI_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("SIM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SIM_WORKERS: %w", err)
		}
		c.Simulation.Workers = n
	}
	if v := os.Getenv("SIM_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SIM_SEED: %w", err)
		}
		c.Simulation.Seed = n
	}
	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	} else if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("server.port %q is not a valid port", c.Server.Port))
	}
	s := c.Simulation
	if s.NumSimulations <= 0 || s.NumSimulations > model.MaxNumSimulations {
		errs = append(errs, fmt.Errorf("simulation.num_simulations must be in 1..%d", model.MaxNumSimulations))
	}
	if s.Workers < 0 {
		errs = append(errs, errors.New("simulation.workers must be >= 0"))
	}
	if s.HistogramBins < 0 {
		errs = append(errs, errors.New("simulation.histogram_bins must be >= 0"))
	}
	if s.AnnualVolatility < 0 {
		errs = append(errs, errors.New("simulation.annual_volatility must be >= 0"))
	}
	if s.RiskProfile != "" {
		if _, err := model.ParseRiskProfile(string(s.RiskProfile)); err != nil {
			errs = append(errs, fmt.Errorf("simulation.risk_profile: %w", err))
		}
	}
	if c.AI.Timeout < 0 {
		errs = append(errs, errors.New("ai.timeout must be >= 0"))
	}
	if c.AI.CacheTTL < 0 {
		errs = append(errs, errors.New("ai.cache_ttl must be >= 0"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Assumptions returns the configured market parameters.
func (s SimulationConfig) Assumptions() model.Assumptions {
	return model.Assumptions{
		AnnualMeanReturn: s.AnnualMeanReturn,
		AnnualVolatility: s.AnnualVolatility,
	}
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Env, "production")
}

// InsightConfig converts the ai section for insight.NewClient.
func (a AIConfig) InsightConfig() insight.Config {
	return insight.Config{
		APIKey:   a.APIKey,
		BaseURL:  a.BaseURL,
		Model:    a.Model,
		Timeout:  a.Timeout,
		CacheTTL: a.CacheTTL,
	}
}
