package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"goal-forecast/internal/model"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "goals.yaml", "goals: []\n")
	path := write(t, dir, "config.yaml", `
server:
  port: "9090"
  cors_origins: ["http://localhost:5173"]
simulation:
  num_simulations: 2000
  workers: 4
  seed: 42
  risk_profile: aggressive
ai:
  model: local-model
  timeout: 5s
goals_file: goals.yaml
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "9090" || c.Server.Env != "development" {
		t.Fatalf("server = %+v", c.Server)
	}
	if c.Simulation.NumSimulations != 2000 || c.Simulation.Workers != 4 || c.Simulation.Seed != 42 {
		t.Fatalf("simulation = %+v", c.Simulation)
	}
	if c.Simulation.HistogramBins != 20 || c.Simulation.AnnualVolatility != 0.15 {
		t.Fatalf("defaults not applied: %+v", c.Simulation)
	}
	if c.AI.Model != "local-model" || c.AI.Timeout != 5*time.Second || c.AI.BaseURL == "" {
		t.Fatalf("ai = %+v", c.AI)
	}
	if c.GoalsFile != filepath.Join(dir, "goals.yaml") {
		t.Fatalf("goals file = %q", c.GoalsFile)
	}
}

func TestLoadTOML(t *testing.T) {
	path := write(t, t.TempDir(), "config.toml", `
goals_file = "/abs/goals.json"

[server]
port = "7000"
env = "production"

[simulation]
num_simulations = 500
annual_mean_return = 0.05
annual_inflation = 0.03

[log]
format = "json"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "7000" || !c.Server.IsProduction() {
		t.Fatalf("server = %+v", c.Server)
	}
	if c.Simulation.NumSimulations != 500 || c.Simulation.AnnualMeanReturn != 0.05 || c.Simulation.AnnualInflation != 0.03 {
		t.Fatalf("simulation = %+v", c.Simulation)
	}
	if c.Log.Format != "json" || c.GoalsFile != "/abs/goals.json" {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(write(t, dir, "c.ini", "x=1")); err == nil {
		t.Fatal("expected error for unknown extension")
	}
	if _, err := Load(write(t, dir, "c.yaml", "server: [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Default()
	c.Server.Port = "abc"
	c.Simulation.NumSimulations = -1
	c.Simulation.RiskProfile = "yolo"
	c.Log.Format = "xml"
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "num_simulations", "risk_profile", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestMergeSimulation(t *testing.T) {
	base := Default().Simulation
	out := MergeSimulation(base, SimulationConfig{Seed: 9, RiskProfile: model.RiskConservative})
	if out.Seed != 9 || out.RiskProfile != model.RiskConservative {
		t.Fatalf("override not applied: %+v", out)
	}
	if out.NumSimulations != base.NumSimulations || out.AnnualMeanReturn != base.AnnualMeanReturn {
		t.Fatalf("base fields lost: %+v", out)
	}
	if a := out.Assumptions(); a.AnnualMeanReturn != base.AnnualMeanReturn || a.AnnualVolatility != base.AnnualVolatility {
		t.Fatalf("assumptions = %+v", a)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("API_PORT", "3000")
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("SIM_WORKERS", "3")
	t.Setenv("SIM_SEED", "123")
	c := Default()
	if err := c.ApplyEnv(); err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != "3000" || c.AI.APIKey != "sk-test" || c.Simulation.Workers != 3 || c.Simulation.Seed != 123 {
		t.Fatalf("config = %+v", c)
	}
	if c.AI.InsightConfig().Timeout != c.AI.Timeout {
		t.Fatal("insight config timeout mismatch")
	}

	t.Setenv("SIM_WORKERS", "many")
	if err := Default().ApplyEnv(); err == nil {
		t.Fatal("expected error for non-numeric SIM_WORKERS")
	}
}

func TestAICacheTTL(t *testing.T) {
	path := write(t, t.TempDir(), "config.yaml", `
ai:
  api_key: k
  cache_ttl: 5m
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ic := c.AI.InsightConfig()
	if ic.CacheTTL != 5*time.Minute || ic.APIKey != "k" {
		t.Fatalf("insight config = %+v", ic)
	}

	bad := Default()
	bad.AI.CacheTTL = -time.Second
	if err := bad.Validate(); err == nil || !strings.Contains(err.Error(), "cache_ttl") {
		t.Fatalf("Validate = %v", err)
	}
}
