package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"goal-forecast/internal/analysis"
	"goal-forecast/internal/cli"
	"goal-forecast/internal/data"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings goals with status and required monthly saving",
	RunE:  runGoals,
}

var (
	goalsExport string
	rankSims    int
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank goals by Monte Carlo probability of reaching the target",
	RunE:  runRank,
}

func init() {
	goalsCmd.Flags().StringVar(&goalsExport, "export", "", "Write the goals to a JSON or YAML seed file")
	rankCmd.Flags().IntVarP(&rankSims, "sims", "n", 0, "Paths per goal (0 = config)")
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(rankCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := newState(cfg)
	if err != nil {
		return err
	}
	now := state.Now()

	rows := [][]string{}
	for _, g := range state.Goals() {
		rows = append(rows, []string{
			g.Name,
			cli.FormatMoney(g.CurrentAmount) + " / " + cli.FormatMoney(g.TargetAmount),
			cli.FormatPercent(g.Progress()),
			fmt.Sprint(g.MonthsRemaining(now)),
			cli.FormatMoney(max(g.RequiredMonthlySaving(now), 0)),
			cli.RenderStatus(g.Status()),
		})
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("GOALS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Saved", "Progress", "Months left", "Needed / mo", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	if goalsExport != "" {
		if err := data.SaveGoals(state.Goals(), goalsExport); err != nil {
			return err
		}
		fmt.Printf("  Goals written to %s\n\n", goalsExport)
	}
	return nil
}

func runRank(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := newState(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	engine := newEngine(cfg)
	// One progress line per goal is noise; keep ranking quiet.
	engine.Progress = nil
	ranked, err := analysis.RankGoals(ctx, state.Goals(), engine, analysis.RankOptions{
		Now:            state.Now(),
		Seed:           seedFor(cfg),
		NumSimulations: pick(rankSims, cfg.Simulation.NumSimulations),
		DefaultProfile: cfg.Simulation.RiskProfile,
	})
	if err != nil {
		return err
	}

	rows := [][]string{}
	for i, r := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", i+1, r.Goal.Name),
			cli.FormatMoney(r.MonthlyContribution),
			cli.FormatMoney(r.Summary.Median),
			cli.FormatMoney(r.Goal.TargetAmount),
			cli.RenderProbability(r.Summary.SuccessProbability),
		})
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle("GOAL RANKING"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Saving / mo", "Median final", "Target", "Success"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
