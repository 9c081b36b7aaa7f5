package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"goal-forecast/internal/analysis"
	"goal-forecast/internal/cli"
	"goal-forecast/internal/model"
	"goal-forecast/internal/projection"
)

var (
	simInitial      float64
	simContribution float64
	simMonths       int
	simReturn       float64
	simVolatility   float64
	simRisk         string
	simCount        int
	simTarget       float64
	simBins         int
	simOut          string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo projection of a savings balance",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Float64Var(&simInitial, "initial", 0, "Starting balance")
	f.Float64Var(&simContribution, "contribution", 0, "Monthly contribution")
	f.IntVar(&simMonths, "months", 12, "Horizon in months")
	f.Float64Var(&simReturn, "return", 0.07, "Annual mean return as a fraction (overrides --risk)")
	f.Float64Var(&simVolatility, "volatility", 0.15, "Annual volatility as a fraction (overrides --risk)")
	f.StringVar(&simRisk, "risk", "", "Risk profile: conservative, moderate or aggressive")
	f.IntVarP(&simCount, "sims", "n", 0, "Number of simulated paths (0 = config)")
	f.Float64Var(&simTarget, "target", 0, "Target balance for the success probability")
	f.IntVar(&simBins, "bins", 0, "Histogram bins (0 = config)")
	f.StringVarP(&simOut, "out", "o", "", "Write month,p10,median,p90 bands to this CSV path")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := assumptionsFor(cmd, cfg, simRisk, simReturn, simVolatility)
	if err != nil {
		return err
	}
	in := model.ProjectionInput{
		InitialAmount:       simInitial,
		MonthlyContribution: simContribution,
		Months:              simMonths,
		AnnualMeanReturn:    a.AnnualMeanReturn,
		AnnualVolatility:    a.AnnualVolatility,
		NumSimulations:      pick(simCount, cfg.Simulation.NumSimulations),
	}
	seed := seedFor(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	rs, err := newEngine(cfg).Simulate(ctx, in, seed)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MONTE CARLO  %d paths  %d months", in.NumSimulations, in.Months)))
	fmt.Println()
	printInputs(in, seed)
	printBands(rs)
	printOutcomes(rs, simTarget, pick(simBins, cfg.Simulation.HistogramBins))
	fmt.Printf("  Closed-form at mean return: %s\n\n",
		cli.FormatMoney(projection.DeterministicFutureValue(in.InitialAmount, in.MonthlyContribution, in.Months, in.AnnualMeanReturn)))

	if simOut != "" {
		if err := projection.WriteBandsCSV(simOut, rs); err != nil {
			return fmt.Errorf("write bands: %w", err)
		}
		fmt.Printf("  Bands written to %s\n\n", simOut)
	}
	return nil
}

func printInputs(in model.ProjectionInput, seed int64) {
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Inputs",
		Headers: []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Initial", cli.FormatMoney(in.InitialAmount)},
			{"Monthly contribution", cli.FormatMoney(in.MonthlyContribution)},
			{"Months", fmt.Sprint(in.Months)},
			{"Annual return", cli.FormatRate(in.AnnualMeanReturn)},
			{"Annual volatility", cli.FormatRate(in.AnnualVolatility)},
			{"Seed", fmt.Sprint(seed)},
		},
	}))
	fmt.Println()
}

// printBands shows the percentile envelope yearly, plus the final month.
func printBands(rs *projection.ResultSet) {
	rows := [][]string{}
	last := rs.Months()
	for m := 0; m <= last; m++ {
		if m%12 != 0 && m != last {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprint(m),
			cli.FormatMoney(rs.P10Path[m]),
			cli.FormatMoney(rs.MedianPath[m]),
			cli.FormatMoney(rs.P90Path[m]),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Percentile bands",
		Headers: []string{"Month", "P10", "Median", "P90"},
		Rows:    rows,
	}))
	fmt.Printf("  Median %s\n\n", cli.RenderSparkline(rs.MedianPath))
}

func printOutcomes(rs *projection.ResultSet, target float64, bins int) {
	s := analysis.SummarizeOutcomes(rs, target)
	rows := [][]string{
		{"Min", cli.FormatMoney(s.Min)},
		{"P05", cli.FormatMoney(s.P05)},
		{"Median", cli.FormatMoney(s.Median)},
		{"Mean", cli.FormatMoney(s.Mean)},
		{"P95", cli.FormatMoney(s.P95)},
		{"Max", cli.FormatMoney(s.Max)},
	}
	if target > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Target", cli.FormatMoney(target)},
			[]string{"Chance of success", cli.RenderProbability(s.SuccessProbability)},
			[]string{"Expected shortfall", cli.FormatMoney(s.ExpectedShortfall)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Final balance",
		Headers: []string{"Statistic", "Value"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Print(cli.RenderHistogram(projection.Histogram(rs.FinalOutcomes, bins), 40))
	fmt.Println()
}

func pick(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
