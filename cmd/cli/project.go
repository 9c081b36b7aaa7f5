package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"goal-forecast/internal/cli"
	"goal-forecast/internal/projection"
)

var (
	projCurrent      float64
	projTarget       float64
	projMonths       int
	projContribution float64
	projReturn       float64
	projInflation    float64
	projCompare      []float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Deterministic month-by-month projection with an inflation-adjusted target",
	RunE:  runProject,
}

func init() {
	f := projectCmd.Flags()
	f.Float64Var(&projCurrent, "current", 0, "Current balance")
	f.Float64Var(&projTarget, "target", 0, "Target amount")
	f.IntVar(&projMonths, "months", 12, "Horizon in months")
	f.Float64Var(&projContribution, "contribution", 100, "Monthly contribution")
	f.Float64Var(&projReturn, "return", 0.07, "Annual return as a fraction")
	f.Float64Var(&projInflation, "inflation", -1, "Annual inflation as a fraction (-1 = config)")
	f.Float64SliceVar(&projCompare, "compare", nil, "Alternative monthly contributions to compare, e.g. 200,400")
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inflation := projInflation
	if inflation < 0 {
		inflation = cfg.Simulation.AnnualInflation
	}
	s := projection.ProjectionSettings{
		CurrentAmount:       projCurrent,
		TargetAmount:        projTarget,
		Months:              projMonths,
		MonthlyContribution: projContribution,
		AnnualReturn:        projReturn,
		AnnualInflation:     inflation,
	}
	points := projection.ProjectPath(s)
	final := projection.FinalProjectedValue(s, points)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROJECTION  %d months", s.Months)))
	fmt.Println()

	rows := [][]string{}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.ProjectedValue)
		if p.Month%12 != 0 && p.Month != len(points) {
			continue
		}
		rows = append(rows, []string{
			fmt.Sprint(p.Month),
			cli.FormatMoney(p.ProjectedValue),
			cli.FormatMoney(p.InflationAdjustedTarget),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Projected", "Target (inflation adj.)"},
		Rows:    rows,
	}))
	fmt.Printf("  %s\n\n", cli.RenderSparkline(values))

	verdict := "on track"
	if final < s.TargetAmount {
		verdict = "short by " + cli.FormatMoney(s.TargetAmount-final)
	}
	fmt.Printf("  Final projected value %s against %s: %s\n\n", cli.FormatMoney(final), cli.FormatMoney(s.TargetAmount), verdict)

	if len(projCompare) > 0 {
		scenarios := []projection.Scenario{{Name: "current plan"}}
		for _, c := range projCompare {
			scenarios = append(scenarios, projection.Scenario{
				Name:                "contribute " + cli.FormatMoney(c),
				MonthlyContribution: &c,
			})
		}
		cmpRows := [][]string{}
		for _, r := range projection.CompareScenarios(s, scenarios) {
			mark := "no"
			if r.OnTrack {
				mark = "yes"
			}
			cmpRows = append(cmpRows, []string{r.Name, cli.FormatMoney(r.FinalValue), strings.ToUpper(mark), cli.FormatMoney(r.Shortfall)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Scenarios",
			Headers: []string{"Scenario", "Final", "On track", "Shortfall"},
			Rows:    cmpRows,
		}))
		fmt.Println()
	}
	return nil
}
