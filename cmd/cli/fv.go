package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"goal-forecast/internal/cli"
	"goal-forecast/internal/projection"
)

var (
	fvPrincipal    float64
	fvContribution float64
	fvMonths       int
	fvRate         float64
)

var fvCmd = &cobra.Command{
	Use:   "fv",
	Short: "Closed-form future value of a balance plus monthly contributions",
	RunE: func(_ *cobra.Command, _ []string) error {
		fv := projection.DeterministicFutureValue(fvPrincipal, fvContribution, fvMonths, fvRate)
		contributed := fvPrincipal + fvContribution*float64(fvMonths)
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"", "Amount"},
			Rows: [][]string{
				{"Contributed", cli.FormatMoney(contributed)},
				{"Growth", cli.FormatMoney(fv - contributed)},
				{"---"},
				{"Future value", cli.FormatMoney(fv)},
			},
		}))
		return nil
	},
}

func init() {
	f := fvCmd.Flags()
	f.Float64Var(&fvPrincipal, "principal", 0, "Starting balance")
	f.Float64Var(&fvContribution, "contribution", 0, "Monthly contribution")
	f.IntVar(&fvMonths, "months", 12, "Months")
	f.Float64Var(&fvRate, "rate", 0.05, "Annual rate as a fraction")
	rootCmd.AddCommand(fvCmd)
}
