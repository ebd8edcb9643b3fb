// Package report handles the monthly budget report command
package report

import (
	"fjacquet/budget-csv/cmd/root"

	"github.com/spf13/cobra"
)

var format string

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report [ledger files...]",
	Short: "Report per-category totals for every month",
	Long: `Categorize the ledger files and report, for every category and every month
present in the data, the total amount. Income categories are listed before
spending categories, followed by the net result per month.`,
	Args: cobra.MinimumNArgs(1),
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, csv, json or yaml (default from config)")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	run, err := c.BuildReport(cmd.Context(), args)
	if err != nil {
		return err
	}

	outputFormat := format
	if outputFormat == "" {
		outputFormat = c.GetConfig().Report.Format
	}
	data, err := c.GetReportGenerator().GenerateReport(run.Report, outputFormat)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd, data)
}
