// Package categorize handles transaction categorization commands
package categorize

import (
	"fjacquet/budget-csv/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [ledger files...]",
	Short: "Categorize transactions of one or more ledger files",
	Long: `Categorize transactions of one or more ledger files using the configured
category rules, and write every transaction with its category as CSV.
The run fails if any transaction is left uncategorized or claimed twice.`,
	Args: cobra.MinimumNArgs(1),
	RunE: categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	run, err := c.Categorize(cmd.Context(), args)
	if err != nil {
		return err
	}

	run.Result.Stats().LogSummary(root.Log)

	data, err := c.GetReportGenerator().GenerateCategorizedCSV(run.Transactions)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd, data)
}
