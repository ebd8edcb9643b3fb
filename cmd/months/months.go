// Package months lists the months present in ledger files
package months

import (
	"fmt"
	"strings"

	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/internal/aggregator"

	"github.com/spf13/cobra"
)

// Cmd represents the months command
var Cmd = &cobra.Command{
	Use:   "months [ledger files...]",
	Short: "List the months present in ledger files",
	Long: `List the distinct months in which transactions of the ledger files are
dated, in calendar order. Years are not distinguished.`,
	Args: cobra.MinimumNArgs(1),
	RunE: monthsFunc,
}

func monthsFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	transactions, err := c.GetLoader().LoadFiles(cmd.Context(), args)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, month := range aggregator.Months(transactions) {
		fmt.Fprintln(&b, month.String())
	}
	return root.WriteOutput(cmd, []byte(b.String()))
}
