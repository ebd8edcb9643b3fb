// Package serve exposes a budget report over HTTP
package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/budget-csv/cmd/root"

	"github.com/spf13/cobra"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve [ledger files...]",
	Short: "Serve the budget report over a read-only HTTP API",
	Long: `Categorize the ledger files once, then serve the report on
/api/v1/report, /api/v1/categories, /api/v1/months and /api/v1/transactions
until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&address, "addr", "", "Listen address (default from config)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if address != "" {
		c.GetConfig().Server.Address = address
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := c.BuildReport(ctx, args)
	if err != nil {
		return err
	}
	return c.NewServer(run).Run(ctx)
}
