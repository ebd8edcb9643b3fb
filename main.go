package main

import (
	"context"
	"os"

	"fjacquet/budget-csv/cmd/categorize"
	"fjacquet/budget-csv/cmd/months"
	"fjacquet/budget-csv/cmd/report"
	"fjacquet/budget-csv/cmd/root"
	"fjacquet/budget-csv/cmd/serve"
	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/logging"
)

func init() {
	// .env may set LOG_LEVEL, which applies until the config is loaded
	config.LoadEnv()
	root.Log = logging.NewLogrusAdapter(config.LogLevelFromEnv().String(), "text")

	root.Init()

	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(months.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.ExecuteContext(context.Background()); err != nil {
		root.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
