// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/container"
	"fjacquet/budget-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile     string
	Output         string
	CategoriesFile string
	Delimiter      string
	Policy         string
	LogLevel       string
}

var (
	// Log is the shared logger instance for commands, replaced by the
	// configured logger once the root command has run.
	Log logging.Logger = logging.NewDefault()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-csv",
		Short: "A CLI tool to categorize bank ledger CSV exports and report monthly budgets.",
		Long: `budget-csv reads delimited bank ledger exports, assigns every transaction
to exactly one category using the rules of a YAML category file, and reports
per-category totals for every month.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	// SharedFlags holds the persistent flags of all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: ./config.yaml, ./.budget-csv/config.yaml or ~/.budget-csv/config.yaml)")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVarP(&SharedFlags.CategoriesFile, "categories", "c", "", "Categories YAML file")
	flags.StringVarP(&SharedFlags.Delimiter, "delimiter", "d", "", "CSV delimiter for input and output")
	flags.StringVar(&SharedFlags.Policy, "policy", "", "Conflict policy: guard or highest-priority")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// setup loads the configuration, applies flag overrides and wires the container.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	var (
		cfg *config.Config
		err error
	)
	if SharedFlags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return err
	}

	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	appContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded", logging.F(logging.FieldOperation, cmd.Name()))
	return nil
}

func applyOverrides(cfg *config.Config) {
	if SharedFlags.CategoriesFile != "" {
		cfg.Categories.File = SharedFlags.CategoriesFile
	}
	if SharedFlags.Delimiter != "" {
		cfg.CSV.Delimiter = SharedFlags.Delimiter
	}
	if SharedFlags.Policy != "" {
		cfg.Categorization.ConflictPolicy = SharedFlags.Policy
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
}

// GetContainer returns the container wired by the root command.
func GetContainer() (*container.Container, error) {
	if appContainer == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return appContainer, nil
}

// WriteOutput writes data to the --output file, or to the command's stdout.
func WriteOutput(cmd *cobra.Command, data []byte) error {
	if SharedFlags.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	c, err := GetContainer()
	if err != nil {
		return err
	}
	return c.GetReportGenerator().WriteFile(SharedFlags.Output, data)
}
