// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fjacquet/budget-csv/internal/categorizer"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Ledger struct {
		Reverse bool                `mapstructure:"reverse" yaml:"reverse"`
		Columns models.FieldMapping `mapstructure:"columns" yaml:"columns"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Categorization struct {
		ConflictPolicy string `mapstructure:"conflict_policy" yaml:"conflict_policy"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	Server struct {
		Address        string   `mapstructure:"address" yaml:"address"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then BUDGET_* environment variables.
func InitializeConfig() (*Config, error) {
	return initializeConfig("")
}

// InitializeConfigFromFile is InitializeConfig reading an explicit config file.
func InitializeConfigFromFile(path string) (*Config, error) {
	return initializeConfig(path)
}

func initializeConfig(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-csv")
		v.AddConfigPath(".budget-csv")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", LogLevelFromEnv().String())
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	columns := models.DefaultFieldMapping()
	v.SetDefault("ledger.reverse", true)
	v.SetDefault("ledger.columns.date", columns.Date)
	v.SetDefault("ledger.columns.description", columns.Description)
	v.SetDefault("ledger.columns.account", columns.Account)
	v.SetDefault("ledger.columns.counterparty", columns.Counterparty)
	v.SetDefault("ledger.columns.mutation_code", columns.MutationCode)
	v.SetDefault("ledger.columns.mutation_type", columns.MutationType)
	v.SetDefault("ledger.columns.direction", columns.Direction)
	v.SetDefault("ledger.columns.amount", columns.Amount)
	v.SetDefault("ledger.columns.memo", columns.Memo)
	v.SetDefault("ledger.columns.date_layout", columns.DateLayout)
	v.SetDefault("ledger.columns.income_flag", columns.IncomeFlag)
	v.SetDefault("ledger.columns.spending_flag", columns.SpendingFlag)

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("categorization.conflict_policy", string(categorizer.PolicyGuard))

	v.SetDefault("report.format", "text")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	columns := config.Ledger.Columns
	required := map[string]string{
		"date": columns.Date, "description": columns.Description, "account": columns.Account,
		"counterparty": columns.Counterparty, "mutation_code": columns.MutationCode,
		"mutation_type": columns.MutationType, "direction": columns.Direction,
		"amount": columns.Amount, "memo": columns.Memo, "date_layout": columns.DateLayout,
		"income_flag": columns.IncomeFlag, "spending_flag": columns.SpendingFlag,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("ledger.columns.%s must not be empty", key)
		}
	}
	if columns.IncomeFlag == columns.SpendingFlag {
		return fmt.Errorf("ledger.columns.income_flag and spending_flag must differ, both are '%s'", columns.IncomeFlag)
	}

	if strings.TrimSpace(config.Categories.File) == "" {
		return fmt.Errorf("categories.file must not be empty")
	}

	if _, err := categorizer.ParsePolicy(config.Categorization.ConflictPolicy); err != nil {
		return err
	}

	if !slices.Contains(report.Formats, strings.ToLower(config.Report.Format)) {
		return fmt.Errorf("invalid report format: %s (must be one of %s)",
			config.Report.Format, strings.Join(report.Formats, ", "))
	}

	if strings.TrimSpace(config.Server.Address) == "" {
		return fmt.Errorf("server.address must not be empty")
	}

	return nil
}

// Validate checks the configuration after programmatic changes such as
// command-line overrides.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// DelimiterRune returns the configured CSV delimiter.
func (c *Config) DelimiterRune() rune {
	return []rune(c.CSV.Delimiter)[0]
}

// FieldMapping returns the configured ledger column mapping.
func (c *Config) FieldMapping() models.FieldMapping {
	return c.Ledger.Columns
}
