// Package container provides dependency injection for the budget-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/budget-csv/internal/aggregator"
	"fjacquet/budget-csv/internal/categorizer"
	"fjacquet/budget-csv/internal/config"
	"fjacquet/budget-csv/internal/ledger"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/report"
	"fjacquet/budget-csv/internal/server"
	"fjacquet/budget-csv/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are reached through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     store.CategoryLoader
	loader    *ledger.Loader
	engine    *categorizer.Engine
	generator *report.ReportGenerator
}

// Run is the outcome of one pass over the ledger.
type Run struct {
	Categories   []*models.Category
	Transactions []*models.Transaction
	Result       *categorizer.Result
	Report       *aggregator.Report
}

// NewContainer creates and wires all application dependencies from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWith(cfg, logger, store.NewCategoryStore(cfg.Categories.File, logger))
}

// NewContainerWith wires the container around an existing logger and
// category source.
func NewContainerWith(cfg *config.Config, logger logging.Logger, categories store.CategoryLoader) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if categories == nil {
		return nil, fmt.Errorf("category store cannot be nil")
	}

	policy, err := categorizer.ParsePolicy(cfg.Categorization.ConflictPolicy)
	if err != nil {
		return nil, err
	}

	loader := ledger.NewLoader(ledger.Options{
		Mapping:   cfg.FieldMapping(),
		Delimiter: cfg.DelimiterRune(),
		Reverse:   cfg.Ledger.Reverse,
	}, logger)

	logger.Debug("Container initialized",
		logging.F(logging.FieldPolicy, string(policy)),
		logging.F(logging.FieldDelimiter, cfg.CSV.Delimiter))

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     categories,
		loader:    loader,
		engine:    categorizer.NewEngine(logger, policy),
		generator: report.NewReportGenerator(logger, cfg.DelimiterRune()),
	}, nil
}

// LoadCategories reads and builds the configured categories.
func (c *Container) LoadCategories() ([]*models.Category, error) {
	configs, err := c.store.LoadCategories()
	if err != nil {
		return nil, err
	}
	categories, err := categorizer.BuildCategories(configs)
	if err != nil {
		return nil, fmt.Errorf("invalid categories: %w", err)
	}
	return categories, nil
}

// Categorize loads the categories and the ledger files and categorizes every
// transaction.
func (c *Container) Categorize(ctx context.Context, paths []string) (*Run, error) {
	categories, err := c.LoadCategories()
	if err != nil {
		return nil, err
	}

	transactions, err := c.loader.LoadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	result, err := c.engine.Categorize(categories, transactions)
	if err != nil {
		return nil, err
	}

	return &Run{
		Categories:   categories,
		Transactions: transactions,
		Result:       result,
	}, nil
}

// BuildReport categorizes the ledger files and aggregates the result.
func (c *Container) BuildReport(ctx context.Context, paths []string) (*Run, error) {
	run, err := c.Categorize(ctx, paths)
	if err != nil {
		return nil, err
	}
	run.Report, err = aggregator.BuildReport(run.Categories, run.Transactions)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// NewServer builds the HTTP server over a fully built run.
func (c *Container) NewServer(run *Run) *server.Server {
	return server.NewServer(server.Snapshot{
		Report:       run.Report,
		Transactions: run.Transactions,
	}, server.Options{
		Address:        c.config.Server.Address,
		AllowedOrigins: c.config.Server.AllowedOrigins,
		Delimiter:      c.config.DelimiterRune(),
	}, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLoader returns the ledger loader.
func (c *Container) GetLoader() *ledger.Loader {
	return c.loader
}

// GetEngine returns the categorization engine.
func (c *Container) GetEngine() *categorizer.Engine {
	return c.engine
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.generator
}
