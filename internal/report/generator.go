// Package report renders aggregated budget reports and categorized
// transactions for presentation.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"fjacquet/budget-csv/internal/aggregator"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported report formats.
var Formats = []string{FormatText, FormatCSV, FormatJSON, FormatYAML}

// ReportGenerator renders a budget report in one of the supported formats.
type ReportGenerator struct {
	logger    logging.Logger
	delimiter rune
}

// NewReportGenerator creates a generator. The delimiter applies to CSV output;
// zero means comma.
func NewReportGenerator(logger logging.Logger, delimiter rune) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDefault()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &ReportGenerator{
		logger:    logger.WithField(logging.FieldComponent, "ReportGenerator"),
		delimiter: delimiter,
	}
}

// GenerateReport renders the report in the given format (text, csv, json or yaml).
func (g *ReportGenerator) GenerateReport(report *aggregator.Report, format string) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot render a nil report")
	}
	switch strings.ToLower(format) {
	case FormatText:
		return g.generateTextReport(report)
	case FormatCSV:
		return g.generateCSVReport(report)
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML:
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateTextReport renders an aligned table: one row per category, one
// column per observed month, income first, then spending, then the net result.
func (g *ReportGenerator) generateTextReport(report *aggregator.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	header := []string{"CATEGORY"}
	for _, month := range report.Months {
		header = append(header, month.String()[:3])
	}
	header = append(header, "TOTAL", "")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	section := func(title string, categories []aggregator.CategoryTotals) {
		fmt.Fprintf(w, "%s\t\n", title)
		for _, c := range categories {
			row := []string{c.Name}
			for _, month := range report.Months {
				row = append(row, c.ForMonth(month).StringFixed(2))
			}
			row = append(row, c.Total.StringFixed(2), "")
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
	}
	section("INCOME", report.Income)
	section("SPENDING", report.Spending)

	net := []string{"NET"}
	total := decimal.Zero
	for _, summary := range report.Monthly {
		net = append(net, summary.Net.StringFixed(2))
		total = total.Add(summary.Net)
	}
	net = append(net, total.StringFixed(2), "")
	fmt.Fprintln(w, strings.Join(net, "\t"))

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}
	return buf.Bytes(), nil
}

// reportRow is one category/month cell of the CSV report.
type reportRow struct {
	Category  string `csv:"category"`
	Direction string `csv:"direction"`
	Color     string `csv:"color"`
	Month     string `csv:"month"`
	Total     string `csv:"total"`
}

func (g *ReportGenerator) generateCSVReport(report *aggregator.Report) ([]byte, error) {
	rows := make([]reportRow, 0, len(report.Income)+len(report.Spending))
	for _, c := range report.Categories() {
		for _, mt := range c.MonthTotals {
			rows = append(rows, reportRow{
				Category:  c.Name,
				Direction: string(c.Direction),
				Color:     c.Color,
				Month:     mt.Month.String(),
				Total:     mt.Total.StringFixed(2),
			})
		}
	}
	return g.marshalCSV(rows)
}

func (g *ReportGenerator) generateJSONReport(report *aggregator.Report) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func (g *ReportGenerator) generateYAMLReport(report *aggregator.Report) ([]byte, error) {
	yamlReport, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return yamlReport, nil
}

// categorizedRow is one transaction of the categorized output.
type categorizedRow struct {
	ID           string `csv:"id"`
	Date         string `csv:"date"`
	Description  string `csv:"description"`
	Account      string `csv:"account"`
	Counterparty string `csv:"counterparty"`
	MutationCode string `csv:"mutation_code"`
	MutationType string `csv:"mutation_type"`
	Direction    string `csv:"direction"`
	Amount       string `csv:"amount"`
	Memo         string `csv:"memo"`
	Category     string `csv:"category"`
}

// GenerateCategorizedCSV renders each transaction with the category that
// claimed it. Unclassified transactions get an empty category.
func (g *ReportGenerator) GenerateCategorizedCSV(transactions []*models.Transaction) ([]byte, error) {
	rows := make([]categorizedRow, 0, len(transactions))
	for _, tx := range transactions {
		row := categorizedRow{
			ID:           tx.ID,
			Date:         tx.Date.Format("2006-01-02"),
			Description:  tx.Description,
			Account:      tx.Account,
			Counterparty: tx.CounterpartyAccount,
			MutationCode: tx.MutationCode,
			MutationType: tx.MutationType,
			Direction:    string(tx.Direction),
			Amount:       tx.Amount.StringFixed(2),
			Memo:         tx.Memo,
		}
		if category, ok := tx.Category(); ok {
			row.Category = category.Name
		}
		rows = append(rows, row)
	}
	return g.marshalCSV(rows)
}

func (g *ReportGenerator) marshalCSV(rows interface{}) ([]byte, error) {
	var buf bytes.Buffer
	csvWriter := csv.NewWriter(&buf)
	csvWriter.Comma = g.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV output")
		return nil, fmt.Errorf("error writing CSV data: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes rendered output to path, creating parent directories.
func (g *ReportGenerator) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	g.logger.WithFields(
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldBytes, len(data)),
	).Info("Wrote output file")
	return nil
}
