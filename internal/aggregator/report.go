package aggregator

import (
	"time"

	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Report is the output contract handed to presentation: for every category
// and every observed month a total, plus each category's direction and color.
type Report struct {
	Months     []time.Month     `json:"months" yaml:"months"`
	Income     []CategoryTotals `json:"income" yaml:"income"`
	Spending   []CategoryTotals `json:"spending" yaml:"spending"`
	Monthly    []MonthSummary   `json:"monthly" yaml:"monthly"`
	TotalCount int              `json:"transaction_count" yaml:"transaction_count"`
}

// CategoryTotals holds one category's totals per observed month.
type CategoryTotals struct {
	Name        string           `json:"name" yaml:"name"`
	Color       string           `json:"color" yaml:"color"`
	Direction   models.Direction `json:"direction" yaml:"direction"`
	Count       int              `json:"count" yaml:"count"`
	Total       decimal.Decimal  `json:"total" yaml:"total"`
	MonthTotals []MonthTotal     `json:"months" yaml:"months"`
}

// MonthTotal is a category's total for one month.
type MonthTotal struct {
	Month time.Month      `json:"month" yaml:"month"`
	Total decimal.Decimal `json:"total" yaml:"total"`
}

// MonthSummary compares income and spending for one month.
type MonthSummary struct {
	Month    time.Month      `json:"month" yaml:"month"`
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Spending decimal.Decimal `json:"spending" yaml:"spending"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

// ForMonth returns the total for month, zero when the month is not observed.
func (c CategoryTotals) ForMonth(month time.Month) decimal.Decimal {
	for _, mt := range c.MonthTotals {
		if mt.Month == month {
			return mt.Total
		}
	}
	return decimal.Zero
}

// BuildReport aggregates categorized data. Every category must have claimed at
// least one transaction, otherwise its direction is undetermined and the
// report cannot be built.
func BuildReport(categories []*models.Category, transactions []*models.Transaction) (*Report, error) {
	income, spending, err := PartitionByDirection(categories)
	if err != nil {
		return nil, err
	}

	months := Months(transactions)
	report := &Report{
		Months:     months,
		Income:     totalsFor(income, models.DirectionIncome, months),
		Spending:   totalsFor(spending, models.DirectionSpending, months),
		TotalCount: len(transactions),
	}

	for _, month := range months {
		summary := MonthSummary{
			Month:    month,
			Income:   decimal.Zero,
			Spending: decimal.Zero,
		}
		for _, c := range report.Income {
			summary.Income = summary.Income.Add(c.ForMonth(month))
		}
		for _, c := range report.Spending {
			summary.Spending = summary.Spending.Add(c.ForMonth(month))
		}
		summary.Net = summary.Income.Sub(summary.Spending)
		report.Monthly = append(report.Monthly, summary)
	}

	return report, nil
}

// Categories returns income categories followed by spending categories.
func (r *Report) Categories() []CategoryTotals {
	out := make([]CategoryTotals, 0, len(r.Income)+len(r.Spending))
	out = append(out, r.Income...)
	return append(out, r.Spending...)
}

func totalsFor(categories []*models.Category, direction models.Direction, months []time.Month) []CategoryTotals {
	out := make([]CategoryTotals, 0, len(categories))
	for _, category := range categories {
		totals := CategoryTotals{
			Name:      category.Name,
			Color:     category.Color,
			Direction: direction,
			Count:     category.Len(),
			Total:     Total(category),
		}
		for _, month := range months {
			totals.MonthTotals = append(totals.MonthTotals, MonthTotal{
				Month: month,
				Total: TotalForMonth(category, month),
			})
		}
		out = append(out, totals)
	}
	return out
}
