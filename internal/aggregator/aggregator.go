// Package aggregator computes per-category, per-month totals from categorized
// transactions and shapes them into the report consumed by presentation.
package aggregator

import (
	"sort"
	"time"

	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
)

// TotalForMonth sums the amounts of the category's transactions dated in the
// given month of the year. Years are not distinguished: January 2019 and
// January 2020 add up together. A month without transactions totals zero.
func TotalForMonth(category *models.Category, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range TransactionsForMonth(category, month) {
		total = total.Add(tx.Amount)
	}
	return total
}

// TransactionsForMonth returns the category's transactions dated in month.
func TransactionsForMonth(category *models.Category, month time.Month) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range category.Transactions() {
		if tx.Date.Month() == month {
			out = append(out, tx)
		}
	}
	return out
}

// Total sums every transaction claimed by the category.
func Total(category *models.Category) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range category.Transactions() {
		total = total.Add(tx.Amount)
	}
	return total
}

// PartitionByDirection splits categories into income and spending, keeping
// their order. It fails on the first category whose direction is undetermined.
func PartitionByDirection(categories []*models.Category) (income, spending []*models.Category, err error) {
	for _, category := range categories {
		isIncome, err := category.IsIncome()
		if err != nil {
			return nil, nil, err
		}
		if isIncome {
			income = append(income, category)
		} else {
			spending = append(spending, category)
		}
	}
	return income, spending, nil
}

// Months returns the distinct months in which transactions are dated, in
// ascending order.
func Months(transactions []*models.Transaction) []time.Month {
	seen := make(map[time.Month]struct{}, 12)
	for _, tx := range transactions {
		seen[tx.Date.Month()] = struct{}{}
	}
	months := make([]time.Month, 0, len(seen))
	for month := range seen {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}
