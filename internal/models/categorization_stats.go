package models

import (
	"sort"

	"fjacquet/budget-csv/internal/logging"
)

// CategorizationStats summarizes a categorization pass.
type CategorizationStats struct {
	Total          int            // transactions in the ledger
	Income         int            // transactions flowing in
	Spending       int            // transactions flowing out
	Claimed        int            // transactions classified by the pass
	RetainedClaims int            // higher-priority claims refused under the guard policy
	PerCategory    map[string]int // claimed transactions per category name
}

// NewCategorizationStats computes the statistics of categories over transactions.
func NewCategorizationStats(categories []*Category, transactions []*Transaction) CategorizationStats {
	stats := CategorizationStats{
		Total:       len(transactions),
		PerCategory: make(map[string]int, len(categories)),
	}
	for _, tx := range transactions {
		if tx.IsIncome() {
			stats.Income++
		} else {
			stats.Spending++
		}
	}
	for _, category := range categories {
		stats.PerCategory[category.Name] = category.Len()
	}
	return stats
}

// LogSummary logs the totals, then one debug line per category in name order.
func (cs CategorizationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.F("total_transactions", cs.Total),
		logging.F("income", cs.Income),
		logging.F("spending", cs.Spending),
		logging.F("claimed", cs.Claimed),
		logging.F("retained_claims", cs.RetainedClaims),
	)

	names := make([]string, 0, len(cs.PerCategory))
	for name := range cs.PerCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Debug("Category summary",
			logging.F(logging.FieldCategory, name),
			logging.F(logging.FieldCount, cs.PerCategory[name]))
	}
}
