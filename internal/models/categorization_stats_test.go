package models

import (
	"testing"

	"fjacquet/budget-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategorizationStats(t *testing.T) {
	salary := NewCategory("salary", "green", 1)
	rent := NewCategory("rent", "red", 1)
	empty := NewCategory("gifts", "blue", 1)

	income := newTx(DirectionIncome, "EMPLOYER")
	spending := newTx(DirectionSpending, "LANDLORD")
	require.NoError(t, salary.Claim(income))
	require.NoError(t, rent.Claim(spending))

	stats := NewCategorizationStats(
		[]*Category{salary, rent, empty},
		[]*Transaction{income, spending, newTx(DirectionSpending, "SHOP")},
	)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Income)
	assert.Equal(t, 2, stats.Spending)
	assert.Equal(t, map[string]int{"salary": 1, "rent": 1, "gifts": 0}, stats.PerCategory)
}

func TestCategorizationStats_LogSummary(t *testing.T) {
	logger := logging.NewMockLogger()
	stats := CategorizationStats{
		Total:       2,
		Claimed:     2,
		PerCategory: map[string]int{"rent": 1, "groceries": 1},
	}

	stats.LogSummary(logger)

	assert.True(t, logger.HasEntry("INFO", "Categorization summary"))
	debug := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, debug, 2)
	assert.Equal(t, logging.Field{Key: logging.FieldCategory, Value: "groceries"}, debug[0].Fields[0])
	assert.Equal(t, logging.Field{Key: logging.FieldCategory, Value: "rent"}, debug[1].Fields[0])
}

func TestCategorizationStats_LogSummaryNilLogger(t *testing.T) {
	assert.NotPanics(t, func() { CategorizationStats{}.LogSummary(nil) })
}
