package aggregator

import (
	"errors"
	"testing"
	"time"

	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(year int, month time.Month, day int, amount string, direction models.Direction) *models.Transaction {
	return &models.Transaction{
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Direction: direction,
		Amount:    decimal.RequireFromString(amount),
	}
}

func claimAll(t *testing.T, category *models.Category, txs ...*models.Transaction) *models.Category {
	t.Helper()
	for _, tx := range txs {
		require.NoError(t, category.Claim(tx))
	}
	return category
}

func TestTotalForMonth(t *testing.T) {
	groceries := claimAll(t, models.NewCategory("groceries", "orange", 1),
		tx(2019, time.January, 2, "20.10", models.DirectionSpending),
		tx(2019, time.January, 9, "0.20", models.DirectionSpending),
		tx(2019, time.March, 2, "35", models.DirectionSpending),
	)

	assert.Equal(t, "20.3", TotalForMonth(groceries, time.January).String())
	assert.True(t, TotalForMonth(groceries, time.March).Equal(decimal.NewFromInt(35)))
	assert.True(t, TotalForMonth(groceries, time.February).IsZero())
	assert.Equal(t, "55.3", Total(groceries).String())
}

func TestTotalForMonth_MergesYears(t *testing.T) {
	salary := claimAll(t, models.NewCategory("salary", "green", 1),
		tx(2019, time.January, 25, "2000", models.DirectionIncome),
		tx(2020, time.January, 25, "2100", models.DirectionIncome),
	)

	assert.True(t, TotalForMonth(salary, time.January).Equal(decimal.NewFromInt(4100)))
	assert.Len(t, TransactionsForMonth(salary, time.January), 2)
}

func TestPartitionByDirection(t *testing.T) {
	salary := claimAll(t, models.NewCategory("salary", "green", 1), tx(2019, time.January, 5, "2000", models.DirectionIncome))
	rent := claimAll(t, models.NewCategory("rent", "red", 1), tx(2019, time.January, 10, "800", models.DirectionSpending))
	food := claimAll(t, models.NewCategory("food", "orange", 1), tx(2019, time.January, 11, "30", models.DirectionSpending))

	income, spending, err := PartitionByDirection([]*models.Category{rent, salary, food})
	require.NoError(t, err)
	assert.Equal(t, []*models.Category{salary}, income)
	assert.Equal(t, []*models.Category{rent, food}, spending)
}

func TestPartitionByDirection_EmptyCategory(t *testing.T) {
	empty := models.NewCategory("gifts", "pink", 1)

	_, _, err := PartitionByDirection([]*models.Category{empty})

	var undetermined *parsererror.UndeterminedDirectionError
	require.True(t, errors.As(err, &undetermined))
	assert.Equal(t, "gifts", undetermined.Category)
}

func TestMonths(t *testing.T) {
	txs := []*models.Transaction{
		tx(2019, time.July, 1, "1", models.DirectionSpending),
		tx(2019, time.January, 1, "1", models.DirectionSpending),
		tx(2019, time.March, 1, "1", models.DirectionSpending),
		tx(2019, time.March, 20, "1", models.DirectionSpending),
	}

	assert.Equal(t, []time.Month{time.January, time.March, time.July}, Months(txs))
	assert.Empty(t, Months(nil))
}

func TestBuildReport(t *testing.T) {
	salaryTx := tx(2019, time.January, 5, "2000", models.DirectionIncome)
	rentJan := tx(2019, time.January, 10, "800", models.DirectionSpending)
	rentFeb := tx(2019, time.February, 10, "800", models.DirectionSpending)
	salary := claimAll(t, models.NewCategory("salary", "green", 1), salaryTx)
	rent := claimAll(t, models.NewCategory("rent", "red", 1), rentJan, rentFeb)

	report, err := BuildReport([]*models.Category{salary, rent}, []*models.Transaction{salaryTx, rentJan, rentFeb})
	require.NoError(t, err)

	assert.Equal(t, []time.Month{time.January, time.February}, report.Months)
	assert.Equal(t, 3, report.TotalCount)

	require.Len(t, report.Income, 1)
	assert.Equal(t, "salary", report.Income[0].Name)
	assert.Equal(t, "green", report.Income[0].Color)
	assert.Equal(t, models.DirectionIncome, report.Income[0].Direction)
	assert.True(t, report.Income[0].ForMonth(time.January).Equal(decimal.NewFromInt(2000)))
	assert.True(t, report.Income[0].ForMonth(time.February).IsZero())
	assert.True(t, report.Income[0].ForMonth(time.December).IsZero())

	require.Len(t, report.Spending, 1)
	assert.Equal(t, 2, report.Spending[0].Count)
	assert.True(t, report.Spending[0].Total.Equal(decimal.NewFromInt(1600)))

	require.Len(t, report.Monthly, 2)
	assert.True(t, report.Monthly[0].Net.Equal(decimal.NewFromInt(1200)))
	assert.True(t, report.Monthly[1].Net.Equal(decimal.NewFromInt(-800)))

	names := []string{}
	for _, c := range report.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"salary", "rent"}, names)
}

func TestBuildReport_UndeterminedCategory(t *testing.T) {
	_, err := BuildReport([]*models.Category{models.NewCategory("unused", "gray", 1)}, nil)

	var undetermined *parsererror.UndeterminedDirectionError
	assert.True(t, errors.As(err, &undetermined))
}
