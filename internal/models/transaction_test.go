package models

import (
	"errors"
	"testing"
	"time"

	"fjacquet/budget-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() map[string]string {
	return map[string]string{
		ColumnDate:         "20190105",
		ColumnDescription:  "ACME PAYROLL",
		ColumnAccount:      "NL01INGB0001",
		ColumnCounterparty: "EMP001",
		ColumnMutationCode: "OV",
		ColumnMutationType: "Overschrijving",
		ColumnDirection:    "Bij",
		ColumnAmount:       "2000,00",
		ColumnMemo:         "salary january",
	}
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction(validRecord(), DefaultFieldMapping())
	require.NoError(t, err)

	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, time.Date(2019, time.January, 5, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "ACME PAYROLL", tx.Description)
	assert.Equal(t, "NL01INGB0001", tx.Account)
	assert.Equal(t, "EMP001", tx.CounterpartyAccount)
	assert.Equal(t, "OV", tx.MutationCode)
	assert.Equal(t, "Overschrijving", tx.MutationType)
	assert.Equal(t, DirectionIncome, tx.Direction)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "salary january", tx.Memo)
	assert.True(t, tx.IsIncome())
	assert.True(t, tx.HasCounterparty())
	assert.False(t, tx.IsClassified())
}

func TestNewTransaction_SpendingWithoutCounterparty(t *testing.T) {
	record := validRecord()
	record[ColumnDirection] = "Af"
	record[ColumnCounterparty] = ""
	record[ColumnAmount] = "12,35"

	tx, err := NewTransaction(record, DefaultFieldMapping())
	require.NoError(t, err)

	assert.Equal(t, DirectionSpending, tx.Direction)
	assert.False(t, tx.IsIncome())
	assert.False(t, tx.HasCounterparty())
	assert.Equal(t, "12.35", tx.Amount.String())
}

func TestNewTransaction_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
		field  string
	}{
		{
			name:   "missing amount column",
			mutate: func(r map[string]string) { delete(r, ColumnAmount) },
			field:  ColumnAmount,
		},
		{
			name:   "missing counterparty column",
			mutate: func(r map[string]string) { delete(r, ColumnCounterparty) },
			field:  ColumnCounterparty,
		},
		{
			name:   "date in wrong layout",
			mutate: func(r map[string]string) { r[ColumnDate] = "05-01-2019" },
			field:  ColumnDate,
		},
		{
			name:   "amount not a number",
			mutate: func(r map[string]string) { r[ColumnAmount] = "twelve" },
			field:  ColumnAmount,
		},
		{
			name:   "empty amount",
			mutate: func(r map[string]string) { r[ColumnAmount] = " " },
			field:  ColumnAmount,
		},
		{
			name:   "negative amount",
			mutate: func(r map[string]string) { r[ColumnAmount] = "-5,00" },
			field:  ColumnAmount,
		},
		{
			name:   "unknown direction flag",
			mutate: func(r map[string]string) { r[ColumnDirection] = "Credit" },
			field:  ColumnDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)

			tx, err := NewTransaction(record, DefaultFieldMapping())
			require.Error(t, err)
			assert.Nil(t, tx)

			var malformed *parsererror.MalformedRecordError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestNewTransaction_DuplicatesAreDistinct(t *testing.T) {
	first, err := NewTransaction(validRecord(), DefaultFieldMapping())
	require.NoError(t, err)
	second, err := NewTransaction(validRecord(), DefaultFieldMapping())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestNewTransaction_CustomMapping(t *testing.T) {
	mapping := FieldMapping{
		Date: "date", Description: "desc", Account: "acct", Counterparty: "other",
		MutationCode: "code", MutationType: "kind", Direction: "dir", Amount: "amount", Memo: "memo",
		DateLayout: "2006-01-02", IncomeFlag: "C", SpendingFlag: "D",
	}
	record := map[string]string{
		"date": "2021-07-14", "desc": "Shop", "acct": "A", "other": "",
		"code": "BA", "kind": "Card", "dir": "D", "amount": "9.99", "memo": "",
	}

	tx, err := NewTransaction(record, mapping)
	require.NoError(t, err)
	assert.Equal(t, time.July, tx.Date.Month())
	assert.Equal(t, DirectionSpending, tx.Direction)
	assert.Equal(t, "9.99", tx.Amount.String())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "2000,00", expected: "2000"},
		{input: " 12,5 ", expected: "12.5"},
		{input: "800", expected: "800"},
		{input: "0,01", expected: "0.01"},
		{input: "1.5", expected: "1.5"},
		{input: "", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestTransactionString(t *testing.T) {
	tx, err := NewTransaction(validRecord(), DefaultFieldMapping())
	require.NoError(t, err)

	assert.Equal(t, "<20190105 - 2000 - ACME PAYROLL>", tx.String())
}
