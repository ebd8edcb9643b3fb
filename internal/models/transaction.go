// Package models provides the data structures used throughout the application.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/parsererror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction tells whether money came in or went out.
type Direction string

const (
	DirectionIncome   Direction = "income"
	DirectionSpending Direction = "spending"
)

// IsIncome reports whether the direction is income.
func (d Direction) IsIncome() bool {
	return d == DirectionIncome
}

// FieldMapping names the ledger columns a transaction is built from and how
// their values are interpreted.
type FieldMapping struct {
	Date         string `mapstructure:"date" yaml:"date"`
	Description  string `mapstructure:"description" yaml:"description"`
	Account      string `mapstructure:"account" yaml:"account"`
	Counterparty string `mapstructure:"counterparty" yaml:"counterparty"`
	MutationCode string `mapstructure:"mutation_code" yaml:"mutation_code"`
	MutationType string `mapstructure:"mutation_type" yaml:"mutation_type"`
	Direction    string `mapstructure:"direction" yaml:"direction"`
	Amount       string `mapstructure:"amount" yaml:"amount"`
	Memo         string `mapstructure:"memo" yaml:"memo"`

	DateLayout   string `mapstructure:"date_layout" yaml:"date_layout"`
	IncomeFlag   string `mapstructure:"income_flag" yaml:"income_flag"`
	SpendingFlag string `mapstructure:"spending_flag" yaml:"spending_flag"`
}

// DefaultFieldMapping returns the mapping for the ING CSV export.
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		Date:         ColumnDate,
		Description:  ColumnDescription,
		Account:      ColumnAccount,
		Counterparty: ColumnCounterparty,
		MutationCode: ColumnMutationCode,
		MutationType: ColumnMutationType,
		Direction:    ColumnDirection,
		Amount:       ColumnAmount,
		Memo:         ColumnMemo,
		DateLayout:   DefaultDateLayout,
		IncomeFlag:   FlagIncome,
		SpendingFlag: FlagSpending,
	}
}

// Transaction is one ledger entry. All fields are fixed at ingestion; the only
// mutation is the one-time classification performed through Category.Claim.
//
// Identity is by reference: two transactions with identical fields are
// distinct entities. ID only labels the entity in logs and output.
type Transaction struct {
	ID                  string
	Date                time.Time
	Description         string
	Account             string
	CounterpartyAccount string // empty when the ledger has no counterparty
	MutationCode        string
	MutationType        string
	Direction           Direction
	Amount              decimal.Decimal // non-negative, Direction carries the sign
	Memo                string

	classification Classification
}

// ErrAlreadyClassified is returned when a classified transaction is assigned again.
var ErrAlreadyClassified = errors.New("transaction is already classified")

// NewTransaction builds a Transaction from a raw ledger record. Every column
// named by the mapping must be present in the record; the counterparty value
// may be empty.
func NewTransaction(record map[string]string, mapping FieldMapping) (*Transaction, error) {
	fields := []string{
		mapping.Date, mapping.Description, mapping.Account, mapping.Counterparty,
		mapping.MutationCode, mapping.MutationType, mapping.Direction, mapping.Amount, mapping.Memo,
	}
	for _, field := range fields {
		if _, ok := record[field]; !ok {
			return nil, &parsererror.MalformedRecordError{
				Field:  field,
				Reason: "required field is missing",
			}
		}
	}

	rawDate := strings.TrimSpace(record[mapping.Date])
	date, err := time.Parse(mapping.DateLayout, rawDate)
	if err != nil {
		return nil, &parsererror.MalformedRecordError{
			Field:  mapping.Date,
			Value:  rawDate,
			Reason: fmt.Sprintf("date does not match layout %s", mapping.DateLayout),
			Err:    err,
		}
	}

	amount, err := ParseAmount(record[mapping.Amount])
	if err != nil {
		return nil, &parsererror.MalformedRecordError{
			Field:  mapping.Amount,
			Value:  record[mapping.Amount],
			Reason: "amount is not a decimal number",
			Err:    err,
		}
	}
	if amount.IsNegative() {
		return nil, &parsererror.MalformedRecordError{
			Field:  mapping.Amount,
			Value:  record[mapping.Amount],
			Reason: "amount must not be negative",
		}
	}

	direction, err := ParseDirection(record[mapping.Direction], mapping)
	if err != nil {
		return nil, &parsererror.MalformedRecordError{
			Field:  mapping.Direction,
			Value:  record[mapping.Direction],
			Reason: "unknown direction flag",
			Err:    err,
		}
	}

	return &Transaction{
		ID:                  uuid.NewString(),
		Date:                date,
		Description:         strings.TrimSpace(record[mapping.Description]),
		Account:             strings.TrimSpace(record[mapping.Account]),
		CounterpartyAccount: strings.TrimSpace(record[mapping.Counterparty]),
		MutationCode:        strings.TrimSpace(record[mapping.MutationCode]),
		MutationType:        strings.TrimSpace(record[mapping.MutationType]),
		Direction:           direction,
		Amount:              amount,
		Memo:                strings.TrimSpace(record[mapping.Memo]),
	}, nil
}

// ParseAmount parses a localized amount string, accepting a comma as decimal separator.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.ReplaceAll(amount, ",", ".")
	if amount == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	return decimal.NewFromString(amount)
}

// ParseDirection maps a raw direction flag onto a Direction.
func ParseDirection(flag string, mapping FieldMapping) (Direction, error) {
	switch strings.TrimSpace(flag) {
	case mapping.IncomeFlag:
		return DirectionIncome, nil
	case mapping.SpendingFlag:
		return DirectionSpending, nil
	default:
		return "", fmt.Errorf("expected %q or %q, got %q", mapping.IncomeFlag, mapping.SpendingFlag, flag)
	}
}

// IsIncome reports whether money came in.
func (t *Transaction) IsIncome() bool {
	return t.Direction.IsIncome()
}

// HasCounterparty reports whether the ledger named a counterparty account.
func (t *Transaction) HasCounterparty() bool {
	return t.CounterpartyAccount != ""
}

// Classification returns the current classification state.
func (t *Transaction) Classification() Classification {
	return t.classification
}

// Category returns the claiming category, if any.
func (t *Transaction) Category() (*Category, bool) {
	return t.classification.Category()
}

// IsClassified reports whether a category has claimed the transaction.
func (t *Transaction) IsClassified() bool {
	return t.classification.IsClassified()
}

func (t *Transaction) classify(category *Category) error {
	if t.classification.IsClassified() {
		return ErrAlreadyClassified
	}
	t.classification = Classified(category)
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf("<%s - %s - %s>", t.Date.Format(DefaultDateLayout), t.Amount.String(), t.Description)
}
