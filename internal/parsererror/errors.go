// Package parsererror defines the error taxonomy shared by ingestion, the
// categorization engine and the aggregator. Every error aborts the run; none of
// them is meant to be recovered locally.
package parsererror

import "fmt"

// MalformedRecordError reports a ledger record that could not be turned into a
// transaction: a missing column, an unparsable date or amount, or an unknown
// direction flag.
type MalformedRecordError struct {
	Row    int // 1-based data row, 0 when unknown
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	prefix := "malformed record"
	if e.Row > 0 {
		prefix = fmt.Sprintf("malformed record at row %d", e.Row)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: field %q value '%s': %s: %v", prefix, e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: field %q value '%s': %s", prefix, e.Field, e.Value, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// CategorizationConflictError is raised when a category tries to claim a
// transaction that is already held by a category of equal or higher priority.
// With Tie set, nothing was claimed: both categories match the transaction at
// the same, highest priority.
type CategorizationConflictError struct {
	Transaction      string
	Existing         string
	ExistingPriority int
	Incoming         string
	IncomingPriority int
	Tie              bool
}

func (e *CategorizationConflictError) Error() string {
	if e.Tie {
		return fmt.Sprintf("categories '%s' and '%s' are tied at priority %d for transaction %s",
			e.Existing, e.Incoming, e.ExistingPriority, e.Transaction)
	}
	return fmt.Sprintf("category '%s' (priority %d) tried to claim transaction %s, but it was already categorized as '%s' (priority %d)",
		e.Incoming, e.IncomingPriority, e.Transaction, e.Existing, e.ExistingPriority)
}

// DirectionMismatchError is raised when claiming a transaction would mix income
// and spending inside one category.
type DirectionMismatchError struct {
	Category            string
	CategoryIsIncome    bool
	Transaction         string
	TransactionIsIncome bool
}

func (e *DirectionMismatchError) Error() string {
	return fmt.Sprintf("category '%s' is %s but transaction %s is %s",
		e.Category, directionLabel(e.CategoryIsIncome), e.Transaction, directionLabel(e.TransactionIsIncome))
}

// UncategorizedTransactionsError is raised by the coverage check when any
// transaction is left without a category.
type UncategorizedTransactionsError struct {
	Income   int
	Spending int
}

func (e *UncategorizedTransactionsError) Error() string {
	return fmt.Sprintf("there are still uncategorized transactions! income: %d - spending: %d", e.Income, e.Spending)
}

// Total returns the number of uncategorized transactions in both directions.
func (e *UncategorizedTransactionsError) Total() int {
	return e.Income + e.Spending
}

// UndeterminedDirectionError is raised when the direction of a category with no
// claimed transactions is requested.
type UndeterminedDirectionError struct {
	Category string
}

func (e *UndeterminedDirectionError) Error() string {
	return fmt.Sprintf("unable to determine if category '%s' is income or spending: no transactions claimed", e.Category)
}

func directionLabel(isIncome bool) string {
	if isIncome {
		return "income"
	}
	return "spending"
}
