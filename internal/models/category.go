package models

import (
	"fjacquet/budget-csv/internal/parsererror"
)

// Rule is a predicate over a transaction. Implementations must be pure and
// must not modify the transaction.
type Rule interface {
	Matches(tx *Transaction) bool
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(tx *Transaction) bool

// Matches calls f(tx).
func (f RuleFunc) Matches(tx *Transaction) bool {
	return f(tx)
}

// Category is a named, colored, prioritized group of rules that claims
// transactions. The claimed set is direction-homogeneous: its direction is
// fixed by the first claimed transaction.
type Category struct {
	Name     string
	Color    string // opaque to the engine, resolved by presentation
	Priority int    // higher value wins
	Rules    []Rule

	transactions []*Transaction
}

// NewCategory creates a category with no claimed transactions.
func NewCategory(name, color string, priority int, rules ...Rule) *Category {
	return &Category{
		Name:     name,
		Color:    color,
		Priority: priority,
		Rules:    rules,
	}
}

// MatchingRule returns the index of the first rule matching tx.
func (c *Category) MatchingRule(tx *Transaction) (int, bool) {
	for i, rule := range c.Rules {
		if rule.Matches(tx) {
			return i, true
		}
	}
	return -1, false
}

// Matches reports whether any rule of the category matches tx.
func (c *Category) Matches(tx *Transaction) bool {
	_, ok := c.MatchingRule(tx)
	return ok
}

// IsIncome returns the direction of the category, derived from its first
// claimed transaction.
func (c *Category) IsIncome() (bool, error) {
	if len(c.transactions) == 0 {
		return false, &parsererror.UndeterminedDirectionError{Category: c.Name}
	}
	return c.transactions[0].IsIncome(), nil
}

// Direction is IsIncome expressed as a Direction.
func (c *Category) Direction() (Direction, error) {
	isIncome, err := c.IsIncome()
	if err != nil {
		return "", err
	}
	if isIncome {
		return DirectionIncome, nil
	}
	return DirectionSpending, nil
}

// Claim takes ownership of tx. It fails when the transaction is already
// classified or when its direction differs from the category's.
func (c *Category) Claim(tx *Transaction) error {
	if existing, ok := tx.Category(); ok {
		return &parsererror.CategorizationConflictError{
			Transaction:      tx.String(),
			Existing:         existing.Name,
			ExistingPriority: existing.Priority,
			Incoming:         c.Name,
			IncomingPriority: c.Priority,
		}
	}
	if len(c.transactions) > 0 && c.transactions[0].IsIncome() != tx.IsIncome() {
		return &parsererror.DirectionMismatchError{
			Category:            c.Name,
			CategoryIsIncome:    c.transactions[0].IsIncome(),
			Transaction:         tx.String(),
			TransactionIsIncome: tx.IsIncome(),
		}
	}
	if err := tx.classify(c); err != nil {
		return err
	}
	c.transactions = append(c.transactions, tx)
	return nil
}

// Transactions returns a copy of the claimed transactions.
func (c *Category) Transactions() []*Transaction {
	out := make([]*Transaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// Len returns the number of claimed transactions.
func (c *Category) Len() int {
	return len(c.transactions)
}

// Contains reports whether tx is claimed by this category.
func (c *Category) Contains(tx *Transaction) bool {
	owner, ok := tx.Category()
	return ok && owner == c
}

func (c *Category) String() string {
	return c.Name
}
