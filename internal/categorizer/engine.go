// Package categorizer assigns every transaction of a ledger to exactly one
// category and enforces the coverage and direction invariants.
package categorizer

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parsererror"
)

// ConflictPolicy decides what happens when several categories match one transaction.
type ConflictPolicy string

const (
	// PolicyGuard keeps the first claim. A later claim by a category of equal
	// or lower priority is a conflict; a later claim by a strictly higher
	// priority category is not transferred and is counted as retained.
	PolicyGuard ConflictPolicy = "guard"

	// PolicyHighestPriority evaluates every category before assigning and
	// gives the transaction to the single highest-priority match. A tie at
	// the top is a conflict.
	PolicyHighestPriority ConflictPolicy = "highest-priority"
)

// ParsePolicy converts a configuration value into a ConflictPolicy.
func ParsePolicy(value string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", PolicyGuard:
		return PolicyGuard, nil
	case PolicyHighestPriority:
		return PolicyHighestPriority, nil
	default:
		return "", fmt.Errorf("unknown conflict policy '%s' (must be '%s' or '%s')", value, PolicyGuard, PolicyHighestPriority)
	}
}

// Result summarizes a successful categorization pass.
type Result struct {
	Categories     []*models.Category
	Transactions   []*models.Transaction
	Claimed        int // transactions classified by this pass
	RetainedClaims int // higher-priority claims refused under PolicyGuard
}

// Stats summarizes the pass.
func (r *Result) Stats() models.CategorizationStats {
	stats := models.NewCategorizationStats(r.Categories, r.Transactions)
	stats.Claimed = r.Claimed
	stats.RetainedClaims = r.RetainedClaims
	return stats
}

// Counts returns the number of claimed transactions per category name.
func (r *Result) Counts() map[string]int {
	counts := make(map[string]int, len(r.Categories))
	for _, category := range r.Categories {
		counts[category.Name] = category.Len()
	}
	return counts
}

// Engine runs categories over transactions. It holds no per-run state and can
// be reused.
type Engine struct {
	logger logging.Logger
	policy ConflictPolicy
}

// NewEngine creates an Engine. A nil logger falls back to a text logrus logger.
func NewEngine(logger logging.Logger, policy ConflictPolicy) *Engine {
	if logger == nil {
		logger = logging.NewDefault()
	}
	if policy == "" {
		policy = PolicyGuard
	}
	return &Engine{
		logger: logger,
		policy: policy,
	}
}

// Policy returns the conflict policy of the engine.
func (e *Engine) Policy() ConflictPolicy {
	return e.policy
}

// Categorize assigns every transaction to one category. The run is
// all-or-nothing: assignments are planned first and only committed when the
// whole pass, including the coverage check, succeeds. On error no transaction
// is classified by this call.
func (e *Engine) Categorize(categories []*models.Category, transactions []*models.Transaction) (*Result, error) {
	start := time.Now()

	if err := validateCategories(categories); err != nil {
		return nil, err
	}

	p := newPlan(categories, transactions)

	var err error
	switch e.policy {
	case PolicyGuard:
		err = e.planGuarded(p)
	case PolicyHighestPriority:
		err = e.planHighestPriority(p)
	default:
		err = fmt.Errorf("unknown conflict policy '%s'", e.policy)
	}
	if err != nil {
		return nil, err
	}

	if err := checkCoverage(transactions, p.assigned); err != nil {
		return nil, err
	}

	claimed, err := p.commit()
	if err != nil {
		return nil, fmt.Errorf("committing categorization: %w", err)
	}

	e.logger.Info("Categorization completed",
		logging.F(logging.FieldPolicy, string(e.policy)),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F("claimed", claimed),
		logging.F("retained_claims", p.retained),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{
		Categories:     categories,
		Transactions:   transactions,
		Claimed:        claimed,
		RetainedClaims: p.retained,
	}, nil
}

// planGuarded walks categories in configuration order; within a category a
// transaction is claimed by the first matching rule.
func (e *Engine) planGuarded(p *plan) error {
	for _, category := range p.categories {
		for _, tx := range p.transactions {
			ruleIdx, ok := category.MatchingRule(tx)
			if !ok {
				continue
			}

			if existing, claimed := p.owner(tx); claimed {
				if existing.Priority >= category.Priority {
					return conflictError(tx, existing, category)
				}
				p.retained++
				e.logger.Warn("Higher-priority claim refused, first claim retained",
					logging.F(logging.FieldTransactionID, tx.ID),
					logging.F(logging.FieldExisting, existing.Name),
					logging.F(logging.FieldCategory, category.Name),
					logging.F(logging.FieldPriority, category.Priority))
				continue
			}

			if err := p.assign(tx, category); err != nil {
				return err
			}
			e.logger.Debug("Transaction claimed",
				logging.F(logging.FieldTransactionID, tx.ID),
				logging.F(logging.FieldCategory, category.Name),
				logging.F("rule", ruleIdx))
		}
	}
	return nil
}

// planHighestPriority assigns each transaction to its highest-priority match.
func (e *Engine) planHighestPriority(p *plan) error {
	for _, tx := range p.transactions {
		if _, claimed := p.owner(tx); claimed {
			continue
		}

		var best, tied *models.Category
		for _, category := range p.categories {
			if !category.Matches(tx) {
				continue
			}
			switch {
			case best == nil || category.Priority > best.Priority:
				best, tied = category, nil
			case category.Priority == best.Priority && tied == nil:
				tied = category
			}
		}

		if best == nil {
			continue
		}
		if tied != nil {
			return tieError(tx, best, tied)
		}
		if err := p.assign(tx, best); err != nil {
			return err
		}
		e.logger.Debug("Transaction claimed",
			logging.F(logging.FieldTransactionID, tx.ID),
			logging.F(logging.FieldCategory, best.Name),
			logging.F(logging.FieldPriority, best.Priority))
	}
	return nil
}

// VerifyFullCoverage fails with UncategorizedTransactionsError when any
// transaction is still unclassified.
func VerifyFullCoverage(transactions []*models.Transaction) error {
	return checkCoverage(transactions, func(tx *models.Transaction) bool {
		return tx.IsClassified()
	})
}

func checkCoverage(transactions []*models.Transaction, classified func(*models.Transaction) bool) error {
	var income, spending int
	for _, tx := range transactions {
		if classified(tx) {
			continue
		}
		if tx.IsIncome() {
			income++
		} else {
			spending++
		}
	}
	if income > 0 || spending > 0 {
		return &parsererror.UncategorizedTransactionsError{Income: income, Spending: spending}
	}
	return nil
}

func validateCategories(categories []*models.Category) error {
	seen := make(map[string]struct{}, len(categories))
	for i, category := range categories {
		if category == nil {
			return fmt.Errorf("category #%d is nil", i+1)
		}
		if _, dup := seen[category.Name]; dup {
			return fmt.Errorf("duplicate category name '%s'", category.Name)
		}
		seen[category.Name] = struct{}{}
	}
	return nil
}

func conflictError(tx *models.Transaction, existing, incoming *models.Category) error {
	return &parsererror.CategorizationConflictError{
		Transaction:      tx.String(),
		Existing:         existing.Name,
		ExistingPriority: existing.Priority,
		Incoming:         incoming.Name,
		IncomingPriority: incoming.Priority,
	}
}

func tieError(tx *models.Transaction, first, second *models.Category) error {
	return &parsererror.CategorizationConflictError{
		Transaction:      tx.String(),
		Existing:         first.Name,
		ExistingPriority: first.Priority,
		Incoming:         second.Name,
		IncomingPriority: second.Priority,
		Tie:              true,
	}
}
