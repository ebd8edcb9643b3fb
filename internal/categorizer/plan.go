package categorizer

import (
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/parsererror"
)

// plan holds tentative assignments until a pass is known to succeed.
// Transactions classified before the pass count as existing claims.
type plan struct {
	categories   []*models.Category
	transactions []*models.Transaction

	owners    map[*models.Transaction]*models.Category
	direction map[*models.Category]bool // isIncome, once established
	retained  int
}

func newPlan(categories []*models.Category, transactions []*models.Transaction) *plan {
	p := &plan{
		categories:   categories,
		transactions: transactions,
		owners:       make(map[*models.Transaction]*models.Category, len(transactions)),
		direction:    make(map[*models.Category]bool, len(categories)),
	}
	for _, category := range categories {
		if isIncome, err := category.IsIncome(); err == nil {
			p.direction[category] = isIncome
		}
	}
	for _, tx := range transactions {
		if category, ok := tx.Category(); ok {
			p.owners[tx] = category
		}
	}
	return p
}

func (p *plan) owner(tx *models.Transaction) (*models.Category, bool) {
	category, ok := p.owners[tx]
	return category, ok
}

func (p *plan) assigned(tx *models.Transaction) bool {
	_, ok := p.owners[tx]
	return ok
}

func (p *plan) assign(tx *models.Transaction, category *models.Category) error {
	if isIncome, ok := p.direction[category]; ok && isIncome != tx.IsIncome() {
		return &parsererror.DirectionMismatchError{
			Category:            category.Name,
			CategoryIsIncome:    isIncome,
			Transaction:         tx.String(),
			TransactionIsIncome: tx.IsIncome(),
		}
	}
	p.direction[category] = tx.IsIncome()
	p.owners[tx] = category
	return nil
}

// commit claims planned transactions category by category, in transaction
// order, and returns the number of new claims.
func (p *plan) commit() (int, error) {
	claimed := 0
	for _, category := range p.categories {
		for _, tx := range p.transactions {
			if p.owners[tx] != category || tx.IsClassified() {
				continue
			}
			if err := category.Claim(tx); err != nil {
				return claimed, err
			}
			claimed++
		}
	}
	return claimed, nil
}
