package categorizer

import (
	"testing"

	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx() *models.Transaction {
	return &models.Transaction{
		Description:         "Albert Heijn 1234 AMSTERDAM",
		Account:             "NL01INGB0001",
		CounterpartyAccount: "NL99RABO0099",
		MutationCode:        "BA",
		MutationType:        "Betaalautomaat",
		Direction:           models.DirectionSpending,
		Amount:              decimal.RequireFromString("42.50"),
		Memo:                "Pasvolgnr: 001",
	}
}

func TestBuildRule_Leaves(t *testing.T) {
	tests := []struct {
		name    string
		cfg     models.RuleConfig
		matches bool
	}{
		{name: "equals case-insensitive", cfg: models.RuleConfig{Field: FieldCounterparty, Equals: "nl99rabo0099"}, matches: true},
		{name: "equals case-sensitive mismatch", cfg: models.RuleConfig{Field: FieldCounterparty, Equals: "nl99rabo0099", CaseSensitive: true}, matches: false},
		{name: "contains", cfg: models.RuleConfig{Field: FieldDescription, Contains: "heijn"}, matches: true},
		{name: "contains miss", cfg: models.RuleConfig{Field: FieldDescription, Contains: "jumbo"}, matches: false},
		{name: "prefix", cfg: models.RuleConfig{Field: FieldMemo, Prefix: "pasvolgnr"}, matches: true},
		{name: "regex", cfg: models.RuleConfig{Field: FieldDescription, Regex: `^albert heijn \d+`}, matches: true},
		{name: "mutation code", cfg: models.RuleConfig{Field: FieldMutationCode, Equals: "BA"}, matches: true},
		{name: "mutation type", cfg: models.RuleConfig{Field: FieldMutationType, Contains: "automaat"}, matches: true},
		{name: "account", cfg: models.RuleConfig{Field: FieldAccount, Equals: "NL01INGB0001"}, matches: true},
		{name: "direction", cfg: models.RuleConfig{Field: FieldDirection, Equals: "spending"}, matches: true},
		{name: "amount range", cfg: models.RuleConfig{Field: FieldAmount, Min: "40", Max: "50"}, matches: true},
		{name: "amount min inclusive", cfg: models.RuleConfig{Field: FieldAmount, Min: "42,50"}, matches: true},
		{name: "amount max exceeded", cfg: models.RuleConfig{Field: FieldAmount, Max: "42.49"}, matches: false},
		{name: "amount equals", cfg: models.RuleConfig{Field: FieldAmount, Equals: "42.5"}, matches: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := BuildRule(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.matches, rule.Matches(sampleTx()))
		})
	}
}

func TestBuildRule_Composites(t *testing.T) {
	allRule, err := BuildRule(models.RuleConfig{All: []models.RuleConfig{
		{Field: FieldDescription, Contains: "heijn"},
		{Field: FieldAmount, Max: "100"},
	}})
	require.NoError(t, err)
	assert.True(t, allRule.Matches(sampleTx()))

	anyRule, err := BuildRule(models.RuleConfig{Any: []models.RuleConfig{
		{Field: FieldDescription, Contains: "jumbo"},
		{Field: FieldDescription, Contains: "lidl"},
	}})
	require.NoError(t, err)
	assert.False(t, anyRule.Matches(sampleTx()))

	notRule, err := BuildRule(models.RuleConfig{Not: &models.RuleConfig{Field: FieldDirection, Equals: "income"}})
	require.NoError(t, err)
	assert.True(t, notRule.Matches(sampleTx()))
}

func TestBuildRule_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.RuleConfig
	}{
		{name: "empty", cfg: models.RuleConfig{}},
		{name: "unknown field", cfg: models.RuleConfig{Field: "iban", Equals: "x"}},
		{name: "no operator", cfg: models.RuleConfig{Field: FieldDescription}},
		{name: "two operators", cfg: models.RuleConfig{Field: FieldDescription, Equals: "a", Contains: "b"}},
		{name: "bad regex", cfg: models.RuleConfig{Field: FieldDescription, Regex: "("}},
		{name: "min on text field", cfg: models.RuleConfig{Field: FieldMemo, Min: "1"}},
		{name: "amount contains", cfg: models.RuleConfig{Field: FieldAmount, Contains: "1"}},
		{name: "amount bad decimal", cfg: models.RuleConfig{Field: FieldAmount, Min: "lots"}},
		{name: "amount min above max", cfg: models.RuleConfig{Field: FieldAmount, Min: "10", Max: "5"}},
		{name: "field and composite", cfg: models.RuleConfig{Field: FieldMemo, Contains: "x", All: []models.RuleConfig{{Field: FieldMemo, Contains: "y"}}}},
		{name: "two composites", cfg: models.RuleConfig{
			All: []models.RuleConfig{{Field: FieldMemo, Contains: "y"}},
			Any: []models.RuleConfig{{Field: FieldMemo, Contains: "z"}},
		}},
		{name: "invalid child", cfg: models.RuleConfig{All: []models.RuleConfig{{Field: "nope", Equals: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRule(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuildCategories(t *testing.T) {
	categories, err := BuildCategories([]models.CategoryConfig{
		{Name: "salary", Color: "green", Priority: 1, Rules: []models.RuleConfig{{Field: FieldCounterparty, Equals: "EMP001"}}},
		{Name: "groceries", Color: "orange", Priority: 2, Rules: []models.RuleConfig{
			{Field: FieldDescription, Contains: "heijn"},
			{Field: FieldDescription, Contains: "jumbo"},
		}},
	})
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "salary", categories[0].Name)
	assert.Equal(t, "green", categories[0].Color)
	assert.Equal(t, 1, categories[0].Priority)
	assert.Len(t, categories[1].Rules, 2)
	assert.True(t, categories[1].Matches(sampleTx()))
}

func TestBuildCategories_Invalid(t *testing.T) {
	rule := []models.RuleConfig{{Field: FieldMemo, Contains: "x"}}

	tests := []struct {
		name    string
		configs []models.CategoryConfig
		message string
	}{
		{name: "missing name", configs: []models.CategoryConfig{{Rules: rule}}, message: "has no name"},
		{name: "duplicate", configs: []models.CategoryConfig{{Name: "a", Rules: rule}, {Name: "a", Rules: rule}}, message: "duplicate category name 'a'"},
		{name: "no rules", configs: []models.CategoryConfig{{Name: "a"}}, message: "has no rules"},
		{name: "bad rule", configs: []models.CategoryConfig{{Name: "a", Rules: []models.RuleConfig{{Field: "x", Equals: "y"}}}}, message: "category 'a' rule #1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildCategories(tt.configs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
