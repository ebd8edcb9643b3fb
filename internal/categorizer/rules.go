package categorizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/budget-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Rule fields that can be referenced from the category configuration.
const (
	FieldDescription  = "description"
	FieldAccount      = "account"
	FieldCounterparty = "counterparty"
	FieldMutationCode = "mutation_code"
	FieldMutationType = "mutation_type"
	FieldMemo         = "memo"
	FieldDirection    = "direction"
	FieldAmount       = "amount"
)

var textFields = map[string]func(tx *models.Transaction) string{
	FieldDescription:  func(tx *models.Transaction) string { return tx.Description },
	FieldAccount:      func(tx *models.Transaction) string { return tx.Account },
	FieldCounterparty: func(tx *models.Transaction) string { return tx.CounterpartyAccount },
	FieldMutationCode: func(tx *models.Transaction) string { return tx.MutationCode },
	FieldMutationType: func(tx *models.Transaction) string { return tx.MutationType },
	FieldMemo:         func(tx *models.Transaction) string { return tx.Memo },
	FieldDirection:    func(tx *models.Transaction) string { return string(tx.Direction) },
}

// BuildCategories compiles category definitions into categories, keeping
// configuration order. Names must be unique and every category needs a rule.
func BuildCategories(configs []models.CategoryConfig) ([]*models.Category, error) {
	seen := make(map[string]struct{}, len(configs))
	categories := make([]*models.Category, 0, len(configs))

	for i, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate category name '%s'", name)
		}
		seen[name] = struct{}{}

		if len(cfg.Rules) == 0 {
			return nil, fmt.Errorf("category '%s' has no rules", name)
		}

		rules := make([]models.Rule, 0, len(cfg.Rules))
		for j, ruleCfg := range cfg.Rules {
			rule, err := BuildRule(ruleCfg)
			if err != nil {
				return nil, fmt.Errorf("category '%s' rule #%d: %w", name, j+1, err)
			}
			rules = append(rules, rule)
		}

		categories = append(categories, models.NewCategory(name, cfg.Color, cfg.Priority, rules...))
	}

	return categories, nil
}

// BuildRule compiles a rule configuration into a Rule.
func BuildRule(cfg models.RuleConfig) (models.Rule, error) {
	composites := 0
	if len(cfg.All) > 0 {
		composites++
	}
	if len(cfg.Any) > 0 {
		composites++
	}
	if cfg.Not != nil {
		composites++
	}

	switch {
	case composites > 1:
		return nil, fmt.Errorf("rule combines more than one of all/any/not")
	case composites == 1 && cfg.Field != "":
		return nil, fmt.Errorf("rule mixes field '%s' with all/any/not", cfg.Field)
	case len(cfg.All) > 0:
		children, err := buildRules(cfg.All)
		if err != nil {
			return nil, fmt.Errorf("all: %w", err)
		}
		return allOf(children), nil
	case len(cfg.Any) > 0:
		children, err := buildRules(cfg.Any)
		if err != nil {
			return nil, fmt.Errorf("any: %w", err)
		}
		return anyOf(children), nil
	case cfg.Not != nil:
		child, err := BuildRule(*cfg.Not)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return models.RuleFunc(func(tx *models.Transaction) bool { return !child.Matches(tx) }), nil
	case cfg.Field == FieldAmount:
		return buildAmountRule(cfg)
	case cfg.Field == "":
		return nil, fmt.Errorf("rule has neither a field nor all/any/not")
	default:
		return buildTextRule(cfg)
	}
}

func buildRules(configs []models.RuleConfig) ([]models.Rule, error) {
	rules := make([]models.Rule, 0, len(configs))
	for i, cfg := range configs {
		rule, err := BuildRule(cfg)
		if err != nil {
			return nil, fmt.Errorf("#%d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func allOf(rules []models.Rule) models.Rule {
	return models.RuleFunc(func(tx *models.Transaction) bool {
		for _, rule := range rules {
			if !rule.Matches(tx) {
				return false
			}
		}
		return true
	})
}

func anyOf(rules []models.Rule) models.Rule {
	return models.RuleFunc(func(tx *models.Transaction) bool {
		for _, rule := range rules {
			if rule.Matches(tx) {
				return true
			}
		}
		return false
	})
}

func buildTextRule(cfg models.RuleConfig) (models.Rule, error) {
	get, ok := textFields[cfg.Field]
	if !ok {
		return nil, fmt.Errorf("unknown rule field '%s'", cfg.Field)
	}
	if cfg.Min != "" || cfg.Max != "" {
		return nil, fmt.Errorf("min/max only apply to the amount field, not '%s'", cfg.Field)
	}

	operators := 0
	for _, v := range []string{cfg.Equals, cfg.Contains, cfg.Prefix, cfg.Regex} {
		if v != "" {
			operators++
		}
	}
	if operators != 1 {
		return nil, fmt.Errorf("field '%s' needs exactly one of equals/contains/prefix/regex", cfg.Field)
	}

	normalize := strings.ToUpper
	if cfg.CaseSensitive {
		normalize = func(s string) string { return s }
	}

	switch {
	case cfg.Equals != "":
		want := normalize(cfg.Equals)
		return models.RuleFunc(func(tx *models.Transaction) bool {
			return normalize(get(tx)) == want
		}), nil
	case cfg.Contains != "":
		want := normalize(cfg.Contains)
		return models.RuleFunc(func(tx *models.Transaction) bool {
			return strings.Contains(normalize(get(tx)), want)
		}), nil
	case cfg.Prefix != "":
		want := normalize(cfg.Prefix)
		return models.RuleFunc(func(tx *models.Transaction) bool {
			return strings.HasPrefix(normalize(get(tx)), want)
		}), nil
	default:
		pattern := cfg.Regex
		if !cfg.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex for field '%s': %w", cfg.Field, err)
		}
		return models.RuleFunc(func(tx *models.Transaction) bool {
			return re.MatchString(get(tx))
		}), nil
	}
}

func buildAmountRule(cfg models.RuleConfig) (models.Rule, error) {
	if cfg.Contains != "" || cfg.Prefix != "" || cfg.Regex != "" {
		return nil, fmt.Errorf("amount rules support only equals/min/max")
	}
	if cfg.Equals == "" && cfg.Min == "" && cfg.Max == "" {
		return nil, fmt.Errorf("amount rule needs equals, min or max")
	}

	parse := func(name, value string) (*decimal.Decimal, error) {
		if value == "" {
			return nil, nil
		}
		d, err := models.ParseAmount(value)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %s '%s': %w", name, value, err)
		}
		return &d, nil
	}

	equals, err := parse("equals", cfg.Equals)
	if err != nil {
		return nil, err
	}
	lower, err := parse("min", cfg.Min)
	if err != nil {
		return nil, err
	}
	upper, err := parse("max", cfg.Max)
	if err != nil {
		return nil, err
	}
	if lower != nil && upper != nil && lower.GreaterThan(*upper) {
		return nil, fmt.Errorf("amount min %s is greater than max %s", lower, upper)
	}

	return models.RuleFunc(func(tx *models.Transaction) bool {
		if equals != nil && !tx.Amount.Equal(*equals) {
			return false
		}
		if lower != nil && tx.Amount.LessThan(*lower) {
			return false
		}
		if upper != nil && tx.Amount.GreaterThan(*upper) {
			return false
		}
		return true
	}), nil
}
