package models

// CategoryConfig represents a category definition in the YAML file
type CategoryConfig struct {
	Name     string       `yaml:"name"`
	Color    string       `yaml:"color"`
	Priority int          `yaml:"priority"`
	Rules    []RuleConfig `yaml:"rules"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// RuleConfig is the serializable form of a rule. A leaf compares one
// transaction field; All, Any and Not combine nested rules.
type RuleConfig struct {
	Field         string `yaml:"field,omitempty"`
	Equals        string `yaml:"equals,omitempty"`
	Contains      string `yaml:"contains,omitempty"`
	Prefix        string `yaml:"prefix,omitempty"`
	Regex         string `yaml:"regex,omitempty"`
	Min           string `yaml:"min,omitempty"`
	Max           string `yaml:"max,omitempty"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty"`

	All []RuleConfig `yaml:"all,omitempty"`
	Any []RuleConfig `yaml:"any,omitempty"`
	Not *RuleConfig  `yaml:"not,omitempty"`
}
