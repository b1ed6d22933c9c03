package rules

import (
	"gopkg.in/yaml.v3"

	"github.com/genformai/edi-cli/diagnostic"
)

// Operator is one of the closed set of condition operators.
type Operator string

// The closed set of condition operators.
const (
	OpExists     Operator = "exists"
	OpNotExists  Operator = "not_exists"
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpLt         Operator = "lt"
	OpGte        Operator = "gte"
	OpLte        Operator = "lte"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpMatches    Operator = "matches"
	OpNotMatches Operator = "not_matches"
)

// Condition is one clause of a Rule. A Rule fires only when every one
// of its Conditions evaluates true. The comparison target is either a
// literal Value or, when ValueField names a path, the value found at
// that path — wildcard ValueField paths align positionally with the
// condition's own wildcard matches, so "claims[*].total_paid gt
// claims[*].total_charge" compares each claim against itself.
type Condition struct {
	Field      string      `yaml:"field" json:"field"`
	Operator   Operator    `yaml:"operator" json:"operator"`
	Value      interface{} `yaml:"value,omitempty" json:"value,omitempty"`
	ValueField string      `yaml:"value_field,omitempty" json:"value_field,omitempty"`
	Message    string      `yaml:"message,omitempty" json:"message,omitempty"`
}

// Rule is one declarative rule record: an ordered list of Conditions
// plus the severity, code, and message of the diagnostic it produces.
type Rule struct {
	ID               string                 `yaml:"id" json:"id"`
	Description      string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Severity         diagnostic.Severity    `yaml:"-" json:"-"`
	SeverityName     string                 `yaml:"severity" json:"severity"`
	TransactionTypes []string               `yaml:"transaction_types,omitempty" json:"transaction_types,omitempty"`
	Category         string                 `yaml:"category,omitempty" json:"category,omitempty"`
	Enabled          bool                   `yaml:"enabled" json:"enabled"`
	Conditions       []Condition            `yaml:"conditions" json:"conditions"`
	ErrorCode        string                 `yaml:"error_code,omitempty" json:"error_code,omitempty"`
	Message          string                 `yaml:"message,omitempty" json:"message,omitempty"`
	Extra            map[string]interface{} `yaml:",inline" json:"-"`
}

// UnmarshalYAML decodes a Rule, defaulting Enabled to true when the
// document omits the key entirely (the zero value of bool is false,
// which would otherwise silently disable every rule a trading partner
// didn't think to annotate).
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	type shadow struct {
		ID               string                 `yaml:"id"`
		Description      string                 `yaml:"description"`
		SeverityName     string                 `yaml:"severity"`
		TransactionTypes []string               `yaml:"transaction_types"`
		Category         string                 `yaml:"category"`
		Enabled          *bool                  `yaml:"enabled"`
		Conditions       []Condition            `yaml:"conditions"`
		ErrorCode        string                 `yaml:"error_code"`
		Message          string                 `yaml:"message"`
		Extra            map[string]interface{} `yaml:",inline"`
	}
	var s shadow
	if err := value.Decode(&s); err != nil {
		return err
	}
	r.ID = s.ID
	r.Description = s.Description
	r.SeverityName = s.SeverityName
	r.TransactionTypes = s.TransactionTypes
	r.Category = s.Category
	r.Enabled = s.Enabled == nil || *s.Enabled
	r.Conditions = s.Conditions
	r.ErrorCode = s.ErrorCode
	r.Message = s.Message
	r.Extra = s.Extra
	return nil
}

// code returns the rule's error code, defaulting to its id when no
// explicit error_code is set.
func (r Rule) code() string {
	if r.ErrorCode != "" {
		return r.ErrorCode
	}
	return r.ID
}

// appliesTo reports whether the rule is scoped to txType, or to every
// transaction type when TransactionTypes is empty.
func (r Rule) appliesTo(txType string) bool {
	if len(r.TransactionTypes) == 0 {
		return true
	}
	for _, t := range r.TransactionTypes {
		if t == txType {
			return true
		}
	}
	return false
}
