package validate

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// RuleBuilder provides a fluent interface for constructing validation
// rules.
type RuleBuilder interface {
	// Required adds a requirement that the field must be present and
	// non-empty.
	Required() RuleBuilder
	// Value adds a requirement that the field must have an exact value.
	Value(expected string) RuleBuilder
	// Pattern adds a requirement that the field must match a regular
	// expression.
	Pattern(pattern string) RuleBuilder
	// Currency adds a requirement that the field must be a decimal with
	// at most two fractional digits.
	Currency() RuleBuilder
	// Date adds a requirement that the field must be a CCYYMMDD date
	// within [min, max]; pass "" for an unbounded side.
	Date(min, max string) RuleBuilder
	// NPI adds a requirement that the field must be a valid National
	// Provider Identifier (10 digits, Luhn check over the 80840 prefix).
	NPI() RuleBuilder
	// TaxID adds a requirement that the field must be a 9-digit tax
	// identifier.
	TaxID() RuleBuilder
	// Range adds a requirement that the numeric field value must be
	// within [min, max]; pass "" for an unbounded side.
	Range(min, max string) RuleBuilder
	// OneOf adds a requirement that the field value must be one of the
	// allowed values.
	OneOf(values ...string) RuleBuilder
	// ConditionalRequired adds a requirement that the field must be
	// present whenever another field carries the given value.
	ConditionalRequired(when, whenValue string) RuleBuilder
	// Custom adds a custom validation function.
	Custom(fn func(value string) error) RuleBuilder
	// AsWarning downgrades every failure this builder's rules produce to
	// a warning.
	AsWarning() RuleBuilder
	// WithDescription sets a custom description for the rule.
	WithDescription(desc string) RuleBuilder
	// Build constructs the final Rule from the builder configuration.
	Build() Rule
}

// ruleBuilder is the concrete implementation of RuleBuilder.
type ruleBuilder struct {
	location    string
	description string
	warning     bool
	rules       []Rule
}

// At creates a new RuleBuilder for the specified field path. The path
// follows the transaction-tree notation (e.g. "payee.npi",
// "claims[*].total_charge").
func At(location string) RuleBuilder {
	return &ruleBuilder{
		location: location,
		rules:    make([]Rule, 0),
	}
}

// Required adds a requirement that the field must be present and
// non-empty.
func (b *ruleBuilder) Required() RuleBuilder {
	b.rules = append(b.rules, &requiredRule{location: b.location})
	return b
}

// Value adds a requirement that the field must have an exact value.
func (b *ruleBuilder) Value(expected string) RuleBuilder {
	b.rules = append(b.rules, &valueRule{location: b.location, expected: expected})
	return b
}

// Pattern adds a requirement that the field must match a regular
// expression. If the pattern is invalid, the rule will always fail with
// a pattern error.
func (b *ruleBuilder) Pattern(pattern string) RuleBuilder {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		b.rules = append(b.rules, &invalidPatternRule{
			location: b.location,
			pattern:  pattern,
			err:      err,
		})
		return b
	}
	b.rules = append(b.rules, &patternRule{location: b.location, pattern: compiled})
	return b
}

// Currency adds a requirement that the field must be a monetary decimal.
func (b *ruleBuilder) Currency() RuleBuilder {
	b.rules = append(b.rules, &currencyRule{location: b.location})
	return b
}

// Date adds a requirement that the field must be a CCYYMMDD date within
// bounds.
func (b *ruleBuilder) Date(min, max string) RuleBuilder {
	b.rules = append(b.rules, &dateRule{location: b.location, min: min, max: max})
	return b
}

// NPI adds a requirement that the field must be a valid NPI.
func (b *ruleBuilder) NPI() RuleBuilder {
	b.rules = append(b.rules, &npiRule{location: b.location})
	return b
}

// TaxID adds a requirement that the field must be a tax identifier.
func (b *ruleBuilder) TaxID() RuleBuilder {
	b.rules = append(b.rules, &taxIDRule{location: b.location})
	return b
}

// Range adds a requirement that the numeric field value must be within
// bounds. An unparsable bound is treated as unbounded on that side.
func (b *ruleBuilder) Range(min, max string) RuleBuilder {
	r := &rangeRule{location: b.location}
	if d, err := decimal.NewFromString(min); err == nil {
		r.min = d
		r.hasMin = true
	}
	if d, err := decimal.NewFromString(max); err == nil {
		r.max = d
		r.hasMax = true
	}
	b.rules = append(b.rules, r)
	return b
}

// OneOf adds a requirement that the field value must be one of the
// allowed values.
func (b *ruleBuilder) OneOf(values ...string) RuleBuilder {
	b.rules = append(b.rules, &oneOfRule{location: b.location, allowed: values})
	return b
}

// ConditionalRequired adds a requirement that the field must be present
// whenever the `when` field carries whenValue.
func (b *ruleBuilder) ConditionalRequired(when, whenValue string) RuleBuilder {
	b.rules = append(b.rules, &conditionalRequiredRule{
		location:  b.location,
		when:      when,
		whenValue: whenValue,
	})
	return b
}

// Custom adds a custom validation function.
func (b *ruleBuilder) Custom(fn func(value string) error) RuleBuilder {
	b.rules = append(b.rules, &customRule{location: b.location, fn: fn})
	return b
}

// AsWarning downgrades this builder's failures to warnings.
func (b *ruleBuilder) AsWarning() RuleBuilder {
	b.warning = true
	return b
}

// WithDescription sets a custom description for the rule.
func (b *ruleBuilder) WithDescription(desc string) RuleBuilder {
	b.description = desc
	return b
}

// Build constructs the final Rule from the builder configuration.
// If no rules were added, returns a no-op rule that always passes.
// If only one rule was added, returns that rule directly.
// If multiple rules were added, returns a composite rule.
func (b *ruleBuilder) Build() Rule {
	if len(b.rules) == 0 {
		return &noopRule{
			location:    b.location,
			description: b.description,
		}
	}

	for _, rule := range b.rules {
		switch r := rule.(type) {
		case *requiredRule:
			r.description = b.description
			r.warning = b.warning
		case *valueRule:
			r.description = b.description
			r.warning = b.warning
		case *patternRule:
			r.description = b.description
			r.warning = b.warning
		case *currencyRule:
			r.description = b.description
			r.warning = b.warning
		case *dateRule:
			r.description = b.description
			r.warning = b.warning
		case *npiRule:
			r.description = b.description
			r.warning = b.warning
		case *taxIDRule:
			r.description = b.description
			r.warning = b.warning
		case *rangeRule:
			r.description = b.description
			r.warning = b.warning
		case *oneOfRule:
			r.description = b.description
			r.warning = b.warning
		case *conditionalRequiredRule:
			r.description = b.description
			r.warning = b.warning
		case *customRule:
			r.description = b.description
			r.warning = b.warning
		case *invalidPatternRule:
			r.description = b.description
		}
	}

	if len(b.rules) == 1 {
		return b.rules[0]
	}

	return &compositeRule{
		location:    b.location,
		rules:       b.rules,
		description: b.description,
	}
}

// noopRule is a rule that always passes validation.
type noopRule struct {
	location    string
	description string
}

func (r *noopRule) Validate(_ interface{}) []ValidationError {
	return nil
}

func (r *noopRule) Location() string {
	return r.location
}

func (r *noopRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return "no validation"
}

// invalidPatternRule is a rule that always fails because the pattern was
// invalid.
type invalidPatternRule struct {
	location    string
	pattern     string
	err         error
	description string
}

func (r *invalidPatternRule) Validate(_ interface{}) []ValidationError {
	return []ValidationError{{
		Location: r.location,
		Rule:     "pattern",
		Message:  "invalid pattern: " + r.err.Error(),
		Expected: r.pattern,
	}}
}

func (r *invalidPatternRule) Location() string {
	return r.location
}

func (r *invalidPatternRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return "invalid pattern rule"
}
