package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Rule defines a validation rule that can be applied to a projected
// transaction tree.
type Rule interface {
	// Validate applies this rule to the tree and returns any validation
	// errors.
	Validate(tree interface{}) []ValidationError
	// Location returns the field path this rule applies to (e.g.
	// "claims[*].claim_id").
	Location() string
	// Description returns a human-readable description of what this rule
	// validates.
	Description() string
}

// ValidationError represents a validation failure.
type ValidationError struct {
	// Location is the concrete field path where validation failed, with
	// wildcards expanded to the matching index.
	Location string
	// Rule is the name/type of the validation rule that failed.
	Rule string
	// Message describes what went wrong.
	Message string
	// Expected describes what was expected (optional).
	Expected string
	// Actual describes what was found (optional).
	Actual string
	// Warning marks the failure as non-critical; the Validator routes it
	// into the result's warning bucket instead of the error bucket.
	Warning bool
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation error")

	if e.Location != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Location)
	}

	if e.Rule != "" {
		sb.WriteString(" [")
		sb.WriteString(e.Rule)
		sb.WriteString("]")
	}

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	switch {
	case e.Expected != "" && e.Actual != "":
		sb.WriteString(fmt.Sprintf(" (expected %s, got %s)", e.Expected, e.Actual))
	case e.Expected != "":
		sb.WriteString(fmt.Sprintf(" (expected %s)", e.Expected))
	case e.Actual != "":
		sb.WriteString(fmt.Sprintf(" (got %s)", e.Actual))
	}

	return sb.String()
}

// ValidationWarning represents a non-critical validation issue.
type ValidationWarning struct {
	// Location is the field path where the warning was raised.
	Location string
	// Rule is the name/type of the validation rule that raised the
	// warning.
	Rule string
	// Message describes the warning.
	Message string
}

// String returns a human-readable representation of the warning.
func (w ValidationWarning) String() string {
	var sb strings.Builder
	sb.WriteString("warning")

	if w.Location != "" {
		sb.WriteString(" at ")
		sb.WriteString(w.Location)
	}

	if w.Rule != "" {
		sb.WriteString(" [")
		sb.WriteString(w.Rule)
		sb.WriteString("]")
	}

	if w.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(w.Message)
	}

	return sb.String()
}

// requiredRule validates that a field is present and non-empty.
type requiredRule struct {
	location    string
	description string
	warning     bool
}

// Validate checks that every location match exists and has a non-empty
// value.
func (r *requiredRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "required",
				Message:  "field is required but absent",
				Warning:  r.warning,
			})
			continue
		}
		if strings.TrimSpace(asString(m.value)) == "" {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "required",
				Message:  "field is required but empty",
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *requiredRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *requiredRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s is required", r.location)
}

// valueRule validates that a field has an exact expected value.
type valueRule struct {
	location    string
	expected    string
	description string
	warning     bool
}

// Validate checks that every location match has the expected value.
// Absent fields pass (use required for presence).
func (r *valueRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		if actual := asString(m.value); actual != r.expected {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "value",
				Message:  "field value does not match expected",
				Expected: r.expected,
				Actual:   actual,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *valueRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *valueRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must equal %q", r.location, r.expected)
}

// patternRule validates that a field matches a regular expression.
type patternRule struct {
	location    string
	pattern     *regexp.Regexp
	description string
	warning     bool
}

// Validate checks that every non-empty location match satisfies the
// pattern. Absent and empty fields pass (use required for presence).
func (r *patternRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		if !r.pattern.MatchString(value) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "pattern",
				Message:  "field value does not match pattern",
				Expected: r.pattern.String(),
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *patternRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *patternRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must match pattern %q", r.location, r.pattern.String())
}

// currencyRule validates that a field parses as a decimal with at most
// two fractional digits.
type currencyRule struct {
	location    string
	description string
	warning     bool
}

// Validate checks monetary shape on every non-empty location match.
func (r *currencyRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "currency_format",
				Message:  "field value is not a decimal number",
				Actual:   value,
				Warning:  r.warning,
			})
			continue
		}
		if d.Exponent() < -2 {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "currency_format",
				Message:  "monetary value carries more than two decimal places",
				Expected: "at most 2 decimal places",
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *currencyRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *currencyRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must be a monetary amount", r.location)
}

// dateRule validates that a field is a CCYYMMDD date, optionally bounded
// to a [min, max] window (inclusive; either bound may be empty).
type dateRule struct {
	location    string
	min         string
	max         string
	description string
	warning     bool
}

// Validate checks date shape and bounds on every non-empty match.
func (r *dateRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		t, err := time.Parse("20060102", value)
		if err != nil {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "date_format",
				Message:  "field value is not a CCYYMMDD date",
				Actual:   value,
				Warning:  r.warning,
			})
			continue
		}
		if r.min != "" {
			if minT, err := time.Parse("20060102", r.min); err == nil && t.Before(minT) {
				errs = append(errs, ValidationError{
					Location: m.location,
					Rule:     "date_format",
					Message:  "date is before the allowed minimum",
					Expected: "on or after " + r.min,
					Actual:   value,
					Warning:  r.warning,
				})
			}
		}
		if r.max != "" {
			if maxT, err := time.Parse("20060102", r.max); err == nil && t.After(maxT) {
				errs = append(errs, ValidationError{
					Location: m.location,
					Rule:     "date_format",
					Message:  "date is after the allowed maximum",
					Expected: "on or before " + r.max,
					Actual:   value,
					Warning:  r.warning,
				})
			}
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *dateRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *dateRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must be a CCYYMMDD date", r.location)
}

// npiRule validates the National Provider Identifier format: exactly 10
// digits whose check digit verifies under Luhn with the "80840" issuer
// prefix.
type npiRule struct {
	location    string
	description string
	warning     bool
}

// Validate checks NPI format on every non-empty match.
func (r *npiRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		if !ValidNPI(value) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "npi_format",
				Message:  "field value is not a valid NPI",
				Expected: "10 digits with a valid check digit",
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *npiRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *npiRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must be a valid NPI", r.location)
}

var npiShape = regexp.MustCompile(`^\d{10}$`)

// ValidNPI reports whether s is a well-formed National Provider
// Identifier: 10 digits, with the final digit a Luhn check digit
// computed over the card-issuer prefix "80840" plus the first nine
// digits.
func ValidNPI(s string) bool {
	if !npiShape.MatchString(s) {
		return false
	}
	return luhnValid("80840" + s)
}

// luhnValid runs the standard Luhn mod-10 check over a digit string,
// including its trailing check digit.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// taxIDRule validates the federal tax identifier format: exactly nine
// digits, with or without the "12-3456789" hyphenation.
type taxIDRule struct {
	location    string
	description string
	warning     bool
}

var taxIDShape = regexp.MustCompile(`^\d{2}-?\d{7}$`)

// Validate checks tax-id format on every non-empty match.
func (r *taxIDRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		if !taxIDShape.MatchString(value) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "tax_id_format",
				Message:  "field value is not a valid tax identifier",
				Expected: "9 digits",
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *taxIDRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *taxIDRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must be a valid tax identifier", r.location)
}

// rangeRule validates that a numeric field falls within [min, max].
type rangeRule struct {
	location    string
	min         decimal.Decimal
	max         decimal.Decimal
	hasMin      bool
	hasMax      bool
	description string
	warning     bool
}

// Validate checks bounds on every non-empty match. A non-numeric value
// fails the rule outright.
func (r *rangeRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "range",
				Message:  "field value is not numeric",
				Actual:   value,
				Warning:  r.warning,
			})
			continue
		}
		if r.hasMin && d.LessThan(r.min) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "range",
				Message:  "field value is below the allowed minimum",
				Expected: "at least " + r.min.String(),
				Actual:   value,
				Warning:  r.warning,
			})
		}
		if r.hasMax && d.GreaterThan(r.max) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "range",
				Message:  "field value is above the allowed maximum",
				Expected: "at most " + r.max.String(),
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *rangeRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *rangeRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s range validation", r.location)
}

// oneOfRule validates that a field value is one of the allowed values.
type oneOfRule struct {
	location    string
	allowed     []string
	description string
	warning     bool
}

// Validate checks membership on every non-empty match.
func (r *oneOfRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if value == "" {
			continue
		}
		found := false
		for _, allowed := range r.allowed {
			if value == allowed {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "enum",
				Message:  "field value is not in allowed list",
				Expected: fmt.Sprintf("one of [%s]", strings.Join(r.allowed, ", ")),
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *oneOfRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *oneOfRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must be one of [%s]", r.location, strings.Join(r.allowed, ", "))
}

// conditionalRequiredRule validates that the target field is present and
// non-empty whenever another field carries a given value.
type conditionalRequiredRule struct {
	location    string
	when        string
	whenValue   string
	description string
	warning     bool
}

// Validate checks the condition field first; when it matches, the target
// must resolve non-empty.
func (r *conditionalRequiredRule) Validate(tree interface{}) []ValidationError {
	triggered := false
	for _, m := range resolve(tree, r.when) {
		if m.found && asString(m.value) == r.whenValue {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	required := requiredRule{location: r.location, warning: r.warning}
	errs := required.Validate(tree)
	for i := range errs {
		errs[i].Rule = "conditional_required"
		errs[i].Message = fmt.Sprintf("field is required when %s is %q", r.when, r.whenValue)
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *conditionalRequiredRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *conditionalRequiredRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s is required when %s is %q", r.location, r.when, r.whenValue)
}

// customRule validates a field using a custom validation function.
type customRule struct {
	location    string
	fn          func(string) error
	description string
	warning     bool
}

// Validate applies the custom validation function to every found match.
func (r *customRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, m := range resolve(tree, r.location) {
		if !m.found {
			continue
		}
		value := asString(m.value)
		if validationErr := r.fn(value); validationErr != nil {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "custom",
				Message:  validationErr.Error(),
				Actual:   value,
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path this rule applies to.
func (r *customRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *customRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s custom validation", r.location)
}

// compositeRule combines multiple rules that all apply to the same
// location. All rules must pass for the composite to pass.
type compositeRule struct {
	location    string
	rules       []Rule
	description string
}

// Validate applies all contained rules and collects all errors.
func (r *compositeRule) Validate(tree interface{}) []ValidationError {
	var errors []ValidationError
	for _, rule := range r.rules {
		if errs := rule.Validate(tree); len(errs) > 0 {
			errors = append(errors, errs...)
		}
	}
	return errors
}

// Location returns the field path this rule applies to.
func (r *compositeRule) Location() string {
	return r.location
}

// Description returns a human-readable description of this rule.
func (r *compositeRule) Description() string {
	if r.description != "" {
		return r.description
	}
	descriptions := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		descriptions = append(descriptions, rule.Description())
	}
	return strings.Join(descriptions, "; ")
}
