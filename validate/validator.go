package validate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/genformai/edi-cli/x12"
)

// ValidationResult represents the outcome of validating a transaction
// tree.
type ValidationResult interface {
	// Valid returns true if no validation errors occurred.
	Valid() bool
	// Errors returns all validation errors encountered.
	Errors() []ValidationError
	// Warnings returns all validation warnings encountered.
	Warnings() []ValidationWarning
}

// Validator validates a projected transaction tree against a set of
// rules.
type Validator interface {
	// Validate applies all rules to the transaction and returns the
	// result. data is any value that marshals to the canonical JSON
	// shape, typically a *transaction.T835 and friends; passing an
	// already-converted tree (map[string]interface{}) is also accepted.
	Validate(data interface{}) ValidationResult
}

// validationResult is the concrete implementation of ValidationResult.
type validationResult struct {
	errors   []ValidationError
	warnings []ValidationWarning
}

// Valid returns true if no validation errors occurred.
func (r *validationResult) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns all validation errors encountered.
func (r *validationResult) Errors() []ValidationError {
	if r.errors == nil {
		return []ValidationError{}
	}
	result := make([]ValidationError, len(r.errors))
	copy(result, r.errors)
	return result
}

// Warnings returns all validation warnings encountered.
func (r *validationResult) Warnings() []ValidationWarning {
	if r.warnings == nil {
		return []ValidationWarning{}
	}
	result := make([]ValidationWarning, len(r.warnings))
	copy(result, r.warnings)
	return result
}

// validator is the concrete implementation of Validator.
type validator struct {
	rules []Rule
}

// NewValidator creates a Validator that applies the given rules in
// order.
func NewValidator(rules ...Rule) Validator {
	return &validator{rules: rules}
}

// Validate applies all rules to the transaction tree.
func (v *validator) Validate(data interface{}) ValidationResult {
	result := &validationResult{}
	tree, err := toTree(data)
	if err != nil {
		result.errors = append(result.errors, ValidationError{
			Rule:    "tree",
			Message: fmt.Sprintf("could not convert transaction to a validatable tree: %v", err),
		})
		return result
	}

	for _, rule := range v.rules {
		for _, e := range rule.Validate(tree) {
			if e.Warning {
				result.warnings = append(result.warnings, ValidationWarning{
					Location: e.Location,
					Rule:     e.Rule,
					Message:  e.Message,
				})
				continue
			}
			result.errors = append(result.errors, e)
		}
	}
	return result
}

// toTree converts data into the generic JSON-shaped tree rules walk:
// map[string]interface{} / []interface{} / scalars. A value that is
// already such a tree passes through the round-trip unchanged.
func toTree(data interface{}) (interface{}, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// match is one concrete resolution of a path against a tree: the
// wildcard-expanded location and the value found there.
type match struct {
	location string
	value    interface{}
	found    bool
}

// resolve walks tree following a dotted path, expanding "[*]" wildcards
// into one match per list element, in ascending index order. A missing
// intermediate field yields a single not-found match carrying the
// deepest location reached.
func resolve(tree interface{}, location string) []match {
	path, err := x12.ParsePath(location)
	if err != nil {
		return []match{{location: location, found: false}}
	}
	return resolveTokens(tree, path, "")
}

func resolveTokens(node interface{}, path x12.Path, prefix string) []match {
	if len(path) == 0 {
		return []match{{location: prefix, value: node, found: true}}
	}

	tok := path[0]
	rest := path[1:]

	m, ok := node.(map[string]interface{})
	if !ok {
		return []match{{location: joinLocation(prefix, tok.Name), found: false}}
	}
	field, present := m[tok.Name]
	fieldLoc := joinLocation(prefix, tok.Name)
	if !present {
		return []match{{location: fieldLoc, found: false}}
	}

	switch {
	case tok.Wildcard:
		arr, ok := field.([]interface{})
		if !ok {
			return []match{{location: fieldLoc, found: false}}
		}
		var out []match
		for i, elem := range arr {
			out = append(out, resolveTokens(elem, rest, fmt.Sprintf("%s[%d]", fieldLoc, i))...)
		}
		return out
	case tok.Index >= 0:
		arr, ok := field.([]interface{})
		if !ok || tok.Index >= len(arr) {
			return []match{{location: fmt.Sprintf("%s[%d]", fieldLoc, tok.Index), found: false}}
		}
		return resolveTokens(arr[tok.Index], rest, fmt.Sprintf("%s[%d]", fieldLoc, tok.Index))
	default:
		return resolveTokens(field, rest, fieldLoc)
	}
}

func joinLocation(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// asString renders a resolved tree value for string-shaped checks.
// Numbers render without an exponent so "1000" and 1000.0 compare equal.
func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
