package validate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// sumMatches sums every numeric match of a (possibly wildcarded) path.
// Non-numeric and absent matches contribute zero; ok is false only when
// the path resolved to nothing at all, so a balance over an empty list
// still evaluates (to zero) while a balance over a missing branch can be
// skipped.
func sumMatches(tree interface{}, location string) (decimal.Decimal, bool) {
	total := decimal.Zero
	any := false
	for _, m := range resolve(tree, location) {
		if !m.found {
			continue
		}
		any = true
		d, err := decimal.NewFromString(asString(m.value))
		if err != nil {
			continue
		}
		total = total.Add(d)
	}
	return total, any
}

// balanceRule verifies that a left-hand field equals the sum of one or
// more right-hand fields within a tolerance.
type balanceRule struct {
	left        string
	rightSums   []string
	tolerance   decimal.Decimal
	description string
	warning     bool
}

// BalanceCheck creates a cross-field rule asserting
//
//	|left - Σ rightSums| <= tolerance
//
// where each right-hand path may carry a wildcard, in which case every
// match is summed. tolerance is a decimal string such as "0.01"; an
// unparsable tolerance means exact equality.
func BalanceCheck(left string, rightSums []string, tolerance string) Rule {
	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		tol = decimal.Zero
	}
	return &balanceRule{left: left, rightSums: rightSums, tolerance: tol}
}

// Validate evaluates the balance equation. The rule passes silently when
// the left-hand field is absent.
func (r *balanceRule) Validate(tree interface{}) []ValidationError {
	leftTotal, ok := sumMatches(tree, r.left)
	if !ok {
		return nil
	}

	rightTotal := decimal.Zero
	for _, loc := range r.rightSums {
		sum, _ := sumMatches(tree, loc)
		rightTotal = rightTotal.Add(sum)
	}

	delta := leftTotal.Sub(rightTotal).Abs()
	if delta.GreaterThan(r.tolerance) {
		return []ValidationError{{
			Location: r.left,
			Rule:     "balance_check",
			Message:  fmt.Sprintf("field does not balance against %s (delta %s, tolerance %s)", strings.Join(r.rightSums, " + "), delta.StringFixed(2), r.tolerance.String()),
			Expected: rightTotal.StringFixed(2),
			Actual:   leftTotal.StringFixed(2),
			Warning:  r.warning,
		}}
	}
	return nil
}

// Location returns the left-hand field path.
func (r *balanceRule) Location() string {
	return r.left
}

// Description returns a human-readable description of this rule.
func (r *balanceRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must equal the sum of %s", r.left, strings.Join(r.rightSums, " + "))
}

// notExceedRule verifies that a field never exceeds a limit field,
// pairwise across wildcard matches.
type notExceedRule struct {
	field       string
	limit       string
	description string
	warning     bool
}

// NotExceedCheck creates a cross-field rule asserting field <= limit,
// compared numerically. Wildcard paths align positionally, so
//
//	NotExceedCheck("claims[*].total_paid", "claims[*].total_charge")
//
// compares each claim's payment against its own submitted charge. A
// single-match limit broadcasts to every field match; non-numeric or
// absent pairs are skipped.
func NotExceedCheck(field, limit string) Rule {
	return &notExceedRule{field: field, limit: limit}
}

// Validate compares each field match against its aligned limit.
func (r *notExceedRule) Validate(tree interface{}) []ValidationError {
	fields := resolve(tree, r.field)
	limits := resolve(tree, r.limit)

	var errs []ValidationError
	for i, m := range fields {
		if !m.found {
			continue
		}
		lim := match{}
		switch {
		case len(limits) == 1:
			lim = limits[0]
		case i < len(limits):
			lim = limits[i]
		}
		if !lim.found {
			continue
		}
		a, errA := decimal.NewFromString(asString(m.value))
		b, errB := decimal.NewFromString(asString(lim.value))
		if errA != nil || errB != nil {
			continue
		}
		if a.GreaterThan(b) {
			errs = append(errs, ValidationError{
				Location: m.location,
				Rule:     "not_exceed",
				Message:  fmt.Sprintf("field exceeds %s", lim.location),
				Expected: "at most " + b.StringFixed(2),
				Actual:   a.StringFixed(2),
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the field path being bounded.
func (r *notExceedRule) Location() string {
	return r.field
}

// Description returns a human-readable description of this rule.
func (r *notExceedRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must not exceed %s", r.field, r.limit)
}

// groupedBalanceRule verifies, within each element of a repeating
// group, that a target field equals the sum of a wildcard path.
type groupedBalanceRule struct {
	group       string
	target      string
	sum         string
	tolerance   decimal.Decimal
	description string
	warning     bool
}

// GroupedBalanceCheck creates a cross-field rule asserting, for every
// element matched by the (wildcard) group path, that the element's
// target field equals the sum of the element-relative sum path within
// tolerance:
//
//	GroupedBalanceCheck("claims[*]", "total_paid", "services[*].paid", "0.01")
//
// holds each claim's payment to the sum of its own service-line
// payments. Elements whose sum path matches nothing (a claim reported
// without service detail) are skipped, as are absent or non-numeric
// targets.
func GroupedBalanceCheck(group, target, sum, tolerance string) Rule {
	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		tol = decimal.Zero
	}
	return &groupedBalanceRule{group: group, target: target, sum: sum, tolerance: tol}
}

// Validate evaluates the balance equation inside each group element.
func (r *groupedBalanceRule) Validate(tree interface{}) []ValidationError {
	var errs []ValidationError
	for _, g := range resolve(tree, r.group) {
		if !g.found {
			continue
		}
		targets := resolve(g.value, r.target)
		if len(targets) == 0 || !targets[0].found {
			continue
		}
		targetTotal, err := decimal.NewFromString(asString(targets[0].value))
		if err != nil {
			continue
		}
		sumTotal, any := sumMatches(g.value, r.sum)
		if !any {
			continue
		}

		delta := targetTotal.Sub(sumTotal).Abs()
		if delta.GreaterThan(r.tolerance) {
			errs = append(errs, ValidationError{
				Location: g.location + "." + r.target,
				Rule:     "balance_check",
				Message:  fmt.Sprintf("field does not balance against %s (delta %s, tolerance %s)", r.sum, delta.StringFixed(2), r.tolerance.String()),
				Expected: sumTotal.StringFixed(2),
				Actual:   targetTotal.StringFixed(2),
				Warning:  r.warning,
			})
		}
	}
	return errs
}

// Location returns the group path the rule iterates.
func (r *groupedBalanceRule) Location() string {
	return r.group
}

// Description returns a human-readable description of this rule.
func (r *groupedBalanceRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s.%s must equal the sum of %s", r.group, r.target, r.sum)
}

// consistencyRule verifies that two fields carry the same value.
type consistencyRule struct {
	fieldA      string
	fieldB      string
	description string
	warning     bool
}

// ConsistencyCheck creates a cross-field rule asserting that fieldA and
// fieldB hold equal values. The rule passes silently when either field
// is absent.
func ConsistencyCheck(fieldA, fieldB string) Rule {
	return &consistencyRule{fieldA: fieldA, fieldB: fieldB}
}

// Validate compares the two fields' first matches.
func (r *consistencyRule) Validate(tree interface{}) []ValidationError {
	a := resolve(tree, r.fieldA)
	b := resolve(tree, r.fieldB)
	if len(a) == 0 || len(b) == 0 || !a[0].found || !b[0].found {
		return nil
	}
	av := asString(a[0].value)
	bv := asString(b[0].value)
	if av != bv {
		return []ValidationError{{
			Location: a[0].location,
			Rule:     "consistency_check",
			Message:  fmt.Sprintf("field disagrees with %s", r.fieldB),
			Expected: bv,
			Actual:   av,
			Warning:  r.warning,
		}}
	}
	return nil
}

// Location returns the first field path.
func (r *consistencyRule) Location() string {
	return r.fieldA
}

// Description returns a human-readable description of this rule.
func (r *consistencyRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s must equal %s", r.fieldA, r.fieldB)
}

// calcTerm is one signed operand of a calculationRule expression.
type calcTerm struct {
	location string
	negate   bool
}

// calculationRule verifies that a target field equals a +/- expression
// over other fields.
type calculationRule struct {
	target      string
	terms       []calcTerm
	tolerance   decimal.Decimal
	description string
	warning     bool
}

// CalculationCheck creates a cross-field rule asserting that target
// equals the expression, a "+"/"-"-separated sequence of field paths
// such as
//
//	"claims[*].total_paid - claims[*].patient_responsibility"
//
// evaluated with wildcard paths summed over their matches, within
// tolerance (a decimal string; unparsable means exact).
func CalculationCheck(target, expression, tolerance string) Rule {
	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		tol = decimal.Zero
	}
	return &calculationRule{target: target, terms: parseExpression(expression), tolerance: tol}
}

// parseExpression splits "a + b - c" into signed terms. The first term
// may carry a leading "-".
func parseExpression(expr string) []calcTerm {
	var terms []calcTerm
	var current strings.Builder
	negate := false

	flush := func(nextNegate bool) {
		if field := strings.TrimSpace(current.String()); field != "" {
			terms = append(terms, calcTerm{location: field, negate: negate})
		}
		current.Reset()
		negate = nextNegate
	}

	for _, r := range expr {
		switch r {
		case '+':
			flush(false)
		case '-':
			flush(true)
		default:
			current.WriteRune(r)
		}
	}
	flush(false)
	return terms
}

// Validate evaluates the expression. The rule passes silently when the
// target field is absent.
func (r *calculationRule) Validate(tree interface{}) []ValidationError {
	targetTotal, ok := sumMatches(tree, r.target)
	if !ok {
		return nil
	}

	total := decimal.Zero
	for _, term := range r.terms {
		sum, _ := sumMatches(tree, term.location)
		if term.negate {
			total = total.Sub(sum)
		} else {
			total = total.Add(sum)
		}
	}

	delta := targetTotal.Sub(total).Abs()
	if delta.GreaterThan(r.tolerance) {
		return []ValidationError{{
			Location: r.target,
			Rule:     "calculation_check",
			Message:  fmt.Sprintf("field does not satisfy its calculation (delta %s, tolerance %s)", delta.StringFixed(2), r.tolerance.String()),
			Expected: total.StringFixed(2),
			Actual:   targetTotal.StringFixed(2),
			Warning:  r.warning,
		}}
	}
	return nil
}

// Location returns the target field path.
func (r *calculationRule) Location() string {
	return r.target
}

// Description returns a human-readable description of this rule.
func (r *calculationRule) Description() string {
	if r.description != "" {
		return r.description
	}
	return fmt.Sprintf("%s calculation validation", r.target)
}

// warnRule wraps another rule, downgrading every failure it produces to
// a warning.
type warnRule struct {
	inner Rule
}

// Warn wraps rule so its failures surface as warnings rather than
// errors.
func Warn(rule Rule) Rule {
	return &warnRule{inner: rule}
}

// Validate runs the wrapped rule and marks each failure as a warning.
func (r *warnRule) Validate(tree interface{}) []ValidationError {
	errs := r.inner.Validate(tree)
	for i := range errs {
		errs[i].Warning = true
	}
	return errs
}

// Location returns the wrapped rule's location.
func (r *warnRule) Location() string {
	return r.inner.Location()
}

// Description returns the wrapped rule's description.
func (r *warnRule) Description() string {
	return r.inner.Description()
}
