package rules

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/x12"
)

// Registry holds an ordered, immutable collection of Rules. Rules fire in
// registration order; within a rule, wildcard-expanded matches fire in
// ascending index order, so the diagnostic sequence is deterministic.
type Registry struct {
	rules []Rule
}

// NewRegistry builds a Registry from the given rules, resolving each
// rule's SeverityName into its Severity. Enabled is taken as-is: rules
// decoded from YAML default it to true when the key is omitted, while
// rules built as Go literals must set it explicitly.
func NewRegistry(rs ...Rule) *Registry {
	out := make([]Rule, len(rs))
	for i, r := range rs {
		r.Severity = diagnostic.ParseSeverity(r.SeverityName)
		out[i] = r
	}
	return &Registry{rules: out}
}

// Rules returns the registry's rules in registration order.
func (reg *Registry) Rules() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	return out
}

// Engine evaluates a Registry's rules against transaction trees.
type Engine struct {
	registry *Registry
}

// NewEngine builds an Engine bound to registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Evaluate runs every enabled, applicable rule in the registry against
// data (a transaction's semantic tree, e.g. *transaction.T835), scoped
// to the given transaction type code and diagnostic path prefix. It
// returns the number of rules actually evaluated (enabled and scoped to
// txType), matching Report.Summary.RulesApplied.
func (e *Engine) Evaluate(txType string, data interface{}, pathPrefix string, diag *diagnostic.Collector) int {
	tree, err := toTree(data)
	if err != nil {
		diag.Warnf("RULES_TREE_ERROR", pathPrefix, "could not convert transaction to a rule-evaluable tree: "+err.Error())
		return 0
	}

	applied := 0
	for _, rule := range e.registry.rules {
		if !rule.Enabled || !rule.appliesTo(txType) {
			continue
		}
		applied++
		e.evaluateRule(rule, tree, pathPrefix, diag)
	}
	return applied
}

func (e *Engine) evaluateRule(rule Rule, tree interface{}, pathPrefix string, diag *diagnostic.Collector) {
	if len(rule.Conditions) == 0 {
		return
	}

	// Resolve every condition against the tree. A condition whose field
	// contains a wildcard multiplies the match set; conditions are
	// combined positionally by concrete path so "services[*].charge > 0
	// AND services[*].paid > 0" lines up per service rather than cross
	// producting unrelated indices. ValueField paths resolve the same way
	// and align by the same index.
	perCondition := make([][]resolved, len(rule.Conditions))
	perWant := make([][]resolved, len(rule.Conditions))
	for i, cond := range rule.Conditions {
		p, err := x12.ParsePath(cond.Field)
		if err != nil {
			continue
		}
		perCondition[i] = resolvePath(tree, p)
		if cond.ValueField != "" {
			wp, err := x12.ParsePath(cond.ValueField)
			if err != nil {
				continue
			}
			perWant[i] = resolvePath(tree, wp)
		}
	}

	for gi, group := range matchGroups(perCondition) {
		if !conditionsTrue(rule.Conditions, group, perWant, gi) {
			continue
		}
		e.fire(rule, group, pathPrefix, diag)
	}
}

// matchGroups lines up one resolved entry per condition for each
// wildcard-expanded match, in ascending index order. A condition that
// resolved to a single value (no wildcard in its path) broadcasts that
// value to every match; when more
// than one condition carries a wildcard, they are expected to expand
// over the same repeating element and so line up positionally.
func matchGroups(perCondition [][]resolved) [][]resolved {
	if len(perCondition) == 0 {
		return nil
	}

	maxLen := 0
	for _, rs := range perCondition {
		if len(rs) > maxLen {
			maxLen = len(rs)
		}
	}

	groups := make([][]resolved, maxLen)
	for i := 0; i < maxLen; i++ {
		group := make([]resolved, len(perCondition))
		for c, rs := range perCondition {
			switch {
			case len(rs) == 1:
				group[c] = rs[0]
			case i < len(rs):
				group[c] = rs[i]
			default:
				group[c] = resolved{found: false}
			}
		}
		groups[i] = group
	}
	return groups
}

// conditionsTrue evaluates every condition of a rule against one aligned
// match group. A condition carrying a ValueField takes its comparison
// target from that path's resolution at the same group index (a
// single-match ValueField broadcasts); a ValueField that resolved to
// nothing makes the condition false rather than firing against a zero.
func conditionsTrue(conditions []Condition, group []resolved, perWant [][]resolved, gi int) bool {
	if len(group) != len(conditions) {
		return false
	}
	for i, cond := range conditions {
		r := group[i]
		want := cond.Value
		if cond.ValueField != "" {
			w, ok := alignedWant(perWant[i], gi)
			if !ok {
				return false
			}
			want = w
		}
		if !evaluate(cond.Operator, r.found, r.value, want) {
			return false
		}
	}
	return true
}

// alignedWant picks the ValueField resolution for group index gi: a
// single match broadcasts to every group, a wildcard expansion aligns
// positionally.
func alignedWant(rs []resolved, gi int) (interface{}, bool) {
	switch {
	case len(rs) == 1:
		if !rs[0].found {
			return nil, false
		}
		return rs[0].value, true
	case gi < len(rs):
		if !rs[gi].found {
			return nil, false
		}
		return rs[gi].value, true
	default:
		return nil, false
	}
}

func (e *Engine) fire(rule Rule, group []resolved, pathPrefix string, diag *diagnostic.Collector) {
	fieldPath := ""
	value := ""
	if len(group) > 0 {
		fieldPath = group[len(group)-1].path
		value = toDisplayString(group[len(group)-1].value)
	}

	msg := rule.Message
	if msg == "" {
		msg = rule.Description
	}
	msg = strings.ReplaceAll(msg, "{value}", value)
	msg = strings.ReplaceAll(msg, "{field}", fieldPath)

	path := fieldPath
	if pathPrefix != "" && fieldPath != "" {
		path = pathPrefix + "." + fieldPath
	} else if path == "" {
		path = pathPrefix
	}

	diag.Add(diagnostic.Diagnostic{
		Severity:  rule.Severity,
		Code:      rule.code(),
		Path:      path,
		FieldPath: fieldPath,
		Message:   msg,
		Value:     value,
		RuleID:    rule.ID,
	})
}

func toDisplayString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// toTree round-trips data through its JSON encoding into a generic
// interface{} tree (map[string]interface{} / []interface{} / scalars),
// avoiding struct-tag reflection over the domain types directly.
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
