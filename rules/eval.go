package rules

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/genformai/edi-cli/x12"
)

// resolved is one path resolution result: the concrete path it matched
// (wildcards expanded to a concrete index) and the value found there, or
// found=false if the path did not exist.
type resolved struct {
	path  string
	value interface{}
	found bool
}

// resolvePath walks tree, a generic JSON-shaped value (map[string]
// interface{}, []interface{}, or a scalar), following path. A wildcard
// token multiplies the walk: resolvePath returns one resolved entry per
// matching index, in ascending order.
func resolvePath(tree interface{}, path x12.Path) []resolved {
	return walk(tree, path, "")
}

func walk(node interface{}, path x12.Path, prefix string) []resolved {
	if len(path) == 0 {
		return []resolved{{path: prefix, value: node, found: true}}
	}

	tok := path[0]
	rest := path[1:]

	m, ok := node.(map[string]interface{})
	if !ok {
		return []resolved{{path: joinPath(prefix, tok.Name), found: false}}
	}
	field, present := m[tok.Name]
	fieldPath := joinPath(prefix, tok.Name)
	if !present {
		return []resolved{{path: fieldPath, found: false}}
	}

	switch {
	case tok.Wildcard:
		arr, ok := field.([]interface{})
		if !ok {
			return []resolved{{path: fieldPath, found: false}}
		}
		var out []resolved
		for i, elem := range arr {
			elemPath := fmt.Sprintf("%s[%d]", fieldPath, i)
			out = append(out, walk(elem, rest, elemPath)...)
		}
		return out
	case tok.Index >= 0:
		arr, ok := field.([]interface{})
		if !ok || tok.Index >= len(arr) {
			return []resolved{{path: fmt.Sprintf("%s[%d]", fieldPath, tok.Index), found: false}}
		}
		return walk(arr[tok.Index], rest, fmt.Sprintf("%s[%d]", fieldPath, tok.Index))
	default:
		return walk(field, rest, fieldPath)
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// evaluate applies a Condition's operator to a resolved value. Numeric
// operators coerce strings that parse as decimals; a non-numeric value
// against a numeric operator evaluates false without error.
func evaluate(op Operator, found bool, value interface{}, want interface{}) bool {
	switch op {
	case OpExists:
		return found
	case OpNotExists:
		return !found
	}
	if !found {
		return false
	}

	switch op {
	case OpEq:
		return fmt.Sprint(value) == fmt.Sprint(want)
	case OpNe:
		return fmt.Sprint(value) != fmt.Sprint(want)
	case OpGt, OpLt, OpGte, OpLte:
		a, aok := toFloat(value)
		b, bok := toFloat(want)
		if !aok || !bok {
			return false
		}
		switch op {
		case OpGt:
			return a > b
		case OpLt:
			return a < b
		case OpGte:
			return a >= b
		default:
			return a <= b
		}
	case OpIn, OpNotIn:
		list, ok := want.([]interface{})
		if !ok {
			return false
		}
		match := false
		for _, v := range list {
			if fmt.Sprint(v) == fmt.Sprint(value) {
				match = true
				break
			}
		}
		if op == OpIn {
			return match
		}
		return !match
	case OpMatches, OpNotMatches:
		pattern, ok := want.(string)
		if !ok {
			return false
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		match := re.MatchString(fmt.Sprint(value))
		if op == OpMatches {
			return match
		}
		return !match
	default:
		return false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
