package parse

import (
	"github.com/genformai/edi-cli/rules"
	"github.com/genformai/edi-cli/transaction"
	"github.com/genformai/edi-cli/validate"
)

// Default parser configuration values.
const (
	defaultMaxSegments      = 100000 // DoS protection: maximum segments per document
	defaultMaxElementLength = 65536  // DoS protection: maximum element length in bytes
)

// ErrorPolicy is the single error-handling strategy record described in
// the design notes, replacing layered "enhanced parser" / "silent
// handler" style error customization with one place to configure it.
type ErrorPolicy struct {
	// MaxErrors stops rule evaluation once rule evaluation has recorded
	// this many error-severity diagnostics; errors recorded while parsing
	// do not count. The limit is checked after each transaction set.
	// Zero means unlimited.
	MaxErrors int
	// FailFast stops rule evaluation at the first error-severity
	// diagnostic raised during rule evaluation. The structure parsed so
	// far, and any diagnostics already recorded, are still returned.
	FailFast bool
}

// config holds the parser configuration.
type config struct {
	maxSegments       int
	maxElementLength  int
	errorPolicy       ErrorPolicy
	projectors        map[string]transaction.Projector
	ruleTimeoutMillis int
	rules             []rules.Rule
	checks            []validate.Rule
	documentChecks    []validate.DocumentRule
}

// defaultConfig returns a parser configuration with default values.
func defaultConfig() config {
	return config{
		maxSegments:      defaultMaxSegments,
		maxElementLength: defaultMaxElementLength,
	}
}

// Option is a functional option for configuring the Parser.
type Option func(*config)

// WithMaxSegments sets the maximum number of segments allowed in a
// document. This is a DoS protection mechanism; default is 100000.
func WithMaxSegments(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxSegments = limit
		}
	}
}

// WithMaxElementLength sets the maximum element length allowed, in bytes.
func WithMaxElementLength(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxElementLength = limit
		}
	}
}

// WithErrorPolicy installs the {max_errors, fail_fast} policy record.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(c *config) {
		c.errorPolicy = p
	}
}

// WithProjector registers an additional transaction-set projector,
// implementing the plugin extension point at construction time.
func WithProjector(code string, p transaction.Projector) Option {
	return func(c *config) {
		if c.projectors == nil {
			c.projectors = make(map[string]transaction.Projector)
		}
		c.projectors[code] = p
	}
}

// WithRuleTimeout sets a wall-clock budget, in milliseconds, for rule
// evaluation performed via Parser.ParseAndValidate. Zero (the default)
// means no budget.
func WithRuleTimeout(millis int) Option {
	return func(c *config) {
		c.ruleTimeoutMillis = millis
	}
}

// WithRules installs the declarative rule set evaluated by
// Parser.ParseAndValidate. Repeated calls accumulate rather than
// replace, so a built-in set and a trading-partner's custom YAML rules
// can be combined:
//
//	parse.New(
//	    parse.WithRules(rules.BuiltinSet("comprehensive")...),
//	    parse.WithRules(customRules...),
//	)
func WithRules(rs ...rules.Rule) Option {
	return func(c *config) {
		c.rules = append(c.rules, rs...)
	}
}

// WithRuleSet installs a named built-in validation profile end to end:
// the declarative rules from rules.BuiltinSet plus the compiled
// validators the declarative engine cannot express — NPI checksums,
// per-claim service-line aggregation, control-number uniqueness across
// the run, and the recognized-transaction-code screen. Recognized
// names match rules.BuiltinSet; an unrecognized name installs nothing.
func WithRuleSet(name string) Option {
	return func(c *config) {
		c.rules = append(c.rules, rules.BuiltinSet(name)...)
		switch name {
		case "business", "enhanced-business":
			c.checks = append(c.checks, validate.Financial835Rules().Rules()...)
		case "hipaa", "hipaa-advanced":
			c.checks = append(c.checks, validate.HIPAARules().Rules()...)
			c.documentChecks = append(c.documentChecks,
				validate.ControlNumberUniqueness(),
				validate.RecognizedTransactionCodes(),
			)
		case "comprehensive", "all":
			c.checks = append(c.checks, validate.Financial835Rules().Rules()...)
			c.checks = append(c.checks, validate.HIPAARules().Rules()...)
			c.documentChecks = append(c.documentChecks,
				validate.ControlNumberUniqueness(),
				validate.RecognizedTransactionCodes(),
			)
		}
	}
}

// WithChecks installs compiled field validators (the validate package's
// vocabulary: NPI check digits, balance equations, date windows) run by
// Parser.ParseAndValidate against every projected transaction, after the
// declarative rules. Failures surface as FIELD_* diagnostics.
func WithChecks(cs ...validate.Rule) Option {
	return func(c *config) {
		c.checks = append(c.checks, cs...)
	}
}

// WithDocumentChecks installs whole-document validators evaluated once
// per parse, for cross-transaction invariants such as
// validate.ControlNumberUniqueness.
func WithDocumentChecks(cs ...validate.DocumentRule) Option {
	return func(c *config) {
		c.documentChecks = append(c.documentChecks, cs...)
	}
}
