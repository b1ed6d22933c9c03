package parse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/rules"
	"github.com/genformai/edi-cli/transaction"
	"github.com/genformai/edi-cli/validate"
	"github.com/genformai/edi-cli/x12"
)

// Parser is the top-level entry point: it turns raw X12 bytes into a
// x12.Document plus a diagnostic.Collector, running delimiter
// detection, segment tokenization, envelope assembly, and transaction
// dispatch in sequence.
type Parser interface {
	// Parse runs the full pipeline over data.
	Parse(data []byte) (x12.Document, *diagnostic.Collector, error)
	// ParseContext is Parse with cancellation support; the context is
	// checked between transaction sets so a caller can abandon parsing
	// of an unusually large document.
	ParseContext(ctx context.Context, data []byte) (x12.Document, *diagnostic.Collector, error)
	// ParseAndValidate runs Parse followed by the configured rule set
	// (WithRules) against every transaction set's semantic tree.
	ParseAndValidate(data []byte) (x12.Document, *diagnostic.Collector, error)
	// ParseAndValidateContext is ParseAndValidate with cancellation
	// support, and honors WithRuleTimeout as a wall-clock budget over
	// the rule-evaluation phase specifically.
	ParseAndValidateContext(ctx context.Context, data []byte) (x12.Document, *diagnostic.Collector, error)
}

type parser struct {
	cfg       config
	registry  *transaction.Registry
	engine    *rules.Engine
	validator validate.Validator
}

// New constructs a Parser with the given options applied over the
// defaults. The built-in 835/837P/270/271/276/277 projectors are always
// registered; WithProjector adds to that set or overrides an entry.
func New(opts ...Option) Parser {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	registry := transaction.NewRegistry()
	for code, p := range cfg.projectors {
		registry.Register(code, p)
	}
	engine := rules.NewEngine(rules.NewRegistry(cfg.rules...))
	return &parser{
		cfg:       cfg,
		registry:  registry,
		engine:    engine,
		validator: validate.NewValidator(cfg.checks...),
	}
}

// Parse runs the pipeline with a background context.
func (p *parser) Parse(data []byte) (x12.Document, *diagnostic.Collector, error) {
	return p.ParseContext(context.Background(), data)
}

// ParseContext runs the pipeline, returning a *x12.ParseError only for
// the conditions that make the input impossible to interpret as X12 at
// all. Every other condition is recorded on the returned collector.
func (p *parser) ParseContext(ctx context.Context, data []byte) (x12.Document, *diagnostic.Collector, error) {
	diag := diagnostic.NewCollector()

	if len(data) == 0 {
		return x12.Document{}, diag, &x12.ParseError{Message: "input is empty", Cause: x12.ErrEmptyDocument}
	}

	delims, err := x12.DetectDelimiters(data)
	if err != nil {
		return x12.Document{}, diag, &x12.ParseError{Message: "could not detect delimiters", Path: "interchanges[0]", Cause: err}
	}

	segments, malformed := x12.Tokenize(data, delims)
	for _, m := range malformed {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     "MALFORMED_SEGMENT",
			Path:     "segments[" + strconv.Itoa(m.Index) + "]",
			Message:  "segment id is not 2-3 uppercase characters",
			Value:    m.ID,
		})
	}

	if p.cfg.maxElementLength > 0 {
		for i, seg := range segments {
			for pos, element := range seg.Elements {
				for _, component := range element {
					if len(component) > p.cfg.maxElementLength {
						diag.Add(diagnostic.Diagnostic{
							Severity: diagnostic.SeverityWarning,
							Code:     "ELEMENT_LENGTH_EXCEEDED",
							Path:     fmt.Sprintf("segments[%d]", i),
							Message:  fmt.Sprintf("%s%02d exceeds the configured maximum element length", seg.ID, pos+1),
						})
						break
					}
				}
			}
		}
	}

	if p.cfg.maxSegments > 0 && len(segments) > p.cfg.maxSegments {
		segments = segments[:p.cfg.maxSegments]
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     "SEGMENT_LIMIT_EXCEEDED",
			Path:     "interchanges",
			Message:  "document truncated after reaching the configured segment limit",
		})
	}

	interchanges := x12.AssembleEnvelope(segments, diag)

	for i := range interchanges {
		for _, group := range interchanges[i].FunctionalGroups {
			for _, ts := range group.TransactionSets {
				select {
				case <-ctx.Done():
					return x12.Document{Interchanges: interchanges}, diag, nil
				default:
				}
				p.registry.Dispatch(ts, diag)
			}
		}
	}

	return x12.Document{Interchanges: interchanges}, diag, nil
}

// ParseAndValidate runs the pipeline with a background context.
func (p *parser) ParseAndValidate(data []byte) (x12.Document, *diagnostic.Collector, error) {
	return p.ParseAndValidateContext(context.Background(), data)
}

// ParseAndValidateContext parses data and then runs every configured
// rule (WithRules) against each transaction set's projected semantic
// tree, in document order. Rule evaluation stops early, leaving the
// parsed document and diagnostics already recorded intact, when:
//   - the context is cancelled,
//   - WithRuleTimeout's budget is exceeded (records a RULES_TIMEOUT info
//     diagnostic), or
//   - the configured ErrorPolicy's MaxErrors or FailFast threshold is
//     reached.
func (p *parser) ParseAndValidateContext(ctx context.Context, data []byte) (x12.Document, *diagnostic.Collector, error) {
	doc, diag, err := p.ParseContext(ctx, data)
	if err != nil {
		return doc, diag, err
	}

	var deadline <-chan time.Time
	if p.cfg.ruleTimeoutMillis > 0 {
		timer := time.NewTimer(time.Duration(p.cfg.ruleTimeoutMillis) * time.Millisecond)
		defer timer.Stop()
		deadline = timer.C
	}

	baselineErrs, _, _ := diag.Counts()

	for i := range doc.Interchanges {
		for _, group := range doc.Interchanges[i].FunctionalGroups {
			for _, ts := range group.TransactionSets {
				select {
				case <-ctx.Done():
					return doc, diag, nil
				case <-deadline:
					diag.Infof("RULES_TIMEOUT", "interchanges", "rule evaluation stopped after exceeding its configured time budget")
					return doc, diag, nil
				default:
				}

				pathPrefix := fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber)
				diag.RecordRulesApplied(p.engine.Evaluate(ts.Code, ts.Data, pathPrefix, diag))

				if len(p.cfg.checks) > 0 && ts.Data != nil {
					collectCheckResult(p.validator.Validate(ts.Data), pathPrefix, diag)
				}

				if p.errorPolicyExceeded(diag, baselineErrs) {
					return doc, diag, nil
				}
			}
		}
	}

	for _, check := range p.cfg.documentChecks {
		for _, e := range check(doc) {
			diag.Add(checkDiagnostic(e, "", diagnostic.SeverityError))
		}
	}

	return doc, diag, nil
}

// collectCheckResult converts a validate result into diagnostics scoped
// under the transaction's path prefix.
func collectCheckResult(res validate.ValidationResult, pathPrefix string, diag *diagnostic.Collector) {
	for _, e := range res.Errors() {
		diag.Add(checkDiagnostic(e, pathPrefix, diagnostic.SeverityError))
	}
	for _, w := range res.Warnings() {
		diag.Add(checkDiagnostic(validate.ValidationError{
			Location: w.Location,
			Rule:     w.Rule,
			Message:  w.Message,
		}, pathPrefix, diagnostic.SeverityWarning))
	}
}

// checkDiagnostic maps one field-validator failure into the FIELD_*
// diagnostic namespace (FIELD_REQUIRED, FIELD_NPI_FORMAT, ...).
func checkDiagnostic(e validate.ValidationError, pathPrefix string, severity diagnostic.Severity) diagnostic.Diagnostic {
	path := e.Location
	if pathPrefix != "" && path != "" {
		path = pathPrefix + "." + path
	} else if path == "" {
		path = pathPrefix
	}
	return diagnostic.Diagnostic{
		Severity:  severity,
		Code:      "FIELD_" + strings.ToUpper(e.Rule),
		Path:      path,
		FieldPath: e.Location,
		Message:   e.Message,
		Value:     e.Actual,
	}
}

// errorPolicyExceeded reports whether the configured ErrorPolicy calls
// for stopping rule evaluation, given how many error-severity
// diagnostics existed before rule evaluation began (baselineErrs) versus
// now — so a document that already failed structural validation doesn't
// trip FailFast before a single rule has run.
func (p *parser) errorPolicyExceeded(diag *diagnostic.Collector, baselineErrs int) bool {
	errs, _, _ := diag.Counts()
	ruleErrs := errs - baselineErrs
	if p.cfg.errorPolicy.FailFast && ruleErrs > 0 {
		return true
	}
	if p.cfg.errorPolicy.MaxErrors > 0 && ruleErrs >= p.cfg.errorPolicy.MaxErrors {
		return true
	}
	return false
}
