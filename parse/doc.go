// Package parse provides the top-level X12 EDI document parser: it
// orchestrates delimiter detection, segment tokenization, envelope
// assembly, transaction dispatch, and, via ParseAndValidate,
// declarative rule evaluation into a single call
// that returns a x12.Document plus a diagnostic.Collector.
//
// # Basic Usage
//
//	p := parse.New()
//	doc, diag, err := p.Parse(data)
//	if err != nil {
//	    log.Fatal("parse error:", err)
//	}
//	if !diag.IsValid() {
//	    fmt.Println("document has validation errors")
//	}
//
// # Validation
//
// ParseAndValidate runs Parse and then evaluates every rule installed
// with WithRules against each transaction set's projected semantic tree:
//
//	p := parse.New(parse.WithRules(rules.BuiltinSet("comprehensive")...))
//	doc, diag, err := p.ParseAndValidate(data)
//	report := diag.Report()
//
// # Parser Options
//
// The parser supports functional options for configuring limits and
// extension points:
//
//	p := parse.New(
//	    parse.WithMaxSegments(5000),
//	    parse.WithErrorPolicy(parse.ErrorPolicy{MaxErrors: 50, FailFast: false}),
//	    parse.WithProjector("999", myCustomProjector),
//	    parse.WithRuleTimeout(500),
//	)
//
// # Error Handling
//
// Parse and ParseContext return a non-nil error only for the single fatal
// condition described in the design: the input cannot be interpreted as
// X12 at all (empty input, missing ISA, or a header shorter than 106
// bytes). Every other problem — mismatched control numbers, a missing
// required segment, an unparsable monetary field, a failed business rule
// — is recorded on the returned diagnostic.Collector, and a best-effort
// document is still returned alongside it.
package parse
