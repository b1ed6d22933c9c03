package diagnostic

import "github.com/google/uuid"

// Collector accumulates Diagnostics for a single parse-and-validate
// invocation. It is append-only and deduplicates by (code, path, value):
// a later diagnostic with the same triple as an earlier one is silently
// dropped, matching the "dedup by (code,path,value)" rule in the design.
// A Collector has no notion of time; ordering reflects the order its
// producers called Add.
type Collector struct {
	runID        string
	seen         map[dedupeKey]struct{}
	diags        []Diagnostic
	errs         int
	warns        int
	infos        int
	rulesApplied int
}

// NewCollector returns an empty Collector stamped with a fresh run id
// (surfaced as Report.RunID so a caller can correlate a diagnostic blob
// back to a specific invocation in logs or a support ticket).
func NewCollector() *Collector {
	return &Collector{
		runID: uuid.NewString(),
		seen:  make(map[dedupeKey]struct{}),
	}
}

// RunID returns the identifier stamped on this collector at construction.
func (c *Collector) RunID() string {
	return c.runID
}

// Add appends d unless an equal-keyed diagnostic was already recorded.
func (c *Collector) Add(d Diagnostic) {
	key := d.key()
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}
	c.diags = append(c.diags, d)

	switch d.Severity {
	case SeverityError:
		c.errs++
	case SeverityWarning:
		c.warns++
	case SeverityInfo:
		c.infos++
	}
}

// Addf is a convenience for the common case of a diagnostic with no
// value, rule id, or context.
func (c *Collector) Addf(severity Severity, code, path, message string) {
	c.Add(Diagnostic{Severity: severity, Code: code, Path: path, Message: message})
}

// Errorf appends an error-severity diagnostic.
func (c *Collector) Errorf(code, path, message string) {
	c.Addf(SeverityError, code, path, message)
}

// Warnf appends a warning-severity diagnostic.
func (c *Collector) Warnf(code, path, message string) {
	c.Addf(SeverityWarning, code, path, message)
}

// Infof appends an info-severity diagnostic.
func (c *Collector) Infof(code, path, message string) {
	c.Addf(SeverityInfo, code, path, message)
}

// All returns every recorded diagnostic in insertion order.
func (c *Collector) All() []Diagnostic {
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// IsValid reports whether zero error-severity diagnostics were recorded.
func (c *Collector) IsValid() bool {
	return c.errs == 0
}

// Counts returns the number of error, warning, and info diagnostics
// recorded so far.
func (c *Collector) Counts() (errors, warnings, info int) {
	return c.errs, c.warns, c.infos
}

// RecordRulesApplied adds n to the count of enabled rules evaluated
// against the document so far, surfaced as Report.Summary.RulesApplied.
// The parser calls this once per transaction set with the count the
// rule engine's Evaluate returns.
func (c *Collector) RecordRulesApplied(n int) {
	c.rulesApplied += n
}

// Report builds the canonical JSON-serializable report for this
// collector's current state.
func (c *Collector) Report() Report {
	r := Report{
		IsValid: c.IsValid(),
		RunID:   c.runID,
		Summary: Summary{
			Errors:       c.errs,
			Warnings:     c.warns,
			Info:         c.infos,
			RulesApplied: c.rulesApplied,
		},
		Errors:   make([]Diagnostic, 0),
		Warnings: make([]Diagnostic, 0),
		Info:     make([]Diagnostic, 0),
	}
	for _, d := range c.diags {
		switch d.Severity {
		case SeverityError:
			r.Errors = append(r.Errors, d)
		case SeverityWarning:
			r.Warnings = append(r.Warnings, d)
		case SeverityInfo:
			r.Info = append(r.Info, d)
		}
	}
	return r
}
