package transaction

import (
	"fmt"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/x12"
)

// Projector builds a semantic tree from a transaction set's segments.
// Registering a Projector for a new code is the dispatcher's extension
// point: callers supply one at construction time rather than the engine
// dynamically loading code.
type Projector func(ts *x12.TransactionSet, diag *diagnostic.Collector)

// Registry maps a transaction-set code to the Projector responsible for
// it. A Registry returned by NewRegistry carries the built-in 835/837P/
// 270/271/276/277 projectors.
type Registry struct {
	projectors map[string]Projector
}

// NewRegistry returns a Registry pre-populated with the built-in
// projectors for 835, 837, 270, 271, 276, and 277.
func NewRegistry() *Registry {
	r := &Registry{projectors: make(map[string]Projector)}
	r.Register("835", Project835)
	r.Register("837", Project837P)
	r.Register("270", Project270)
	r.Register("271", Project271)
	r.Register("276", Project276)
	r.Register("277", Project277)
	return r
}

// Register adds or replaces the projector for a transaction-set code.
func (r *Registry) Register(code string, p Projector) {
	r.projectors[code] = p
}

// Dispatch selects a projector by ts.Code and runs it,
// setting ts.Data to the resulting semantic tree. An unrecognized code
// leaves ts.Data nil (the raw segments remain the record) and records an
// info-level UNKNOWN_TRANSACTION diagnostic.
func (r *Registry) Dispatch(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	p, ok := r.projectors[ts.Code]
	if !ok {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityInfo,
			Code:     "UNKNOWN_TRANSACTION",
			Path:     fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber),
			Message:  fmt.Sprintf("no projector registered for transaction set code %q", ts.Code),
			Value:    ts.Code,
		})
		return
	}
	p(ts, diag)
}
