// Package transaction implements the transaction-set dispatcher and
// the per-transaction projectors: finite state machines that walk a
// transaction set's segments and build a typed semantic tree for 835,
// 837P, 270/271, and 276/277.
//
// Each projector never returns a Go error. A missing required segment,
// an out-of-sequence segment, or an unparsable numeric field is recorded
// as a diagnostic.Diagnostic on the collector passed in, and the walk
// continues with a zero-value default in the affected field. The only
// way a transaction set ends up without semantic data is an unrecognized
// transaction-set code, in which case Dispatch leaves TransactionSet.Data
// nil and the raw segments remain the document's only record of it.
package transaction
