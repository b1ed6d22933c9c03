// Package diagnostic provides the append-only diagnostic collector (C7 in
// the pipeline) shared by the envelope assembler, transaction projectors,
// and rule engine.
//
// Every non-fatal problem found while turning bytes into a semantic tree —
// a mismatched control number, a missing required segment, a failed rule
// condition — becomes a [Diagnostic] appended to a [Collector] rather than
// a returned Go error. Only one error kind is ever returned from the
// parser: an unrecoverable failure to interpret the input as X12 at all
// (see the x12 and parse packages). Everything else is recorded here so a
// caller always gets back whatever structure could be built, alongside a
// full account of what went wrong.
package diagnostic
