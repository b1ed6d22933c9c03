// Package x12 provides core types for ASC X12 EDI document handling.
//
// The x12 package defines the fundamental data structures for representing
// an X12 document: Interchange, FunctionalGroup, TransactionSet, Segment,
// and Element. All hierarchy types are plain structs; Segment and Element
// are the atoms produced by the tokenizer in this package and consumed by
// the envelope assembler and, later, by the transaction projectors.
//
// # Envelope Structure
//
// X12 documents follow a fixed three-level envelope:
//   - Interchange (ISA/IEA) contains FunctionalGroups
//   - FunctionalGroup (GS/GE) contains TransactionSets
//   - TransactionSet (ST/SE) contains Segments
//
// # Delimiters
//
// Unlike fixed-delimiter formats, X12 declares its own delimiters in the
// ISA header:
//   - Byte 3 (immediately after "ISA"): element separator
//   - Byte 104: component (sub-element) separator
//   - Byte 105: segment terminator
//
// [DetectDelimiters] extracts these from the first 106 bytes of input.
//
// # Path Syntax
//
// Downstream packages (rules, diagnostic, validate) address values inside
// a parsed document using a dotted path with optional index and wildcard
// segments, e.g. "claims[0].services[*].charge". [ParsePath] turns the
// textual form into a [Path]; the transaction packages define their own
// field names over the semantic tree.
package x12
