// Package segments provides typed views over the raw x12.Segment records
// used by the healthcare transaction sets (835, 837P, 270/271, 276/277).
//
// Each view is a plain struct built explicitly from a segment's elements
// by a ParseXXX constructor; there is no reflection or struct-tag
// machinery involved. Views carry element values as raw strings; numeric
// and date interpretation (with its associated diagnostics) belongs to
// the transaction projectors that consume them.
//
// Example:
//
//	clp := segments.ParseCLP(seg)
//	fmt.Println(clp.ClaimID, clp.TotalCharge)
//
// Field positions follow the X12 standard where, for example, CLP01 is
// the first element after the segment identifier.
package segments
