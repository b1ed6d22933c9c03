package segments

import (
	"strings"

	"github.com/genformai/edi-cli/x12"
)

// CLP represents the Claim Payment Information segment, opening one claim
// loop within an 835.
type CLP struct {
	// ClaimID is CLP01: the patient control (claim submitter) number.
	ClaimID string

	// StatusCode is CLP02: claim status (1 = processed as primary,
	// 2 = processed as secondary, 4 = denied, ...).
	StatusCode string

	// TotalCharge is CLP03: total submitted charges, raw decimal string.
	TotalCharge string

	// TotalPaid is CLP04: total amount paid, raw decimal string.
	TotalPaid string

	// PatientResponsibility is CLP05: patient responsibility amount.
	PatientResponsibility string

	// FilingIndicator is CLP06: claim filing indicator code (MC, CI, ...).
	FilingIndicator string

	// PayerControlNumber is CLP07: the payer's internal claim control
	// number.
	PayerControlNumber string
}

// ParseCLP builds a CLP view from a tokenized segment.
func ParseCLP(seg x12.Segment) CLP {
	return CLP{
		ClaimID:               seg.Get(1),
		StatusCode:            seg.Get(2),
		TotalCharge:           seg.Get(3),
		TotalPaid:             seg.Get(4),
		PatientResponsibility: seg.Get(5),
		FilingIndicator:       seg.Get(6),
		PayerControlNumber:    seg.Get(7),
	}
}

// CASAdjustment is one reason/amount/quantity triplet from a CAS segment.
// Amount and Quantity are raw decimal strings; Quantity is empty when the
// triplet omitted it.
type CASAdjustment struct {
	ReasonCode string
	Amount     string
	Quantity   string
}

// CAS represents the Claims Adjustment segment. A single CAS carries one
// group code followed by up to six reason/amount/quantity triplets; every
// triplet present must be surfaced, not only the first.
type CAS struct {
	// GroupCode is CAS01: CO (contractual), PR (patient responsibility),
	// OA (other), PI (payer initiated), CR (correction/reversal).
	GroupCode string

	// Adjustments holds each triplet in element order.
	Adjustments []CASAdjustment
}

// ParseCAS builds a CAS view from a tokenized segment, walking the
// repeating triplets starting at element 2. Iteration stops at the first
// empty reason code, which is how the wire format marks the end of the
// used triplet slots.
func ParseCAS(seg x12.Segment) CAS {
	c := CAS{GroupCode: seg.Get(1)}
	for pos := 2; pos <= len(seg.Elements); pos += 3 {
		reason := seg.Get(pos)
		if reason == "" {
			break
		}
		c.Adjustments = append(c.Adjustments, CASAdjustment{
			ReasonCode: reason,
			Amount:     seg.Get(pos + 1),
			Quantity:   seg.Get(pos + 2),
		})
	}
	return c
}

// CompositeProcedure is the parsed form of a composite medical procedure
// element (SVC01, SV101): an optional qualifier, the procedure code, and
// any trailing modifiers.
type CompositeProcedure struct {
	Qualifier string
	Code      string
	Modifiers []string
}

// isProcedureQualifier reports whether q is a composite qualifier recognized at
// the head of SVC01/SV101 ("HC:99213:25" vs a bare "99213").
func isProcedureQualifier(q string) bool {
	switch strings.ToUpper(q) {
	case "HC", "ER", "WK", "IV", "CJ", "ZZ":
		return true
	default:
		return false
	}
}

// ParseCompositeProcedure splits a composite element like
// "HC:99213:25:59" into its qualifier, code, and ordered modifiers. A
// bare code with no qualifier ("99213") parses with an empty Qualifier.
func ParseCompositeProcedure(e x12.Element) CompositeProcedure {
	parts := []string(e)
	if len(parts) == 0 {
		return CompositeProcedure{}
	}
	start := 0
	cp := CompositeProcedure{}
	if len(parts) > 1 && isProcedureQualifier(parts[0]) {
		cp.Qualifier = parts[0]
		start = 1
	}
	if start >= len(parts) {
		return cp
	}
	cp.Code = parts[start]
	if start+1 < len(parts) {
		cp.Modifiers = parts[start+1:]
	}
	return cp
}

// SVC represents the Service Payment Information segment, opening one
// service line within a claim loop of an 835.
type SVC struct {
	// Procedure is SVC01: the composite procedure code with modifiers.
	Procedure CompositeProcedure

	// Charge is SVC02: the submitted service charge, raw decimal string.
	Charge string

	// Paid is SVC03: the amount paid for the service.
	Paid string

	// RevenueCode is SVC04: the NUBC revenue code, when present.
	RevenueCode string

	// Units is SVC05: units of service paid, raw decimal string.
	Units string
}

// ParseSVC builds an SVC view from a tokenized segment.
func ParseSVC(seg x12.Segment) SVC {
	return SVC{
		Procedure:   ParseCompositeProcedure(seg.Element1(1)),
		Charge:      seg.Get(2),
		Paid:        seg.Get(3),
		RevenueCode: seg.Get(4),
		Units:       seg.Get(5),
	}
}

// PLBEntry is one reason/amount pair from a PLB segment. The reason code
// comes from the first component of the composite adjustment identifier.
type PLBEntry struct {
	ReasonCode string
	Amount     string
}

// PLB represents the Provider Level Balance segment: adjustments applied
// to the provider's payment as a whole rather than to any one claim.
type PLB struct {
	// ProviderID is PLB01: the provider identifier the adjustments apply
	// to.
	ProviderID string

	// FiscalPeriodDate is PLB02: the end of the provider's fiscal year
	// (CCYYMMDD).
	FiscalPeriodDate string

	// Entries holds each adjustment reason/amount pair from elements 3-14.
	Entries []PLBEntry
}

// ParsePLB builds a PLB view from a tokenized segment, walking the
// repeating reason/amount pairs starting at element 3.
func ParsePLB(seg x12.Segment) PLB {
	p := PLB{
		ProviderID:       seg.Get(1),
		FiscalPeriodDate: seg.Get(2),
	}
	for pos := 3; pos+1 <= len(seg.Elements); pos += 2 {
		reason := seg.Element1(pos).Component(1)
		amount := seg.Get(pos + 1)
		if reason == "" && amount == "" {
			continue
		}
		p.Entries = append(p.Entries, PLBEntry{ReasonCode: reason, Amount: amount})
	}
	return p
}
