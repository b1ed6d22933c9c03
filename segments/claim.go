package segments

import (
	"strings"

	"github.com/genformai/edi-cli/x12"
)

// CLM represents the Claim Information segment of an 837 Professional
// claim.
type CLM struct {
	// ClaimID is CLM01: the patient control number assigned by the
	// submitter.
	ClaimID string

	// TotalCharge is CLM02: total submitted charges, raw decimal string.
	TotalCharge string

	// PlaceOfService is CLM05-1: the facility code value (e.g. "11" =
	// office).
	PlaceOfService string

	// FacilityCodeQualifier is CLM05-2.
	FacilityCodeQualifier string

	// FrequencyCode is CLM05-3: the claim frequency type code.
	FrequencyCode string
}

// ParseCLM builds a CLM view from a tokenized segment.
func ParseCLM(seg x12.Segment) CLM {
	return CLM{
		ClaimID:               seg.Get(1),
		TotalCharge:           seg.Get(2),
		PlaceOfService:        seg.GetComponent(5, 1),
		FacilityCodeQualifier: seg.GetComponent(5, 2),
		FrequencyCode:         seg.GetComponent(5, 3),
	}
}

// SV1 represents the Professional Service segment of an 837P service
// line.
type SV1 struct {
	// Procedure is SV101: the composite procedure code with modifiers.
	Procedure CompositeProcedure

	// Charge is SV102: the line charge amount, raw decimal string.
	Charge string

	// UnitBasis is SV103: unit of measurement code (UN = units, MJ =
	// minutes).
	UnitBasis string

	// Units is SV104: service unit count, raw decimal string.
	Units string

	// DiagnosisPointers is SV107: the raw colon-joined list of 1-based
	// pointers into the claim's HI diagnosis list.
	DiagnosisPointers string
}

// ParseSV1 builds an SV1 view from a tokenized segment.
func ParseSV1(seg x12.Segment) SV1 {
	return SV1{
		Procedure:         ParseCompositeProcedure(seg.Element1(1)),
		Charge:            seg.Get(2),
		UnitBasis:         seg.Get(3),
		Units:             seg.Get(4),
		DiagnosisPointers: strings.Join(seg.Element1(7), ":"),
	}
}

// SBR represents the Subscriber Information segment of an 837P.
type SBR struct {
	// PayerResponsibility is SBR01: P (primary), S (secondary), T
	// (tertiary).
	PayerResponsibility string

	// RelationshipCode is SBR02: 18 = self, 01 = spouse, ...
	RelationshipCode string

	// GroupNumber is SBR03: the insured's group or policy number.
	GroupNumber string
}

// ParseSBR builds an SBR view from a tokenized segment.
func ParseSBR(seg x12.Segment) SBR {
	return SBR{
		PayerResponsibility: seg.Get(1),
		RelationshipCode:    seg.Get(2),
		GroupNumber:         seg.Get(3),
	}
}

// BHT represents the Beginning of Hierarchical Transaction segment that
// opens an 837, 270/271, or 276/277.
type BHT struct {
	// StructureCode is BHT01: the hierarchical structure code.
	StructureCode string

	// PurposeCode is BHT02: 00 = original, 18 = reissue.
	PurposeCode string

	// ReferenceID is BHT03: the submitter's reference identification.
	ReferenceID string

	// Date is BHT04: the transaction creation date (CCYYMMDD).
	Date string
}

// ParseBHT builds a BHT view from a tokenized segment.
func ParseBHT(seg x12.Segment) BHT {
	return BHT{
		StructureCode: seg.Get(1),
		PurposeCode:   seg.Get(2),
		ReferenceID:   seg.Get(3),
		Date:          seg.Get(4),
	}
}
