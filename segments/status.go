package segments

import (
	"github.com/genformai/edi-cli/x12"
)

// EQ represents the Eligibility or Benefit Inquiry segment of a 270.
type EQ struct {
	// ServiceTypeCode is EQ01: the service type being inquired about
	// (30 = health benefit plan coverage, 1 = medical care, ...).
	ServiceTypeCode string
}

// ParseEQ builds an EQ view from a tokenized segment.
func ParseEQ(seg x12.Segment) EQ {
	return EQ{ServiceTypeCode: seg.Get(1)}
}

// EB represents the Eligibility or Benefit Information segment of a 271.
type EB struct {
	// EligibilityCode is EB01: 1 = active coverage, 6 = inactive, B =
	// co-payment, C = deductible, ...
	EligibilityCode string

	// CoverageLevel is EB02: IND (individual), FAM (family), ...
	CoverageLevel string

	// ServiceTypeCode is EB03.
	ServiceTypeCode string

	// Amount is EB07: the benefit amount, raw decimal string.
	Amount string
}

// ParseEB builds an EB view from a tokenized segment.
func ParseEB(seg x12.Segment) EB {
	return EB{
		EligibilityCode: seg.Get(1),
		CoverageLevel:   seg.Get(2),
		ServiceTypeCode: seg.Get(3),
		Amount:          seg.Get(7),
	}
}

// STC represents the Status Information segment of a 277. STC01 is a
// composite of category code, status code, and entity code.
type STC struct {
	// CategoryCode is STC01-1: the claim status category (A1, A2, F0, ...).
	CategoryCode string

	// StatusCode is STC01-2: the claim status code within the category.
	StatusCode string

	// EntityCode is STC01-3, when present.
	EntityCode string
}

// ParseSTC builds an STC view from a tokenized segment.
func ParseSTC(seg x12.Segment) STC {
	composite := seg.Element1(1)
	return STC{
		CategoryCode: composite.Component(1),
		StatusCode:   composite.Component(2),
		EntityCode:   composite.Component(3),
	}
}

// AMT represents the Monetary Amount segment.
type AMT struct {
	// Qualifier is AMT01: T3 (total submitted charges), B6 (allowed), ...
	Qualifier string

	// Amount is AMT02, raw decimal string.
	Amount string
}

// ParseAMT builds an AMT view from a tokenized segment.
func ParseAMT(seg x12.Segment) AMT {
	return AMT{
		Qualifier: seg.Get(1),
		Amount:    seg.Get(2),
	}
}

// MSG represents the free-form Message Text segment used by 271 and 277
// responses.
type MSG struct {
	// Text is MSG01.
	Text string
}

// ParseMSG builds an MSG view from a tokenized segment.
func ParseMSG(seg x12.Segment) MSG {
	return MSG{Text: seg.Get(1)}
}
