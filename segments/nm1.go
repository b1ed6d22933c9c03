package segments

import (
	"github.com/genformai/edi-cli/x12"
)

// N1 represents the Party Identification segment used in 835 headers to
// name the payer (N1*PR) and payee (N1*PE).
type N1 struct {
	// EntityIdentifier is N101: PR (payer), PE (payee), ...
	EntityIdentifier string

	// Name is N102: the party's name.
	Name string

	// IDQualifier is N103: the code qualifying N104 (XX = NPI, FI = tax
	// id, ...).
	IDQualifier string

	// IDCode is N104: the identification code itself.
	IDCode string
}

// ParseN1 builds an N1 view from a tokenized segment.
func ParseN1(seg x12.Segment) N1 {
	return N1{
		EntityIdentifier: seg.Get(1),
		Name:             seg.Get(2),
		IDQualifier:      seg.Get(3),
		IDCode:           seg.Get(4),
	}
}

// NM1 represents the Individual or Organizational Name segment used
// throughout the 837P, 270/271, and 276/277 loops.
type NM1 struct {
	// EntityIdentifier is NM101: 41 (submitter), 40 (receiver), 85
	// (billing provider), 82 (rendering provider), IL (insured), QC
	// (patient), PR (payer), 1P (provider), 03 (dependent), ...
	EntityIdentifier string

	// EntityType is NM102: 1 = person, 2 = non-person entity.
	EntityType string

	// LastName is NM103: last name or organization name.
	LastName string

	// FirstName is NM104.
	FirstName string

	// MiddleName is NM105.
	MiddleName string

	// IDQualifier is NM108: XX = NPI, FI/EI = tax id, MI = member id, ...
	IDQualifier string

	// IDCode is NM109: the identification code itself.
	IDCode string
}

// ParseNM1 builds an NM1 view from a tokenized segment.
func ParseNM1(seg x12.Segment) NM1 {
	return NM1{
		EntityIdentifier: seg.Get(1),
		EntityType:       seg.Get(2),
		LastName:         seg.Get(3),
		FirstName:        seg.Get(4),
		MiddleName:       seg.Get(5),
		IDQualifier:      seg.Get(8),
		IDCode:           seg.Get(9),
	}
}

// Name returns the display name for the entity: organization name for a
// non-person entity, "Last First" for a person.
func (n NM1) Name() string {
	if n.FirstName == "" {
		return n.LastName
	}
	return n.LastName + " " + n.FirstName
}

// REF represents the Reference Information segment.
type REF struct {
	// Qualifier is REF01: TJ (federal tax id), 1D/HPI (provider
	// identifiers), EI (employer id), F8 (original reference number), ...
	Qualifier string

	// Value is REF02: the reference value.
	Value string
}

// ParseREF builds a REF view from a tokenized segment.
func ParseREF(seg x12.Segment) REF {
	return REF{
		Qualifier: seg.Get(1),
		Value:     seg.Get(2),
	}
}
