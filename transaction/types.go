package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is a named entity referenced via an N1 loop (payer, payee,
// submitter, subscriber, provider, etc).
type Party struct {
	EntityIdentifierCode string `json:"entity_identifier_code"`
	Name                 string `json:"name"`
	IdentificationCode   string `json:"identification_code,omitempty"`
	NPI                  string `json:"npi,omitempty"`
	TaxID                string `json:"tax_id,omitempty"`
}

// Adjustment is one CAS-segment reason/amount/quantity triplet.
type Adjustment struct {
	GroupCode  string          `json:"group_code"`
	ReasonCode string          `json:"reason_code"`
	Amount     decimal.Decimal `json:"amount"`
	Quantity   decimal.Decimal `json:"quantity,omitempty"`
}

// T835 is the semantic tree for an 835 Health Care Claim Payment/Advice.
type T835 struct {
	Payer               Party               `json:"payer"`
	Payee               Party               `json:"payee"`
	FinancialInformation FinancialInfo835   `json:"financial_information"`
	Claims              []Claim835          `json:"claims"`
	PLBAdjustments      []PLBAdjustment     `json:"plb_adjustments"`
}

// FinancialInfo835 carries the BPR/TRN-level payment summary.
type FinancialInfo835 struct {
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	TraceNumber   string          `json:"trace_number"`
}

// Claim835 is one CLP loop.
type Claim835 struct {
	ClaimID                 string          `json:"claim_id"`
	StatusCode              string          `json:"status_code"`
	TotalCharge             decimal.Decimal `json:"total_charge"`
	TotalPaid               decimal.Decimal `json:"total_paid"`
	PatientResponsibility   decimal.Decimal `json:"patient_responsibility"`
	PayerClaimControlNumber string          `json:"payer_claim_control_number,omitempty"`
	Adjustments             []Adjustment    `json:"adjustments"`
	Services                []Service835    `json:"services"`
}

// Service835 is one SVC loop within a claim.
type Service835 struct {
	ProcedureCode string          `json:"procedure_code"`
	Modifiers     []string        `json:"modifiers,omitempty"`
	Charge        decimal.Decimal `json:"charge"`
	Paid          decimal.Decimal `json:"paid"`
	Units         decimal.Decimal `json:"units,omitempty"`
	Adjustments   []Adjustment    `json:"adjustments"`
}

// PLBAdjustment is one provider-level balance adjustment.
type PLBAdjustment struct {
	ProviderID string          `json:"provider_id"`
	ReasonCode string          `json:"reason_code"`
	Amount     decimal.Decimal `json:"amount"`
}

// T837P is the semantic tree for an 837 Professional claim.
type T837P struct {
	Submitter        Party         `json:"submitter"`
	BillingProvider  Party         `json:"billing_provider"`
	RenderingProvider *Party       `json:"rendering_provider,omitempty"`
	Subscriber       Subscriber837 `json:"subscriber"`
	Patient          *Subscriber837 `json:"patient,omitempty"`
	Claim            Claim837      `json:"claim"`
	Diagnoses        []string      `json:"diagnoses"`
	ServiceLines     []ServiceLine837 `json:"service_lines"`
}

// Subscriber837 is the insured (or dependent) party on an 837P claim.
type Subscriber837 struct {
	Name             string `json:"name"`
	MemberID         string `json:"member_id,omitempty"`
	RelationshipCode string `json:"relationship_code"`
}

// Claim837 is the CLM-level data for an 837P claim, including the
// derived place-of-service classification and the BHT submission date.
type Claim837 struct {
	ClaimID                    string          `json:"claim_id"`
	TotalCharge                decimal.Decimal `json:"total_charge"`
	PlaceOfService             string          `json:"place_of_service"`
	PlaceOfServiceDerivation   string          `json:"place_of_service_derivation"`
	SubmissionDate             time.Time       `json:"submission_date"`
}

// ServiceLine837 is one LX/SV1 loop.
type ServiceLine837 struct {
	ProcedureCode      string          `json:"procedure_code"`
	Modifiers          []string        `json:"modifiers,omitempty"`
	Units              decimal.Decimal `json:"units"`
	Charge             decimal.Decimal `json:"charge"`
	DiagnosisPointers  []int           `json:"diagnosis_pointers,omitempty"`
}

// EligibilityParty identifies the source, receiver, subscriber, or
// dependent in a 270/271 eligibility exchange.
type EligibilityParty struct {
	Name               string `json:"name"`
	IdentificationCode string `json:"identification_code,omitempty"`
}

// T270 is the semantic tree for a 270 Eligibility Inquiry.
type T270 struct {
	InformationSource   EligibilityParty    `json:"information_source"`
	InformationReceiver EligibilityParty    `json:"information_receiver"`
	Subscriber          EligibilityParty    `json:"subscriber"`
	Dependent           *EligibilityParty   `json:"dependent,omitempty"`
	Inquiries           []EligibilityInquiry `json:"eligibility_inquiries"`
}

// EligibilityInquiry is one EQ segment.
type EligibilityInquiry struct {
	ServiceTypeCode string `json:"service_type_code"`
}

// T271 is the semantic tree for a 271 Eligibility Benefit Response.
type T271 struct {
	InformationSource   EligibilityParty  `json:"information_source"`
	InformationReceiver EligibilityParty  `json:"information_receiver"`
	Subscriber          EligibilityParty  `json:"subscriber"`
	Dependent           *EligibilityParty `json:"dependent,omitempty"`
	Benefits            []EligibilityBenefit `json:"eligibility_benefits"`
	Messages            []string          `json:"messages,omitempty"`
}

// EligibilityBenefit is one EB segment.
type EligibilityBenefit struct {
	EligibilityCode string          `json:"eligibility_code"`
	ServiceTypeCode string          `json:"service_type_code,omitempty"`
	CoverageLevel   string          `json:"coverage_level,omitempty"`
	Amount          decimal.Decimal `json:"amount,omitempty"`
}

// ClaimStatusParty identifies the source, receiver, subscriber, or
// dependent in a 276/277 claim status exchange.
type ClaimStatusParty struct {
	Name               string `json:"name"`
	IdentificationCode string `json:"identification_code,omitempty"`
}

// T276 is the semantic tree for a 276 Claim Status Inquiry.
type T276 struct {
	InformationSource   ClaimStatusParty `json:"information_source"`
	InformationReceiver ClaimStatusParty `json:"information_receiver"`
	Subscriber          ClaimStatusParty `json:"subscriber"`
	Dependent           *ClaimStatusParty `json:"dependent,omitempty"`
	Inquiries           []ClaimInquiry   `json:"claim_inquiries"`
}

// ClaimInquiry is one TRN/REF/AMT inquiry grouping in a 276.
type ClaimInquiry struct {
	ClaimControlNumber string          `json:"claim_control_number"`
	TotalClaimCharge   decimal.Decimal `json:"total_claim_charge"`
}

// T277 is the semantic tree for a 277 Claim Status Response.
type T277 struct {
	InformationSource   ClaimStatusParty `json:"information_source"`
	InformationReceiver ClaimStatusParty `json:"information_receiver"`
	Subscriber          ClaimStatusParty `json:"subscriber"`
	Dependent           *ClaimStatusParty `json:"dependent,omitempty"`
	StatusInfo          []ClaimStatusInfo `json:"claim_status_info"`
	Messages            []string         `json:"messages,omitempty"`
}

// ClaimStatusInfo is one STC segment.
type ClaimStatusInfo struct {
	StatusCode   string `json:"status_code"`
	CategoryCode string `json:"category_code"`
}
