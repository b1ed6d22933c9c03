package transaction

import (
	"fmt"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/segments"
	"github.com/genformai/edi-cli/x12"
)

// eligibilityParty builds an EligibilityParty from an NM1 view.
func eligibilityParty(nm1 segments.NM1) EligibilityParty {
	return EligibilityParty{Name: nm1.Name(), IdentificationCode: nm1.IDCode}
}

// Project270 walks a 270 Eligibility Inquiry transaction set. Shared
// skeleton: information_source (NM1*PR), information_receiver (NM1*1P),
// subscriber (NM1*IL), optional dependent (NM1*03); diverges from 271 at
// the EQ level, accumulating one inquiry per EQ segment.
func Project270(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	t := &T270{}
	var sawSubscriber bool
	for _, seg := range ts.Segments {
		switch seg.ID {
		case "NM1":
			nm1 := segments.ParseNM1(seg)
			switch nm1.EntityIdentifier {
			case "PR":
				t.InformationSource = eligibilityParty(nm1)
			case "1P":
				t.InformationReceiver = eligibilityParty(nm1)
			case "IL":
				sawSubscriber = true
				t.Subscriber = eligibilityParty(nm1)
			case "03":
				p := eligibilityParty(nm1)
				t.Dependent = &p
			}
		case "EQ":
			t.Inquiries = append(t.Inquiries, EligibilityInquiry{ServiceTypeCode: segments.ParseEQ(seg).ServiceTypeCode})
		}
	}
	requireSubscriber(sawSubscriber, ts.ControlNumber, diag)
	ts.Data = t
}

// requireSubscriber records the shared missing-subscriber diagnostic for
// the eligibility and claim-status projectors, all of which require an
// NM1*IL loop.
func requireSubscriber(saw bool, controlNumber string, diag *diagnostic.Collector) {
	if saw {
		return
	}
	diag.Add(diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     "MISSING_REQUIRED",
		Path:     fmt.Sprintf("transactions[control_number=%s].subscriber", controlNumber),
		Message:  "required subscriber loop (NM1*IL) is missing",
	})
}

// Project271 walks a 271 Eligibility Benefit Response transaction set.
func Project271(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	t := &T271{}
	pathPrefix := fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber)
	var sawSubscriber bool

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "NM1":
			nm1 := segments.ParseNM1(seg)
			switch nm1.EntityIdentifier {
			case "PR":
				t.InformationSource = eligibilityParty(nm1)
			case "1P":
				t.InformationReceiver = eligibilityParty(nm1)
			case "IL":
				sawSubscriber = true
				t.Subscriber = eligibilityParty(nm1)
			case "03":
				p := eligibilityParty(nm1)
				t.Dependent = &p
			}
		case "EB":
			eb := segments.ParseEB(seg)
			benefit := EligibilityBenefit{
				EligibilityCode: eb.EligibilityCode,
				ServiceTypeCode: eb.ServiceTypeCode,
				CoverageLevel:   eb.CoverageLevel,
			}
			if eb.Amount != "" {
				benefit.Amount = parseMoney(eb.Amount, fmt.Sprintf("%s.eligibility_benefits[%d].amount", pathPrefix, len(t.Benefits)), diag)
			}
			t.Benefits = append(t.Benefits, benefit)
		case "MSG":
			if msg := segments.ParseMSG(seg).Text; msg != "" {
				t.Messages = append(t.Messages, msg)
			}
		}
	}
	requireSubscriber(sawSubscriber, ts.ControlNumber, diag)
	ts.Data = t
}
