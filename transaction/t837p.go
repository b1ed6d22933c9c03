package transaction

import (
	"fmt"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/segments"
	"github.com/genformai/edi-cli/x12"
)

// Project837P walks an 837 Professional transaction set's segments and
// builds a T837P. States: Header -> Submitter(NM1*41) ->
// Receiver(NM1*40) -> BillingProvider(loop 2000A/2010AA) ->
// Subscriber(loop 2000B) -> Claim(CLM) -> Diagnoses(HI) ->
// ServiceLines(LX..SV1).
func Project837P(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	t := &T837P{}
	pathPrefix := fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber)

	var haveBillingProvider bool
	var sawCLM bool
	var posDerivedFromHI string

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "BHT":
			bht := segments.ParseBHT(seg)
			t.Claim.SubmissionDate = parseCCYYMMDD(bht.Date, pathPrefix+".claim.submission_date", diag)

		case "NM1":
			nm1 := segments.ParseNM1(seg)
			switch nm1.EntityIdentifier {
			case "41":
				t.Submitter = nm1Party(nm1)
			case "40":
				// receiver; not separately modeled beyond submitter/billing/subscriber
			case "85":
				t.BillingProvider = nm1Party(nm1)
				haveBillingProvider = true
			case "82":
				p := nm1Party(nm1)
				t.RenderingProvider = &p
			case "IL":
				t.Subscriber.Name = nm1.Name()
				if nm1.IDQualifier == "MI" {
					t.Subscriber.MemberID = nm1.IDCode
				}
			case "QC":
				if t.Patient == nil {
					t.Patient = &Subscriber837{}
				}
				t.Patient.Name = nm1.Name()
			}

		case "REF":
			if haveBillingProvider {
				refIdentifier(segments.ParseREF(seg), &t.BillingProvider)
			}

		case "SBR":
			sbr := segments.ParseSBR(seg)
			relationship := "secondary"
			if sbr.PayerResponsibility == "P" {
				relationship = "primary"
			}
			t.Subscriber.RelationshipCode = relationship

		case "CLM":
			sawCLM = true
			clm := segments.ParseCLM(seg)
			t.Claim.ClaimID = clm.ClaimID
			t.Claim.TotalCharge = parseMoney(clm.TotalCharge, pathPrefix+".claim.total_charge", diag)
			if clm.PlaceOfService != "" {
				if clm.PlaceOfService == "11" {
					t.Claim.PlaceOfServiceDerivation = "onsite"
				} else {
					t.Claim.PlaceOfServiceDerivation = "offsite"
				}
				t.Claim.PlaceOfService = clm.PlaceOfService
			}

		case "HI":
			for _, e := range seg.Elements {
				qualifier := e.Component(1)
				code := e.Component(2)
				if code == "" {
					continue
				}
				// BE-qualified entries carry health care information
				// codes, not diagnoses; code 24 is the place-of-service
				// cross-check value
				if qualifier == "BE" {
					if code == "24" {
						posDerivedFromHI = e.Component(3)
					}
					continue
				}
				t.Diagnoses = append(t.Diagnoses, code)
			}

		case "LX":
			// loop marker only; SV1 below carries the actual service data

		case "SV1":
			sv1 := segments.ParseSV1(seg)
			linePath := fmt.Sprintf("%s.service_lines[%d]", pathPrefix, len(t.ServiceLines))
			line := ServiceLine837{
				ProcedureCode:     sv1.Procedure.Code,
				Modifiers:         sv1.Procedure.Modifiers,
				Charge:            parseMoney(sv1.Charge, linePath+".charge", diag),
				Units:             parseQuantity(sv1.Units, linePath+".units", diag),
				DiagnosisPointers: parseDiagnosisPointers(sv1.DiagnosisPointers),
			}
			t.ServiceLines = append(t.ServiceLines, line)
		}
	}

	if !sawCLM {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "MISSING_REQUIRED",
			Path:     pathPrefix + ".claim",
			Message:  "required CLM segment is missing",
		})
	}

	if t.Claim.PlaceOfServiceDerivation == "" && posDerivedFromHI != "" {
		switch posDerivedFromHI {
		case "1080.0":
			t.Claim.PlaceOfServiceDerivation = "offsite"
		case "1540.0":
			t.Claim.PlaceOfServiceDerivation = "onsite"
		}
	}

	ts.Data = t
}
