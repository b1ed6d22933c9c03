package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/segments"
	"github.com/genformai/edi-cli/x12"
)

// imbalanceTolerance is the maximum acceptable absolute difference
// between BPR02 and the sum of claim payments plus PLB adjustments
// before the engine raises 835_FINANCIAL_IMBALANCE.
var imbalanceTolerance = decimal.NewFromFloat(0.01)

// PLBSignConvention selects how provider-level adjustment amounts enter
// the 835 balance equation. Trading partners disagree on the sign of
// PLB03 and its siblings, so the convention is chosen at construction
// time rather than hard-coded.
type PLBSignConvention int

const (
	// PLBAddsToClaims compares BPR02 against ΣCLP04 + ΣPLB: a negative
	// PLB reduces what the payer owes relative to the claims total. This
	// is the default.
	PLBAddsToClaims PLBSignConvention = iota
	// PLBReducesPayment compares BPR02 against ΣCLP04 - ΣPLB: a positive
	// PLB is an amount withheld from the payment.
	PLBReducesPayment
)

// Project835 walks an 835 transaction set's segments and builds a T835,
// using the default PLB sign convention. States, per the design:
// Header -> Financial(BPR) -> Trace(TRN) -> Refs/Dates -> Payer(N1=PR)
// -> Payee(N1=PE) -> Claims(CLP loop) -> Summary(PLB). The walk is a
// single pass keyed on segment id, tracking the currently open claim
// and service so repeating CAS/SVC segments attach to the right parent.
func Project835(ts *x12.TransactionSet, diag *diagnostic.Collector) {
	project835(ts, diag, PLBAddsToClaims)
}

// Project835With returns an 835 projector bound to an explicit PLB sign
// convention, for registration via the dispatcher's plugin surface
// (parse.WithProjector) when a trading-partner profile requires the
// opposite sign.
func Project835With(convention PLBSignConvention) Projector {
	return func(ts *x12.TransactionSet, diag *diagnostic.Collector) {
		project835(ts, diag, convention)
	}
}

func project835(ts *x12.TransactionSet, diag *diagnostic.Collector, convention PLBSignConvention) {
	t := &T835{}
	pathPrefix := fmt.Sprintf("transactions[control_number=%s]", ts.ControlNumber)

	var currentClaim *Claim835
	var currentService *Service835
	var sawBPR bool

	closeService := func() {
		if currentService != nil && currentClaim != nil {
			currentClaim.Services = append(currentClaim.Services, *currentService)
			currentService = nil
		}
	}
	closeClaim := func() {
		closeService()
		if currentClaim != nil {
			t.Claims = append(t.Claims, *currentClaim)
			currentClaim = nil
		}
	}

	for _, seg := range ts.Segments {
		switch seg.ID {
		case "BPR":
			sawBPR = true
			bpr := segments.ParseBPR(seg)
			t.FinancialInformation.TotalPaid = parseMoney(bpr.MonetaryAmount, pathPrefix+".financial_information.total_paid", diag)
			t.FinancialInformation.PaymentMethod = bpr.PaymentMethod
			t.FinancialInformation.PaymentDate = bpr.EffectiveDate

		case "TRN":
			t.FinancialInformation.TraceNumber = segments.ParseTRN(seg).ReferenceID

		case "N1":
			n1 := segments.ParseN1(seg)
			switch n1.EntityIdentifier {
			case "PR":
				t.Payer = n1Party(n1)
			case "PE":
				t.Payee = n1Party(n1)
			}

		case "REF":
			ref := segments.ParseREF(seg)
			switch {
			case currentService != nil:
				// service-level identifiers are not separately modeled; ignored
			case currentClaim != nil:
				if ref.Qualifier == "F8" {
					currentClaim.PayerClaimControlNumber = ref.Value
				}
			default:
				refIdentifier(ref, &t.Payee)
			}

		case "CLP":
			closeClaim()
			clp := segments.ParseCLP(seg)
			claimPath := fmt.Sprintf("%s.claims[%d]", pathPrefix, len(t.Claims))
			currentClaim = &Claim835{
				ClaimID:                 clp.ClaimID,
				StatusCode:              clp.StatusCode,
				TotalCharge:             parseMoney(clp.TotalCharge, claimPath+".total_charge", diag),
				TotalPaid:               parseMoney(clp.TotalPaid, claimPath+".total_paid", diag),
				PatientResponsibility:   parseMoney(clp.PatientResponsibility, claimPath+".patient_responsibility", diag),
				PayerClaimControlNumber: clp.PayerControlNumber,
			}

		case "CAS":
			cas := segments.ParseCAS(seg)
			path := fmt.Sprintf("%s.claims[%d]", pathPrefix, len(t.Claims))
			adjustments := casAdjustments(cas, path, diag)
			if currentService != nil {
				currentService.Adjustments = append(currentService.Adjustments, adjustments...)
			} else if currentClaim != nil {
				currentClaim.Adjustments = append(currentClaim.Adjustments, adjustments...)
			}

		case "SVC":
			closeService()
			if currentClaim == nil {
				diag.Add(diagnostic.Diagnostic{
					Severity: diagnostic.SeverityWarning,
					Code:     "835_UNEXPECTED_SVC",
					Path:     pathPrefix,
					Message:  "SVC segment encountered outside a CLP loop",
				})
				continue
			}
			svc := segments.ParseSVC(seg)
			svcPath := fmt.Sprintf("%s.claims[%d].services[%d]", pathPrefix, len(t.Claims), len(currentClaim.Services))
			currentService = &Service835{
				ProcedureCode: svc.Procedure.Code,
				Modifiers:     svc.Procedure.Modifiers,
				Charge:        parseMoney(svc.Charge, svcPath+".charge", diag),
				Paid:          parseMoney(svc.Paid, svcPath+".paid", diag),
			}
			if svc.Units != "" {
				currentService.Units = parseQuantity(svc.Units, svcPath+".units", diag)
			}

		case "PLB":
			plb := segments.ParsePLB(seg)
			for _, entry := range plb.Entries {
				amount := parseMoney(entry.Amount, fmt.Sprintf("%s.plb_adjustments[%d].amount", pathPrefix, len(t.PLBAdjustments)), diag)
				t.PLBAdjustments = append(t.PLBAdjustments, PLBAdjustment{
					ProviderID: plb.ProviderID,
					ReasonCode: entry.ReasonCode,
					Amount:     amount,
				})
			}
		}
	}
	closeClaim()

	if !sawBPR {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "MISSING_REQUIRED",
			Path:     pathPrefix + ".financial_information",
			Message:  "required BPR segment is missing",
		})
	}

	checkFinancialBalance(t, pathPrefix, convention, diag)
	ts.Data = t
}

// checkFinancialBalance verifies |BPR02 - (ΣCLP04 ± ΣPLB)| <= 0.01,
// with the PLB term's sign set by the configured convention (see
// DESIGN.md for the default's rationale).
func checkFinancialBalance(t *T835, pathPrefix string, convention PLBSignConvention, diag *diagnostic.Collector) {
	claimsTotal := decimal.Zero
	for _, c := range t.Claims {
		claimsTotal = claimsTotal.Add(c.TotalPaid)
	}
	plbTotal := decimal.Zero
	for _, p := range t.PLBAdjustments {
		plbTotal = plbTotal.Add(p.Amount)
	}

	expected := claimsTotal.Add(plbTotal)
	if convention == PLBReducesPayment {
		expected = claimsTotal.Sub(plbTotal)
	}

	delta := t.FinancialInformation.TotalPaid.Sub(expected).Abs()
	if delta.GreaterThan(imbalanceTolerance) {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     "835_FINANCIAL_IMBALANCE",
			Path:     pathPrefix + ".financial_information",
			Message:  "BPR02 does not reconcile with the sum of claim payments and PLB adjustments",
			Context: map[string]string{
				"bpr_total":    t.FinancialInformation.TotalPaid.StringFixed(2),
				"claims_total": claimsTotal.StringFixed(2),
				"plb_total":    plbTotal.StringFixed(2),
				"delta":        delta.StringFixed(2),
				"tolerance":    imbalanceTolerance.StringFixed(2),
			},
		})
	}
}
