package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/genformai/edi-cli/diagnostic"
	"github.com/genformai/edi-cli/segments"
)

// parseMoney parses a fixed-point monetary element. An invalid numeric
// yields zero plus a FIELD_NUMERIC_FORMAT diagnostic rather than aborting the
// walk, consistent with the non-fatal error taxonomy.
func parseMoney(raw, path string, diag *diagnostic.Collector) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     "FIELD_NUMERIC_FORMAT",
			Path:     path,
			Value:    raw,
			Message:  "value is not a valid decimal number",
		})
		return decimal.Zero
	}
	return d
}

// parseQuantity is parseMoney's counterpart for non-currency decimal
// fields (units, quantities) where a zero default carries no financial
// consequence but the same diagnostic is still worth raising.
func parseQuantity(raw, path string, diag *diagnostic.Collector) decimal.Decimal {
	return parseMoney(raw, path, diag)
}

// parseCCYYMMDD parses an X12 date element (format CCYYMMDD). An
// unparsable date yields the zero time.Time and a FIELD_DATE_FORMAT
// diagnostic.
func parseCCYYMMDD(raw, path string, diag *diagnostic.Collector) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		diag.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityWarning,
			Code:     "FIELD_DATE_FORMAT",
			Path:     path,
			Value:    raw,
			Message:  "value is not a valid CCYYMMDD date",
		})
		return time.Time{}
	}
	return t
}

// parseDiagnosisPointers parses a colon-joined list of 1-based diagnosis
// indices (SV1-07), e.g. "1:2:3".
func parseDiagnosisPointers(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ":")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// casAdjustments converts a parsed CAS view into Adjustment records,
// parsing each triplet's amount and quantity. All triplets are captured,
// not only the first, per the design invariant.
func casAdjustments(cas segments.CAS, pathPrefix string, diag *diagnostic.Collector) []Adjustment {
	out := make([]Adjustment, 0, len(cas.Adjustments))
	for _, a := range cas.Adjustments {
		adj := Adjustment{
			GroupCode:  cas.GroupCode,
			ReasonCode: a.ReasonCode,
			Amount:     parseMoney(a.Amount, fmt.Sprintf("%s.amount", pathPrefix), diag),
		}
		if a.Quantity != "" {
			adj.Quantity = parseQuantity(a.Quantity, fmt.Sprintf("%s.quantity", pathPrefix), diag)
		}
		out = append(out, adj)
	}
	return out
}

// n1Party builds a Party from an N1 view, routing the identification
// code to NPI, tax id, or the generic slot by its qualifier.
func n1Party(n1 segments.N1) Party {
	p := Party{EntityIdentifierCode: n1.EntityIdentifier, Name: n1.Name}
	switch n1.IDQualifier {
	case "":
	case "XX":
		p.NPI = n1.IDCode
	case "FI", "EI":
		p.TaxID = n1.IDCode
	default:
		p.IdentificationCode = n1.IDCode
	}
	return p
}

// nm1Party builds a Party from an NM1 view, with the same qualifier
// routing as n1Party but NM1's individual-name shape.
func nm1Party(nm1 segments.NM1) Party {
	p := Party{EntityIdentifierCode: nm1.EntityIdentifier, Name: nm1.Name()}
	switch nm1.IDQualifier {
	case "":
	case "XX":
		p.NPI = nm1.IDCode
	case "FI", "EI":
		p.TaxID = nm1.IDCode
	default:
		p.IdentificationCode = nm1.IDCode
	}
	return p
}

// refIdentifier records Tax ID vs. NPI from a REF view per the design's
// open-question resolution: REF*TJ is Tax ID, REF*1D (and similarly
// shaped qualifiers) are treated as NPI candidates.
func refIdentifier(ref segments.REF, p *Party) {
	switch ref.Qualifier {
	case "TJ", "EI":
		p.TaxID = ref.Value
	case "1D", "HPI":
		p.NPI = ref.Value
	}
}
