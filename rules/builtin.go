package rules

// A rule's conditions describe the VIOLATION: the rule fires, and its
// diagnostic is recorded, only when every condition evaluates true
// against the transaction tree. Built-in sets below are therefore
// phrased negatively ("claim id is empty", "NPI present but not 10
// digits"), with one diagnostic per wildcard match.

// Basic returns the structural sanity rule set: required-field presence
// and primitive numeric sanity on the fields every 835 carries.
func Basic() []Rule {
	return []Rule{
		{
			ID:               "BASIC_CLAIM_ID_REQUIRED",
			Description:      "835 claims must carry a claim identifier",
			SeverityName:     "error",
			Enabled:          true,
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "claims[*].claim_id", Operator: OpEq, Value: ""},
			},
			Message: "claim at {field} is missing a claim identifier",
		},
		{
			ID:               "BASIC_NONNEGATIVE_TOTAL_CHARGE",
			Description:      "claim total charge must not be negative",
			SeverityName:     "error",
			Enabled:          true,
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "claims[*].total_charge", Operator: OpLt, Value: 0},
			},
			Message: "claim at {field} has a negative total charge ({value})",
		},
	}
}

// Business returns the 835 financial-consistency rule set: payment
// method codes, non-negative monetary invariants, and the paid-versus-
// charge invariant, beyond the structural imbalance check the 835
// projector already performs. The remaining business invariant —
// per-claim service-line aggregation against the claim total — needs
// grouped sums no Condition can express; it is the
// validate.GroupedBalanceCheck carried by validate.Financial835Rules,
// and parse.WithRuleSet("business") installs both halves together.
func Business() []Rule {
	return []Rule{
		{
			ID:               "BUSINESS_PAYMENT_METHOD",
			Description:      "payment method must be a recognized code",
			SeverityName:     "warning",
			Enabled:          true,
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "financial_information.payment_method", Operator: OpNotIn, Value: []interface{}{"ACH", "CHK", "WIR", "NON"}},
			},
			Message: "payment method {value} is not one of ACH, CHK, WIR, NON",
		},
		{
			ID:               "BUSINESS_NONNEGATIVE_PAYMENT",
			Description:      "total paid must not be negative",
			SeverityName:     "error",
			Enabled:          true,
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "financial_information.total_paid", Operator: OpLt, Value: 0},
			},
			Message: "financial_information.total_paid is negative ({value})",
		},
		{
			ID:               "BUSINESS_PAID_EXCEEDS_CHARGE",
			Description:      "claim payment must not exceed the submitted charge",
			SeverityName:     "warning",
			Enabled:          true,
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "claims[*].total_paid", Operator: OpGt, ValueField: "claims[*].total_charge"},
			},
			Message: "claim at {field} was paid {value}, more than its submitted charge",
		},
	}
}

// HIPAA returns the baseline HIPAA-oriented rule set: NPI shape,
// CCYYMMDD date shape, and monetary precision. The NPI checksum (Luhn
// over the 80840 prefix), control-number uniqueness across the run, and
// the recognized-transaction-code screen cannot be expressed as
// declarative conditions; they live in the validate package
// (HIPAARules, ControlNumberUniqueness, RecognizedTransactionCodes) and
// parse.WithRuleSet("hipaa") installs both halves together.
func HIPAA() []Rule {
	return []Rule{
		{
			ID:           "HIPAA_NPI_FORMAT",
			Description:  "an NPI must be exactly 10 digits",
			SeverityName: "error",
			Enabled:      true,
			Category:     "hipaa",
			Conditions: []Condition{
				{Field: "payee.npi", Operator: OpExists},
				{Field: "payee.npi", Operator: OpNotMatches, Value: `^\d{10}$`},
			},
			Message: "payee NPI {value} is not 10 digits",
		},
		{
			ID:           "HIPAA_DATE_FORMAT",
			Description:  "dates must be in CCYYMMDD form",
			SeverityName: "error",
			Enabled:      true,
			Category:     "hipaa",
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "financial_information.payment_date", Operator: OpExists},
				{Field: "financial_information.payment_date", Operator: OpNe, Value: ""},
				{Field: "financial_information.payment_date", Operator: OpNotMatches, Value: `^\d{8}$`},
			},
			Message: "payment date {value} is not a CCYYMMDD date",
		},
		{
			ID:           "HIPAA_CURRENCY_PRECISION",
			Description:  "monetary amounts carry at most two decimal places",
			SeverityName: "error",
			Enabled:      true,
			Category:     "hipaa",
			TransactionTypes: []string{"835"},
			Conditions: []Condition{
				{Field: "claims[*].total_paid", Operator: OpNotMatches, Value: `^-?\d+(\.\d{1,2})?$`},
			},
			Message: "claim at {field} carries a malformed monetary amount ({value})",
		},
	}
}

// HIPAAAdvanced extends HIPAA with entity-identifier and tax-id format
// requirements.
func HIPAAAdvanced() []Rule {
	rs := HIPAA()
	return append(rs, Rule{
		ID:           "HIPAA_TAX_ID_FORMAT",
		Description:  "a tax id, when present, must be 9 digits",
		SeverityName: "warning",
		Enabled:      true,
		Category:     "hipaa",
		Conditions: []Condition{
			{Field: "payee.tax_id", Operator: OpExists},
			{Field: "payee.tax_id", Operator: OpNotMatches, Value: `^\d{9}$`},
		},
		Message: "payee tax id {value} is not 9 digits",
	})
}

// EnhancedBusiness composes Business with one field-level format rule
// expressed as a regex Condition (ENHANCED_CURRENCY_FORMAT on
// financial_information.total_paid). Range, checksum and cross-field
// balance validators live in the validate package.
func EnhancedBusiness() []Rule {
	rs := Business()
	return append(rs, Rule{
		ID:           "ENHANCED_CURRENCY_FORMAT",
		Description:  "monetary fields must carry at most two decimal places",
		SeverityName: "warning",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "financial_information.total_paid", Operator: OpExists},
			{Field: "financial_information.total_paid", Operator: OpNotMatches, Value: `^-?\d+(\.\d{1,2})?$`},
		},
		Message: "financial_information.total_paid {value} is not a valid currency amount",
	})
}

// Comprehensive returns the union of every built-in set, deduplicated by
// rule id (a later set's definition of a shared id wins).
func Comprehensive() []Rule {
	byID := make(map[string]Rule)
	order := make([]string, 0)
	for _, set := range [][]Rule{Basic(), Business(), HIPAAAdvanced(), EnhancedBusiness()} {
		for _, r := range set {
			if _, exists := byID[r.ID]; !exists {
				order = append(order, r.ID)
			}
			byID[r.ID] = r
		}
	}
	out := make([]Rule, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// BuiltinSet resolves a rule-set name to its rules. Recognized names are
// "basic", "business", "hipaa", "hipaa-advanced", "enhanced-business",
// and "comprehensive"/"all". An unrecognized name returns nil.
func BuiltinSet(name string) []Rule {
	switch name {
	case "basic":
		return Basic()
	case "business":
		return Business()
	case "hipaa":
		return HIPAA()
	case "hipaa-advanced":
		return HIPAAAdvanced()
	case "enhanced-business":
		return EnhancedBusiness()
	case "comprehensive", "all":
		return Comprehensive()
	default:
		return nil
	}
}
