// Package validate provides field-level and cross-field validators for
// projected X12 transaction trees.
//
// Where the rules package evaluates declarative, YAML-loadable condition
// records, this package provides the compiled validator vocabulary those
// records cannot express: checksummed identifier formats (NPI), bounded
// date windows, balance equations over wildcard sums, and custom
// validation functions. Both evaluate against the same JSON-shaped tree
// a projected transaction marshals to, and both address fields with the
// same dotted path grammar.
//
// # Basic Usage
//
// Create a validator with rules and validate a projected transaction:
//
//	v := validate.NewValidator(
//	    validate.At("claims[*].claim_id").Required().Build(),
//	    validate.At("payee.npi").NPI().Build(),
//	    validate.At("financial_information.total_paid").Currency().Build(),
//	)
//
//	result := v.Validate(t835)
//	if !result.Valid() {
//	    for _, err := range result.Errors() {
//	        log.Printf("validation error: %v", err)
//	    }
//	}
//
// # Built-in Validation Rules
//
// The package provides several built-in rule types:
//
// Required - the field must be present and non-empty:
//
//	validate.At("claims[*].claim_id").Required().Build()
//
// Currency - the field must be a decimal with at most two fractional
// digits:
//
//	validate.At("financial_information.total_paid").Currency().Build()
//
// Date - the field must be a CCYYMMDD date, optionally within bounds:
//
//	validate.At("financial_information.payment_date").Date("19900101", "20991231").Build()
//
// NPI - the field must be a 10-digit National Provider Identifier with a
// valid check digit (Luhn over the "80840" prefix):
//
//	validate.At("payee.npi").NPI().Build()
//
// TaxID / Range / OneOf / Pattern / Value / Custom follow the same
// shape. ConditionalRequired expresses "field A is required when field B
// has value X":
//
//	validate.At("patient.name").ConditionalRequired("subscriber.relationship_code", "secondary").Build()
//
// # Cross-field Rules
//
// BalanceCheck verifies a left-hand field equals the sum of one or more
// right-hand fields (wildcard paths sum over every match) within a
// tolerance:
//
//	validate.BalanceCheck(
//	    "financial_information.total_paid",
//	    []string{"claims[*].total_paid", "plb_adjustments[*].amount"},
//	    "0.01",
//	)
//
// NotExceedCheck bounds a field by another field pairwise across
// wildcard matches, GroupedBalanceCheck holds a field to a sum inside
// each element of a repeating group (each claim's payment against its
// own service lines), ConsistencyCheck verifies two fields carry the
// same value, and CalculationCheck verifies a target equals a +/-
// expression over other fields.
//
// # Rule Sets
//
// Named RuleSets bundle the common profiles: Financial835Rules,
// HIPAARules, Claim837Rules. Sets merge:
//
//	rules := validate.HIPAARules().Merge(validate.Financial835Rules())
//	v := validate.NewValidator(rules.Rules()...)
//
// Validators plug into the parser through parse.WithChecks, which runs
// them against every projected transaction and records failures as
// FIELD_* diagnostics.
package validate
