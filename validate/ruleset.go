package validate

import (
	"github.com/genformai/edi-cli/x12"
)

// RuleSet represents a collection of validation rules that can be
// combined and reused.
type RuleSet interface {
	// Rules returns all rules in this set.
	Rules() []Rule
	// Add adds rules to this set and returns the set for chaining.
	Add(rules ...Rule) RuleSet
	// Merge combines this set with another set and returns a new set
	// containing all rules.
	Merge(other RuleSet) RuleSet
}

// ruleSet is the concrete implementation of RuleSet.
type ruleSet struct {
	rules []Rule
}

// NewRuleSet creates a new RuleSet with the given rules.
func NewRuleSet(rules ...Rule) RuleSet {
	rs := &ruleSet{
		rules: make([]Rule, 0, len(rules)),
	}
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Rules returns all rules in this set.
func (rs *ruleSet) Rules() []Rule {
	if rs.rules == nil {
		return []Rule{}
	}
	// Return a copy to prevent external modification
	result := make([]Rule, len(rs.rules))
	copy(result, rs.rules)
	return result
}

// Add adds rules to this set and returns the set for chaining.
func (rs *ruleSet) Add(rules ...Rule) RuleSet {
	rs.rules = append(rs.rules, rules...)
	return rs
}

// Merge combines this set with another set and returns a new set
// containing all rules.
func (rs *ruleSet) Merge(other RuleSet) RuleSet {
	if other == nil {
		return NewRuleSet(rs.rules...)
	}
	combined := make([]Rule, 0, len(rs.rules)+len(other.Rules()))
	combined = append(combined, rs.rules...)
	combined = append(combined, other.Rules()...)
	return NewRuleSet(combined...)
}

// Financial835Rules returns a RuleSet containing the 835 payment
// consistency validators:
//   - the BPR total balances against claim payments plus provider-level
//     adjustments (as a warning, matching the projector's own imbalance
//     diagnostic severity)
//   - paid never exceeds charge on a claim
//   - each claim's payment balances against the sum of its own
//     service-line payments, when service detail is present
//   - monetary fields carry valid currency shapes
//   - the payment method is a recognized code
func Financial835Rules() RuleSet {
	return NewRuleSet(
		Warn(BalanceCheck(
			"financial_information.total_paid",
			[]string{"claims[*].total_paid", "plb_adjustments[*].amount"},
			"0.01",
		)),
		Warn(NotExceedCheck("claims[*].total_paid", "claims[*].total_charge")),
		Warn(GroupedBalanceCheck("claims[*]", "total_paid", "services[*].paid", "0.01")),
		At("financial_information.total_paid").Currency().Range("0", "").
			WithDescription("Payment total must be a non-negative monetary amount").Build(),
		At("claims[*].total_charge").Currency().Range("0", "").
			WithDescription("Claim charges must be non-negative monetary amounts").Build(),
		At("financial_information.payment_method").OneOf("ACH", "CHK", "WIR", "NON").AsWarning().
			WithDescription("Payment method must be a recognized code").Build(),
	)
}

// HIPAARules returns a RuleSet containing identifier, date, and
// precision validators:
//   - payee NPI format and check digit
//   - payee tax id format
//   - payment date is a plausible CCYYMMDD value
//   - monetary amounts carry at most two decimal places
func HIPAARules() RuleSet {
	return NewRuleSet(
		At("payee.npi").NPI().WithDescription("Payee NPI must be valid").Build(),
		At("payee.tax_id").TaxID().WithDescription("Payee tax id must be 9 digits").Build(),
		At("financial_information.payment_date").Date("19900101", "20991231").
			WithDescription("Payment date must be a CCYYMMDD date").Build(),
		At("financial_information.total_paid").Currency().
			WithDescription("Monetary amounts carry at most two decimal places").Build(),
		At("claims[*].total_paid").Currency().Build(),
		At("claims[*].total_charge").Currency().Build(),
	)
}

// Claim837Rules returns a RuleSet containing 837P claim validators:
//   - claim id present
//   - claim total charge is a monetary amount
//   - the claim total balances against its service lines
func Claim837Rules() RuleSet {
	return NewRuleSet(
		At("claim.claim_id").Required().WithDescription("Claim identifier is required").Build(),
		At("claim.total_charge").Currency().Range("0", "").
			WithDescription("Claim charge must be a non-negative monetary amount").Build(),
		Warn(BalanceCheck("claim.total_charge", []string{"service_lines[*].charge"}, "0.01")),
	)
}

// StandardRules returns a RuleSet containing the minimum validators that
// apply to every supported transaction tree.
func StandardRules() RuleSet {
	return NewRuleSet(
		At("financial_information.total_paid").Currency().Build(),
	)
}

// DocumentRule validates a whole assembled document rather than one
// transaction tree; used for cross-transaction invariants the per-tree
// rules cannot see.
type DocumentRule func(doc x12.Document) []ValidationError

// ControlNumberUniqueness returns a DocumentRule verifying that no two
// transaction sets within the document share an ST control number.
func ControlNumberUniqueness() DocumentRule {
	return func(doc x12.Document) []ValidationError {
		var errs []ValidationError
		seen := make(map[string]bool)
		for i := range doc.Interchanges {
			for j, group := range doc.Interchanges[i].FunctionalGroups {
				for k, ts := range group.TransactionSets {
					if ts.ControlNumber == "" {
						continue
					}
					if seen[ts.ControlNumber] {
						errs = append(errs, ValidationError{
							Location: pathTo(i, j, k),
							Rule:     "control_number_uniqueness",
							Message:  "transaction control number reused within the document",
							Actual:   ts.ControlNumber,
						})
						continue
					}
					seen[ts.ControlNumber] = true
				}
			}
		}
		return errs
	}
}

func pathTo(i, j, k int) string {
	return x12.Path{
		{Name: "interchanges", Index: i},
		{Name: "functional_groups", Index: j},
		{Name: "transactions", Index: k},
	}.String()
}

// hipaaTransactionCodes is the default set of transaction-set
// identifiers recognized under the HIPAA mandate.
var hipaaTransactionCodes = []string{
	"270", "271", "276", "277", "278",
	"820", "834", "835", "837", "997", "999",
}

// RecognizedTransactionCodes returns a DocumentRule verifying that
// every transaction set's ST01 code belongs to the allowed set. With no
// arguments the HIPAA-mandated set is used.
func RecognizedTransactionCodes(codes ...string) DocumentRule {
	if len(codes) == 0 {
		codes = hipaaTransactionCodes
	}
	allowed := make(map[string]bool, len(codes))
	for _, c := range codes {
		allowed[c] = true
	}
	return func(doc x12.Document) []ValidationError {
		var errs []ValidationError
		for i := range doc.Interchanges {
			for j, group := range doc.Interchanges[i].FunctionalGroups {
				for k, ts := range group.TransactionSets {
					if allowed[ts.Code] {
						continue
					}
					errs = append(errs, ValidationError{
						Location: pathTo(i, j, k),
						Rule:     "recognized_transaction",
						Message:  "transaction set code is not a recognized transaction",
						Actual:   ts.Code,
					})
				}
			}
		}
		return errs
	}
}
