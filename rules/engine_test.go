package rules

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/genformai/edi-cli/diagnostic"
)

type financialInfo struct {
	TotalPaid float64 `json:"total_paid"`
}

type fixture835 struct {
	FinancialInformation financialInfo `json:"financial_information"`
	Services             []struct {
		Charge float64 `json:"charge"`
		Paid   float64 `json:"paid"`
	} `json:"services"`
}

func TestEngine_Evaluate_CustomRuleFires(t *testing.T) {
	rule := Rule{
		ID:           "HIGH_VALUE",
		SeverityName: "info",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "financial_information.total_paid", Operator: OpGt, Value: 500.0},
		},
		Message: "High-value payment {value}",
	}
	engine := NewEngine(NewRegistry(rule))
	data := fixture835{FinancialInformation: financialInfo{TotalPaid: 1000.00}}
	diag := diagnostic.NewCollector()

	applied := engine.Evaluate("835", data, "transactions[control_number=0001]", diag)
	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}

	all := diag.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(all), all)
	}
	d := all[0]
	if d.Severity != diagnostic.SeverityInfo {
		t.Errorf("Severity = %v, want info", d.Severity)
	}
	if d.RuleID != "HIGH_VALUE" {
		t.Errorf("RuleID = %q", d.RuleID)
	}
	if d.Value != "1000" {
		t.Errorf("Value = %q, want 1000", d.Value)
	}
	if d.Message != "High-value payment 1000" {
		t.Errorf("Message = %q", d.Message)
	}
}

// TestEngine_Evaluate_DecimalFieldsMarshalAsStrings reproduces the
// worked example against a real decimal.Decimal monetary field (as
// transaction.T835 actually carries it, rather than the float64 used by
// the other tests in this file): decimal.Decimal marshals to a quoted
// JSON string to preserve fixed-point precision, so the value the rule
// engine sees after its JSON round-trip is the string "1000.00", not a
// float64.
func TestEngine_Evaluate_DecimalFieldsMarshalAsStrings(t *testing.T) {
	type financial struct {
		TotalPaid decimal.Decimal `json:"total_paid"`
	}
	type doc struct {
		FinancialInformation financial `json:"financial_information"`
	}

	rule := Rule{
		ID:           "HIGH_VALUE",
		SeverityName: "info",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "financial_information.total_paid", Operator: OpGt, Value: 500},
		},
		Message: "High-value payment {value}",
	}
	engine := NewEngine(NewRegistry(rule))
	totalPaid, err := decimal.NewFromString("1000.00")
	if err != nil {
		t.Fatalf("NewFromString: %v", err)
	}
	data := doc{FinancialInformation: financial{TotalPaid: totalPaid}}
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[control_number=0001]", diag)

	all := diag.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(all), all)
	}
	if all[0].Value != "1000.00" {
		t.Errorf("Value = %q, want 1000.00", all[0].Value)
	}
}

func TestEngine_Evaluate_RuleDoesNotFireWhenConditionFalse(t *testing.T) {
	rule := Rule{
		ID:           "HIGH_VALUE",
		SeverityName: "info",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "financial_information.total_paid", Operator: OpGt, Value: 500.0},
		},
	}
	engine := NewEngine(NewRegistry(rule))
	data := fixture835{FinancialInformation: financialInfo{TotalPaid: 10.00}}
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[control_number=0001]", diag)
	if len(diag.All()) != 0 {
		t.Errorf("expected no diagnostics, got %+v", diag.All())
	}
}

func TestEngine_Evaluate_DisabledRuleSkipped(t *testing.T) {
	rule := Rule{ID: "R1", Enabled: false, Conditions: []Condition{{Field: "financial_information.total_paid", Operator: OpExists}}}
	engine := NewEngine(NewRegistry(rule))
	diag := diagnostic.NewCollector()

	applied := engine.Evaluate("835", fixture835{}, "transactions[0]", diag)
	if applied != 0 {
		t.Errorf("applied = %d, want 0 for a disabled rule", applied)
	}
}

func TestEngine_Evaluate_ScopedToTransactionType(t *testing.T) {
	rule := Rule{
		ID:               "R1",
		Enabled:          true,
		TransactionTypes: []string{"837"},
		Conditions:       []Condition{{Field: "financial_information.total_paid", Operator: OpExists}},
	}
	engine := NewEngine(NewRegistry(rule))
	diag := diagnostic.NewCollector()

	applied := engine.Evaluate("835", fixture835{}, "transactions[0]", diag)
	if applied != 0 {
		t.Errorf("applied = %d, want 0 for a rule scoped to a different transaction type", applied)
	}
}

func TestEngine_Evaluate_WildcardFiresOncePerMatch(t *testing.T) {
	rule := Rule{
		ID:      "SERVICE_PAID_LT_CHARGE",
		Enabled: true,
		Conditions: []Condition{
			{Field: "services[*].paid", Operator: OpLt, Value: 0.0},
		},
	}
	engine := NewEngine(NewRegistry(rule))
	data := fixture835{}
	data.Services = append(data.Services,
		struct {
			Charge float64 `json:"charge"`
			Paid   float64 `json:"paid"`
		}{Charge: 100, Paid: -5},
		struct {
			Charge float64 `json:"charge"`
			Paid   float64 `json:"paid"`
		}{Charge: 50, Paid: 50},
	)
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[0]", diag)
	all := diag.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(all), all)
	}
	if all[0].FieldPath != "services[0].paid" {
		t.Errorf("FieldPath = %q, want services[0].paid", all[0].FieldPath)
	}
	if all[0].Path != "transactions[0].services[0].paid" {
		t.Errorf("Path = %q, want transactions[0].services[0].paid", all[0].Path)
	}
}

func TestRegistry_Rules_PreservesOrder(t *testing.T) {
	r1 := Rule{ID: "A"}
	r2 := Rule{ID: "B"}
	reg := NewRegistry(r1, r2)
	got := reg.Rules()
	if len(got) != 2 || got[0].ID != "A" || got[1].ID != "B" {
		t.Errorf("Rules() = %+v, want [A B] in order", got)
	}
}

func TestEngine_Evaluate_ValueFieldComparesPerIndex(t *testing.T) {
	rule := Rule{
		ID:           "PAID_EXCEEDS_CHARGE",
		SeverityName: "warning",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "claims[*].total_paid", Operator: OpGt, ValueField: "claims[*].total_charge"},
		},
		Message: "claim at {field} overpaid ({value})",
	}
	engine := NewEngine(NewRegistry(rule))
	data := map[string]interface{}{
		"claims": []interface{}{
			map[string]interface{}{"total_paid": 150.0, "total_charge": 100.0},
			map[string]interface{}{"total_paid": 80.0, "total_charge": 100.0},
		},
	}
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[0]", diag)

	all := diag.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1 (first claim only): %+v", len(all), all)
	}
	if all[0].FieldPath != "claims[0].total_paid" {
		t.Errorf("FieldPath = %q, want claims[0].total_paid", all[0].FieldPath)
	}
	if all[0].Value != "150" {
		t.Errorf("Value = %q, want 150", all[0].Value)
	}
}

func TestEngine_Evaluate_ValueFieldBroadcastsSingleMatch(t *testing.T) {
	rule := Rule{
		ID:           "SERVICE_OVER_CLAIM",
		SeverityName: "warning",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "services[*].paid", Operator: OpGt, ValueField: "total_paid"},
		},
	}
	engine := NewEngine(NewRegistry(rule))
	data := map[string]interface{}{
		"total_paid": 100.0,
		"services": []interface{}{
			map[string]interface{}{"paid": 60.0},
			map[string]interface{}{"paid": 120.0},
		},
	}
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[0]", diag)

	all := diag.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(all), all)
	}
	if all[0].FieldPath != "services[1].paid" {
		t.Errorf("FieldPath = %q, want services[1].paid", all[0].FieldPath)
	}
}

func TestEngine_Evaluate_ValueFieldAbsentIsFalse(t *testing.T) {
	rule := Rule{
		ID:           "PAID_EXCEEDS_CHARGE",
		SeverityName: "warning",
		Enabled:      true,
		Conditions: []Condition{
			{Field: "claims[*].total_paid", Operator: OpGt, ValueField: "claims[*].total_charge"},
		},
	}
	engine := NewEngine(NewRegistry(rule))
	data := map[string]interface{}{
		"claims": []interface{}{
			map[string]interface{}{"total_paid": 150.0},
		},
	}
	diag := diagnostic.NewCollector()

	engine.Evaluate("835", data, "transactions[0]", diag)
	if len(diag.All()) != 0 {
		t.Errorf("a missing value_field target should not fire, got %+v", diag.All())
	}
}
