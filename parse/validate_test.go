package parse

import (
	"testing"

	"github.com/genformai/edi-cli/rules"
	"github.com/genformai/edi-cli/validate"
)

func TestParseAndValidate_CustomRuleFires(t *testing.T) {
	t.Parallel()

	// the worked scenario: a YAML-shaped HIGH_VALUE rule against the
	// minimal 835
	rs, err := rules.Decode([]byte(`
rules:
  - id: HIGH_VALUE
    conditions:
      - field: financial_information.total_paid
        operator: gt
        value: 500
    severity: info
    message: "High-value payment {value}"
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	p := New(WithRules(rs...))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.IsValid() {
		t.Fatalf("expected valid, got %+v", diag.All())
	}

	var found bool
	for _, d := range diag.All() {
		if d.RuleID != "HIGH_VALUE" {
			continue
		}
		found = true
		if d.Value != "1000.00" {
			t.Errorf("value = %q, want 1000.00", d.Value)
		}
		if d.Message != "High-value payment 1000.00" {
			t.Errorf("message = %q", d.Message)
		}
		if d.FieldPath != "financial_information.total_paid" {
			t.Errorf("field_path = %q", d.FieldPath)
		}
	}
	if !found {
		t.Fatalf("HIGH_VALUE did not fire: %+v", diag.All())
	}

	report := diag.Report()
	if report.Summary.RulesApplied != 1 {
		t.Errorf("rules_applied = %d, want 1", report.Summary.RulesApplied)
	}
}

func TestParseAndValidate_BuiltinSetPasses(t *testing.T) {
	t.Parallel()

	p := New(WithRules(rules.BuiltinSet("comprehensive")...))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.IsValid() {
		t.Fatalf("expected the minimal 835 to pass the comprehensive set, got %+v", diag.All())
	}
}

func TestParseAndValidate_RuleScopedToOtherTransactionSkipped(t *testing.T) {
	t.Parallel()

	rule := rules.Rule{
		ID:               "ONLY_837",
		SeverityName:     "error",
		Enabled:          true,
		TransactionTypes: []string{"837"},
		Conditions: []rules.Condition{
			{Field: "claim.claim_id", Operator: rules.OpNotExists},
		},
	}

	p := New(WithRules(rule))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.IsValid() {
		t.Fatalf("an 837-scoped rule fired against an 835: %+v", diag.All())
	}
	if diag.Report().Summary.RulesApplied != 0 {
		t.Errorf("rules_applied = %d, want 0", diag.Report().Summary.RulesApplied)
	}
}

func TestParseAndValidate_FailFastStopsRuleEvaluation(t *testing.T) {
	t.Parallel()

	failing := rules.Rule{
		ID:           "ALWAYS_FAILS",
		SeverityName: "error",
		Enabled:      true,
		Conditions: []rules.Condition{
			{Field: "financial_information.total_paid", Operator: rules.OpExists},
		},
	}
	second := rules.Rule{
		ID:           "NEVER_REACHED",
		SeverityName: "error",
		Enabled:      true,
		Conditions: []rules.Condition{
			{Field: "financial_information.payment_method", Operator: rules.OpExists},
		},
	}

	// two 835 transactions in one group; fail-fast must stop after the
	// first transaction produces a rule error
	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~BPR*I*10.00*C*ACH~CLP*C1*1*10.00*10.00~SE*4*0001~" +
		"ST*835*0002~BPR*I*20.00*C*ACH~CLP*C2*1*20.00*20.00~SE*4*0002~" +
		"GE*2*1~IEA*1*000000001~"

	p := New(
		WithRules(failing, second),
		WithErrorPolicy(ErrorPolicy{FailFast: true}),
	)
	doc, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// structure is intact despite the early stop
	if len(doc.Interchanges[0].FunctionalGroups[0].TransactionSets) != 2 {
		t.Fatal("expected both transactions parsed")
	}

	var fired int
	for _, d := range diag.All() {
		if d.RuleID != "" {
			fired++
		}
	}
	// both rules fire on the first transaction (evaluation is per
	// transaction), but the second transaction is never evaluated
	if fired != 2 {
		t.Errorf("rule diagnostics = %d, want 2 (first transaction only): %+v", fired, diag.All())
	}
}

func TestParseAndValidate_MaxErrorsStopsRuleEvaluation(t *testing.T) {
	t.Parallel()

	failing := rules.Rule{
		ID:           "ALWAYS_FAILS",
		SeverityName: "error",
		Enabled:      true,
		Conditions: []rules.Condition{
			{Field: "financial_information.total_paid", Operator: rules.OpExists},
		},
	}

	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~BPR*I*10.00*C*ACH~CLP*C1*1*10.00*10.00~SE*4*0001~" +
		"ST*835*0002~BPR*I*20.00*C*ACH~CLP*C2*1*20.00*20.00~SE*4*0002~" +
		"ST*835*0003~BPR*I*30.00*C*ACH~CLP*C3*1*30.00*30.00~SE*4*0003~" +
		"GE*3*1~IEA*1*000000001~"

	p := New(
		WithRules(failing),
		WithErrorPolicy(ErrorPolicy{MaxErrors: 2}),
	)
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fired int
	for _, d := range diag.All() {
		if d.RuleID == "ALWAYS_FAILS" {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("rule diagnostics = %d, want 2 (stopped at max errors)", fired)
	}
}

func TestParseAndValidate_WithChecks(t *testing.T) {
	t.Parallel()

	p := New(WithChecks(validate.HIPAARules().Rules()...))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the minimal 835's payee NPI 1234567893 is checksum-valid
	if !diag.IsValid() {
		t.Fatalf("expected valid, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithChecks_InvalidNPI(t *testing.T) {
	t.Parallel()

	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~" +
		"BPR*I*0.00*C*NON~" +
		"N1*PE*PAYEE*XX*1234567890~" +
		"SE*4*0001~" +
		"GE*1*1~IEA*1*000000001~"

	p := New(WithChecks(validate.At("payee.npi").NPI().Build()))
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, d := range diag.All() {
		if d.Code == "FIELD_NPI_FORMAT" {
			found = true
			if d.Value != "1234567890" {
				t.Errorf("value = %q", d.Value)
			}
			if d.FieldPath != "payee.npi" {
				t.Errorf("field_path = %q", d.FieldPath)
			}
		}
	}
	if !found {
		t.Fatalf("expected FIELD_NPI_FORMAT, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithDocumentChecks(t *testing.T) {
	t.Parallel()

	// two transactions reusing control number 0001
	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~BPR*I*10.00*C*ACH~CLP*C1*1*10.00*10.00~SE*4*0001~" +
		"ST*835*0001~BPR*I*20.00*C*ACH~CLP*C2*1*20.00*20.00~SE*4*0001~" +
		"GE*2*1~IEA*1*000000001~"

	p := New(WithDocumentChecks(validate.ControlNumberUniqueness()))
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, d := range diag.All() {
		if d.Code == "FIELD_CONTROL_NUMBER_UNIQUENESS" {
			found = true
			if d.Value != "0001" {
				t.Errorf("value = %q", d.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected FIELD_CONTROL_NUMBER_UNIQUENESS, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithRuleSetHIPAA(t *testing.T) {
	t.Parallel()

	p := New(WithRuleSet("hipaa"))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.IsValid() {
		t.Fatalf("expected the minimal 835 to pass the hipaa profile, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithRuleSetHIPAA_UnrecognizedCode(t *testing.T) {
	t.Parallel()

	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*TX*SENDER*RECEIVER*20240101*1200*1*X*005010~" +
		"ST*864*0001~" +
		"MIT*REF1~" +
		"SE*3*0001~" +
		"GE*1*1~IEA*1*000000001~"

	p := New(WithRuleSet("hipaa"))
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, d := range diag.All() {
		if d.Code == "FIELD_RECOGNIZED_TRANSACTION" {
			found = true
			if d.Value != "864" {
				t.Errorf("value = %q, want 864", d.Value)
			}
		}
	}
	if !found {
		t.Fatalf("expected FIELD_RECOGNIZED_TRANSACTION, got %+v", diag.All())
	}
	if diag.IsValid() {
		t.Error("an unrecognized transaction code should fail the hipaa profile")
	}
}

func TestParseAndValidate_WithRuleSetBusiness_PaidExceedsCharge(t *testing.T) {
	t.Parallel()

	// claim paid above its submitted charge; BPR consistent with the
	// claim so only the paid-vs-charge findings fire
	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~" +
		"BPR*I*1500.00*C*ACH~" +
		"CLP*C1*1*1200.00*1500.00~" +
		"SE*4*0001~" +
		"GE*1*1~IEA*1*000000001~"

	p := New(WithRuleSet("business"))
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawRule, sawCheck bool
	for _, d := range diag.All() {
		switch d.Code {
		case "BUSINESS_PAID_EXCEEDS_CHARGE":
			sawRule = true
			if d.FieldPath != "claims[0].total_paid" {
				t.Errorf("field_path = %q", d.FieldPath)
			}
		case "FIELD_NOT_EXCEED":
			sawCheck = true
		}
	}
	if !sawRule {
		t.Errorf("expected BUSINESS_PAID_EXCEEDS_CHARGE, got %+v", diag.All())
	}
	if !sawCheck {
		t.Errorf("expected FIELD_NOT_EXCEED, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithRuleSetBusiness_ServiceAggregation(t *testing.T) {
	t.Parallel()

	// service lines sum to 150.00 against a claim paid of 175.00
	data := "ISA*00*          *00*          *ZZ*SENDER         *ZZ*RECEIVER       *240101*1200*^*00501*000000001*0*P*:~" +
		"GS*HP*SENDER*RECEIVER*20240101*1200*1*X*005010X221A1~" +
		"ST*835*0001~" +
		"BPR*I*175.00*C*ACH~" +
		"CLP*C1*1*250.00*175.00*75.00~" +
		"SVC*HC:99213*100.00*75.00**1~" +
		"SVC*HC:99214*150.00*75.00**1~" +
		"SE*6*0001~" +
		"GE*1*1~IEA*1*000000001~"

	p := New(WithRuleSet("business"))
	_, diag, err := p.ParseAndValidate([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, d := range diag.All() {
		if d.Code == "FIELD_BALANCE_CHECK" && d.FieldPath == "claims[0].total_paid" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a FIELD_BALANCE_CHECK on claims[0].total_paid, got %+v", diag.All())
	}
}

func TestParseAndValidate_WithRuleSetComprehensivePasses(t *testing.T) {
	t.Parallel()

	p := New(WithRuleSet("comprehensive"))
	_, diag, err := p.ParseAndValidate([]byte(minimal835))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !diag.IsValid() {
		t.Fatalf("expected the minimal 835 to pass the comprehensive profile, got %+v", diag.All())
	}
}
