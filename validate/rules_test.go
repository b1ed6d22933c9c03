package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredRule(t *testing.T) {
	rule := At("claims[*].claim_id").Required().Build()

	tree := map[string]interface{}{
		"claims": []interface{}{
			map[string]interface{}{"claim_id": "A"},
			map[string]interface{}{"claim_id": ""},
			map[string]interface{}{},
		},
	}

	errs := rule.Validate(tree)
	require.Len(t, errs, 2)
	assert.Equal(t, "claims[1].claim_id", errs[0].Location)
	assert.Contains(t, errs[0].Message, "empty")
	assert.Equal(t, "claims[2].claim_id", errs[1].Location)
	assert.Contains(t, errs[1].Message, "absent")
}

func TestValueRule(t *testing.T) {
	rule := At("status").Value("A").Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"status": "A"}))

	errs := rule.Validate(map[string]interface{}{"status": "B"})
	require.Len(t, errs, 1)
	assert.Equal(t, "A", errs[0].Expected)
	assert.Equal(t, "B", errs[0].Actual)

	// absent passes; presence is required's job
	assert.Empty(t, rule.Validate(map[string]interface{}{}))
}

func TestPatternRule(t *testing.T) {
	rule := At("id").Pattern(`^\d{4}$`).Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"id": "1234"}))
	assert.Empty(t, rule.Validate(map[string]interface{}{"id": ""}))
	assert.Len(t, rule.Validate(map[string]interface{}{"id": "12"}), 1)
}

func TestCurrencyRule(t *testing.T) {
	rule := At("amount").Currency().Build()

	tests := []struct {
		value   interface{}
		wantErr bool
	}{
		{"1000.00", false},
		{"-5.00", false},
		{"42", false},
		{"1.5", false},
		{"1.505", true},
		{"twelve", true},
	}
	for _, tt := range tests {
		errs := rule.Validate(map[string]interface{}{"amount": tt.value})
		if tt.wantErr {
			assert.Len(t, errs, 1, "value %v", tt.value)
		} else {
			assert.Empty(t, errs, "value %v", tt.value)
		}
	}
}

func TestDateRule(t *testing.T) {
	rule := At("date").Date("20200101", "20251231").Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"date": "20240101"}))

	errs := rule.Validate(map[string]interface{}{"date": "NOTADATE"})
	require.Len(t, errs, 1)
	assert.Equal(t, "date_format", errs[0].Rule)

	errs = rule.Validate(map[string]interface{}{"date": "19991231"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "before")

	errs = rule.Validate(map[string]interface{}{"date": "20300101"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "after")
}

func TestValidNPI(t *testing.T) {
	tests := []struct {
		npi  string
		want bool
	}{
		{"1234567893", true},
		{"1679576722", true},
		{"1234567890", false},
		{"123456789", false},
		{"12345678901", false},
		{"123456789X", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidNPI(tt.npi), "npi %q", tt.npi)
	}
}

func TestNPIRule(t *testing.T) {
	rule := At("payee.npi").NPI().Build()

	tree := map[string]interface{}{"payee": map[string]interface{}{"npi": "1234567893"}}
	assert.Empty(t, rule.Validate(tree))

	tree["payee"].(map[string]interface{})["npi"] = "9999999999"
	errs := rule.Validate(tree)
	require.Len(t, errs, 1)
	assert.Equal(t, "npi_format", errs[0].Rule)
}

func TestTaxIDRule(t *testing.T) {
	rule := At("tax_id").TaxID().Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"tax_id": "123456789"}))
	assert.Empty(t, rule.Validate(map[string]interface{}{"tax_id": "12-3456789"}))
	assert.Len(t, rule.Validate(map[string]interface{}{"tax_id": "12345"}), 1)
	assert.Len(t, rule.Validate(map[string]interface{}{"tax_id": "12345678X"}), 1)
}

func TestRangeRule(t *testing.T) {
	rule := At("units").Range("1", "100").Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"units": "50"}))
	assert.Empty(t, rule.Validate(map[string]interface{}{"units": 50.0}))

	errs := rule.Validate(map[string]interface{}{"units": "0"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "below")

	errs = rule.Validate(map[string]interface{}{"units": "101"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "above")

	errs = rule.Validate(map[string]interface{}{"units": "many"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not numeric")
}

func TestOneOfRule(t *testing.T) {
	rule := At("method").OneOf("ACH", "CHK", "WIR", "NON").Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"method": "ACH"}))

	errs := rule.Validate(map[string]interface{}{"method": "BTC"})
	require.Len(t, errs, 1)
	assert.Equal(t, "enum", errs[0].Rule)
	assert.Contains(t, errs[0].Expected, "ACH")
}

func TestConditionalRequiredRule(t *testing.T) {
	rule := At("patient.name").ConditionalRequired("subscriber.relationship_code", "secondary").Build()

	// condition not met: target may be absent
	tree := map[string]interface{}{
		"subscriber": map[string]interface{}{"relationship_code": "primary"},
	}
	assert.Empty(t, rule.Validate(tree))

	// condition met and target absent: fails
	tree["subscriber"].(map[string]interface{})["relationship_code"] = "secondary"
	errs := rule.Validate(tree)
	require.Len(t, errs, 1)
	assert.Equal(t, "conditional_required", errs[0].Rule)
	assert.Contains(t, errs[0].Message, "secondary")

	// condition met and target present: passes
	tree["patient"] = map[string]interface{}{"name": "DOE JIMMY"}
	assert.Empty(t, rule.Validate(tree))
}

func TestCustomRule(t *testing.T) {
	rule := At("code").Custom(func(value string) error {
		if strings.HasPrefix(value, "X") {
			return errors.New("test codes are not allowed")
		}
		return nil
	}).Build()

	assert.Empty(t, rule.Validate(map[string]interface{}{"code": "A1"}))

	errs := rule.Validate(map[string]interface{}{"code": "X9"})
	require.Len(t, errs, 1)
	assert.Equal(t, "custom", errs[0].Rule)
	assert.Contains(t, errs[0].Message, "not allowed")
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{
		Location: "payee.npi",
		Rule:     "npi_format",
		Message:  "field value is not a valid NPI",
		Expected: "10 digits with a valid check digit",
		Actual:   "123",
	}
	msg := e.Error()
	assert.Contains(t, msg, "payee.npi")
	assert.Contains(t, msg, "[npi_format]")
	assert.Contains(t, msg, "expected 10 digits")
	assert.Contains(t, msg, "got 123")
}

func TestValidationWarning_String(t *testing.T) {
	w := ValidationWarning{Location: "a.b", Rule: "enum", Message: "odd value"}
	s := w.String()
	assert.Contains(t, s, "warning at a.b")
	assert.Contains(t, s, "[enum]")
	assert.Contains(t, s, "odd value")
}
