package rules

import "testing"

func TestBuiltinSet(t *testing.T) {
	tests := []struct {
		name      string
		set       string
		wantEmpty bool
	}{
		{"basic", "basic", false},
		{"business", "business", false},
		{"hipaa", "hipaa", false},
		{"hipaa-advanced", "hipaa-advanced", false},
		{"enhanced-business", "enhanced-business", false},
		{"comprehensive", "comprehensive", false},
		{"all alias", "all", false},
		{"unknown", "nonsense", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuiltinSet(tt.set)
			if tt.wantEmpty && got != nil {
				t.Errorf("BuiltinSet(%q) = %+v, want nil", tt.set, got)
			}
			if !tt.wantEmpty && len(got) == 0 {
				t.Errorf("BuiltinSet(%q) returned no rules", tt.set)
			}
		})
	}
}

func TestHIPAAAdvanced_ExtendsHIPAA(t *testing.T) {
	base := HIPAA()
	advanced := HIPAAAdvanced()
	if len(advanced) <= len(base) {
		t.Fatalf("HIPAAAdvanced() has %d rules, want more than HIPAA()'s %d", len(advanced), len(base))
	}
	for i, r := range base {
		if advanced[i].ID != r.ID {
			t.Errorf("HIPAAAdvanced()[%d].ID = %q, want %q (base set prefix preserved)", i, advanced[i].ID, r.ID)
		}
	}
}

func TestComprehensive_DedupesByID(t *testing.T) {
	rs := Comprehensive()

	seen := make(map[string]bool)
	for _, r := range rs {
		if seen[r.ID] {
			t.Errorf("rule id %q appears more than once in Comprehensive()", r.ID)
		}
		seen[r.ID] = true
	}

	// Business and EnhancedBusiness share BUSINESS_PAYMENT_METHOD and
	// BUSINESS_NONNEGATIVE_PAYMENT; Comprehensive must still contain
	// exactly one entry for each.
	for _, id := range []string{"BUSINESS_PAYMENT_METHOD", "BUSINESS_NONNEGATIVE_PAYMENT", "HIPAA_NPI_FORMAT"} {
		if !seen[id] {
			t.Errorf("Comprehensive() is missing expected rule %q", id)
		}
	}
}

func TestComprehensive_AllRulesEnabled(t *testing.T) {
	for _, r := range Comprehensive() {
		if !r.Enabled {
			t.Errorf("built-in rule %q is disabled by default", r.ID)
		}
	}
}
