package segments

import (
	"reflect"
	"testing"

	"github.com/genformai/edi-cli/x12"
)

func segment(t *testing.T, raw string) x12.Segment {
	t.Helper()
	segs, malformed := x12.Tokenize([]byte(raw+"~"), x12.DefaultDelimiters())
	if len(malformed) != 0 {
		t.Fatalf("malformed: %+v", malformed)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	return segs[0]
}

func TestParseCLP(t *testing.T) {
	clp := ParseCLP(segment(t, "CLP*CLM001*1*1200.00*1000.00*200.00*MC*PAYERCLAIM"))

	want := CLP{
		ClaimID:               "CLM001",
		StatusCode:            "1",
		TotalCharge:           "1200.00",
		TotalPaid:             "1000.00",
		PatientResponsibility: "200.00",
		FilingIndicator:       "MC",
		PayerControlNumber:    "PAYERCLAIM",
	}
	if clp != want {
		t.Errorf("got %+v, want %+v", clp, want)
	}
}

func TestParseCAS(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CAS
	}{
		{
			name: "single triplet",
			raw:  "CAS*PR*1*25.00",
			want: CAS{
				GroupCode:   "PR",
				Adjustments: []CASAdjustment{{ReasonCode: "1", Amount: "25.00"}},
			},
		},
		{
			name: "three triplets",
			raw:  "CAS*CO*45*50.00**96*20.00*1*253*5.00",
			want: CAS{
				GroupCode: "CO",
				Adjustments: []CASAdjustment{
					{ReasonCode: "45", Amount: "50.00"},
					{ReasonCode: "96", Amount: "20.00", Quantity: "1"},
					{ReasonCode: "253", Amount: "5.00"},
				},
			},
		},
		{
			name: "quantity in final element",
			raw:  "CAS*CO*45*50.00*1",
			want: CAS{
				GroupCode:   "CO",
				Adjustments: []CASAdjustment{{ReasonCode: "45", Amount: "50.00", Quantity: "1"}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCAS(segment(t, tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCompositeProcedure(t *testing.T) {
	tests := []struct {
		name  string
		input x12.Element
		want  CompositeProcedure
	}{
		{
			name:  "qualifier code modifier",
			input: x12.Element{"HC", "99213", "25"},
			want:  CompositeProcedure{Qualifier: "HC", Code: "99213", Modifiers: []string{"25"}},
		},
		{
			name:  "qualifier only code",
			input: x12.Element{"HC", "99213"},
			want:  CompositeProcedure{Qualifier: "HC", Code: "99213"},
		},
		{
			name:  "bare code",
			input: x12.Element{"99213"},
			want:  CompositeProcedure{Code: "99213"},
		},
		{
			name:  "two modifiers",
			input: x12.Element{"HC", "99213", "25", "59"},
			want:  CompositeProcedure{Qualifier: "HC", Code: "99213", Modifiers: []string{"25", "59"}},
		},
		{
			name:  "unknown leading token treated as code",
			input: x12.Element{"99213", "25"},
			want:  CompositeProcedure{Code: "99213", Modifiers: []string{"25"}},
		},
		{
			name:  "empty element",
			input: x12.Element{},
			want:  CompositeProcedure{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCompositeProcedure(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSVC(t *testing.T) {
	svc := ParseSVC(segment(t, "SVC*HC:99213:25*100.00*75.00**1"))

	if svc.Procedure.Code != "99213" || !reflect.DeepEqual(svc.Procedure.Modifiers, []string{"25"}) {
		t.Errorf("procedure = %+v", svc.Procedure)
	}
	if svc.Charge != "100.00" || svc.Paid != "75.00" {
		t.Errorf("charge/paid = %q/%q", svc.Charge, svc.Paid)
	}
	if svc.RevenueCode != "" {
		t.Errorf("revenue_code = %q, want empty", svc.RevenueCode)
	}
	if svc.Units != "1" {
		t.Errorf("units = %q", svc.Units)
	}
}

func TestParsePLB(t *testing.T) {
	plb := ParsePLB(segment(t, "PLB*1234567893*20241231*CV:REF1*15.00*WO:REF2*-5.00"))

	if plb.ProviderID != "1234567893" || plb.FiscalPeriodDate != "20241231" {
		t.Errorf("header = %+v", plb)
	}
	want := []PLBEntry{
		{ReasonCode: "CV", Amount: "15.00"},
		{ReasonCode: "WO", Amount: "-5.00"},
	}
	if !reflect.DeepEqual(plb.Entries, want) {
		t.Errorf("entries = %+v, want %+v", plb.Entries, want)
	}
}

func TestParsePLB_SingleEntry(t *testing.T) {
	plb := ParsePLB(segment(t, "PLB*1234567893*20240101*CV*-5.00"))
	if len(plb.Entries) != 1 {
		t.Fatalf("entries = %+v", plb.Entries)
	}
	if plb.Entries[0].ReasonCode != "CV" || plb.Entries[0].Amount != "-5.00" {
		t.Errorf("entry = %+v", plb.Entries[0])
	}
}
