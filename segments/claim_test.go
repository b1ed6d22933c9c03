package segments

import (
	"reflect"
	"testing"
)

func TestParseCLM(t *testing.T) {
	clm := ParseCLM(segment(t, "CLM*CLAIM42*450.00***11:B:1"))

	if clm.ClaimID != "CLAIM42" || clm.TotalCharge != "450.00" {
		t.Errorf("clm = %+v", clm)
	}
	if clm.PlaceOfService != "11" || clm.FacilityCodeQualifier != "B" || clm.FrequencyCode != "1" {
		t.Errorf("facility composite = %+v", clm)
	}
}

func TestParseCLM_NoFacilityComposite(t *testing.T) {
	clm := ParseCLM(segment(t, "CLM*C1*100.00"))
	if clm.PlaceOfService != "" {
		t.Errorf("place_of_service = %q, want empty", clm.PlaceOfService)
	}
}

func TestParseSV1(t *testing.T) {
	sv1 := ParseSV1(segment(t, "SV1*HC:99213:25*300.00*UN*1***1:2"))

	if sv1.Procedure.Code != "99213" || !reflect.DeepEqual(sv1.Procedure.Modifiers, []string{"25"}) {
		t.Errorf("procedure = %+v", sv1.Procedure)
	}
	if sv1.Charge != "300.00" || sv1.UnitBasis != "UN" || sv1.Units != "1" {
		t.Errorf("sv1 = %+v", sv1)
	}
	if sv1.DiagnosisPointers != "1:2" {
		t.Errorf("diagnosis_pointers = %q", sv1.DiagnosisPointers)
	}
}

func TestParseSBR(t *testing.T) {
	sbr := ParseSBR(segment(t, "SBR*P*18*GRP12345"))
	if sbr.PayerResponsibility != "P" || sbr.RelationshipCode != "18" || sbr.GroupNumber != "GRP12345" {
		t.Errorf("sbr = %+v", sbr)
	}
}

func TestParseBHT(t *testing.T) {
	bht := ParseBHT(segment(t, "BHT*0019*00*REF123*20240215*1200*CH"))
	if bht.StructureCode != "0019" || bht.PurposeCode != "00" {
		t.Errorf("bht = %+v", bht)
	}
	if bht.ReferenceID != "REF123" || bht.Date != "20240215" {
		t.Errorf("bht = %+v", bht)
	}
}
