package search

import (
	"testing"

	"github.com/ehr/healthquery/internal/platform/nlp"
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

func testPatient(id, gender string, age int, conditions ...string) *Patient {
	return &Patient{
		ID:            id,
		Gender:        gender,
		Age:           age,
		ConditionKeys: conditions,
	}
}

func TestFilterPatients_ByGender(t *testing.T) {
	pool := []*Patient{
		testPatient("patient-00000001", fhirmodels.GenderMale, 40),
		testPatient("patient-00000002", fhirmodels.GenderFemale, 40),
		testPatient("patient-00000003", fhirmodels.GenderFemale, 55),
	}
	spec := nlp.NewFilterSpec()
	spec.Gender = fhirmodels.GenderFemale

	matches := FilterPatients(pool, spec)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	for _, p := range matches {
		if p.Gender != fhirmodels.GenderFemale {
			t.Errorf("match %s has gender %s", p.ID, p.Gender)
		}
	}
}

func TestFilterPatients_AgeBoundsInclusive(t *testing.T) {
	pool := []*Patient{
		testPatient("patient-00000001", fhirmodels.GenderMale, 39),
		testPatient("patient-00000002", fhirmodels.GenderMale, 40),
		testPatient("patient-00000003", fhirmodels.GenderMale, 60),
		testPatient("patient-00000004", fhirmodels.GenderMale, 61),
	}
	spec := nlp.NewFilterSpec()
	spec.AgeRange = nlp.AgeRange{Min: intp(40), Max: intp(60)}

	matches := FilterPatients(pool, spec)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (bounds inclusive)", len(matches))
	}
	if matches[0].ID != "patient-00000002" || matches[1].ID != "patient-00000003" {
		t.Errorf("unexpected matches: %s, %s", matches[0].ID, matches[1].ID)
	}
}

func TestFilterPatients_AnyRequestedCondition(t *testing.T) {
	pool := []*Patient{
		testPatient("patient-00000001", fhirmodels.GenderMale, 40, "diabetes"),
		testPatient("patient-00000002", fhirmodels.GenderMale, 40, "asthma"),
		testPatient("patient-00000003", fhirmodels.GenderMale, 40),
		testPatient("patient-00000004", fhirmodels.GenderMale, 40, "asthma", "cancer"),
	}
	spec := nlp.NewFilterSpec()
	spec.Conditions = []string{"diabetes", "cancer"}

	matches := FilterPatients(pool, spec)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ID != "patient-00000001" || matches[1].ID != "patient-00000004" {
		t.Errorf("unexpected matches: %s, %s", matches[0].ID, matches[1].ID)
	}
}

func TestFilterPatients_TruncatesAfterPredicates(t *testing.T) {
	var pool []*Patient
	for i := 0; i < 30; i++ {
		// Alternate genders; only 15 females, all matching.
		gender := fhirmodels.GenderFemale
		if i%2 == 0 {
			gender = fhirmodels.GenderMale
		}
		pool = append(pool, testPatient(shortID("patient"), gender, 40))
	}
	spec := nlp.NewFilterSpec()
	spec.Gender = fhirmodels.GenderFemale
	spec.Limit = 5

	matches := FilterPatients(pool, spec)
	if len(matches) != 5 {
		t.Fatalf("got %d matches, want limit 5", len(matches))
	}
	// Truncation keeps the first matches in pool order.
	if matches[0] != pool[1] || matches[4] != pool[9] {
		t.Error("expected the first five females in pool order")
	}
}

func TestFilterPatients_Idempotent(t *testing.T) {
	gen := NewGenerator(NewCatalog(), 20, 50, 42)
	spec := nlp.NewFilterSpec()
	spec.Conditions = []string{"diabetes"}
	spec.Gender = fhirmodels.GenderFemale

	pool := gen.GeneratePool(spec)
	once := FilterPatients(pool, spec)
	twice := FilterPatients(once, spec)

	if len(once) != len(twice) {
		t.Fatalf("filtering twice changed size: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("filtering twice changed element %d", i)
		}
	}
}

func TestFilterPatients_UnconstrainedKeepsPoolOrder(t *testing.T) {
	pool := []*Patient{
		testPatient("patient-00000001", fhirmodels.GenderMale, 20),
		testPatient("patient-00000002", fhirmodels.GenderFemale, 30),
		testPatient("patient-00000003", fhirmodels.GenderMale, 40),
	}

	matches := FilterPatients(pool, nlp.NewFilterSpec())
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want all 3", len(matches))
	}
	for i := range pool {
		if matches[i] != pool[i] {
			t.Errorf("order not preserved at %d", i)
		}
	}
}
