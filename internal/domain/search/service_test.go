package search

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ehr/healthquery/internal/platform/nlp"
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

func TestBuildResponse_EmptySpecStillReturnsBundle(t *testing.T) {
	svc := NewService(NewCatalog(), 20, 50)

	bundle, err := svc.BuildResponse(nlp.NewFilterSpec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bundle.ResourceType != "Bundle" || bundle.Type != "searchset" {
		t.Errorf("bundle shape: %s/%s", bundle.ResourceType, bundle.Type)
	}
	if !strings.HasPrefix(bundle.ID, "bundle-") {
		t.Errorf("bundle id = %s, want bundle- prefix", bundle.ID)
	}
	if bundle.Total == nil || *bundle.Total == 0 {
		t.Error("expected a non-empty pool-derived bundle for an unconstrained search")
	}
	if *bundle.Total > nlp.DefaultLimit {
		t.Errorf("total = %d, want at most default limit %d", *bundle.Total, nlp.DefaultLimit)
	}
}

func TestBuildResponse_TotalCountsPatientEntriesOnly(t *testing.T) {
	svc := NewService(NewCatalog(), 20, 50)
	spec := nlp.NewFilterSpec()
	spec.Conditions = []string{"diabetes"}

	bundle, err := svc.BuildResponse(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, conditions := decodeEntries(bundle)
	if bundle.Total == nil || *bundle.Total != len(patients) {
		t.Errorf("total = %v, want patient entry count %d", bundle.Total, len(patients))
	}
	if len(patients)+len(conditions) != len(bundle.Entry) {
		t.Errorf("entries = %d, want %d patients + %d conditions",
			len(bundle.Entry), len(patients), len(conditions))
	}
}

func TestBuildResponse_ReferentialClosure(t *testing.T) {
	svc := NewService(NewCatalog(), 20, 50)
	spec := nlp.NewFilterSpec()
	spec.Conditions = []string{"diabetes", "hypertension"}

	bundle, err := svc.BuildResponse(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, conditions := decodeEntries(bundle)
	ids := map[string]bool{}
	for _, p := range patients {
		ids[p.ID] = true
	}
	for _, c := range conditions {
		ref := strings.TrimPrefix(c.Subject.Reference, "Patient/")
		if !ids[ref] {
			t.Errorf("condition references %q, not among bundle patients", c.Subject.Reference)
		}
	}
}

func TestBuildResponse_MatchesRespectFilters(t *testing.T) {
	svc := NewService(NewCatalog(), 20, 50)
	spec := nlp.NewFilterSpec()
	spec.Gender = fhirmodels.GenderFemale
	spec.AgeRange = nlp.AgeRange{Min: intp(50)}

	bundle, err := svc.BuildResponse(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, _ := decodeEntries(bundle)
	for _, p := range patients {
		if p.Gender != fhirmodels.GenderFemale {
			t.Errorf("patient %s gender = %s, want female", p.ID, p.Gender)
		}
		if p.Computed.Age < 50 {
			t.Errorf("patient %s age = %d, want >= 50", p.ID, p.Computed.Age)
		}
	}
}

func TestBuildResponse_EntryModes(t *testing.T) {
	svc := NewService(NewCatalog(), 20, 50)
	spec := nlp.NewFilterSpec()
	spec.Conditions = []string{"asthma"}

	bundle, err := svc.BuildResponse(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range bundle.Entry {
		var probe struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(entry.Resource, &probe); err != nil {
			t.Fatalf("entry resource: %v", err)
		}
		wantMode := "match"
		if probe.ResourceType == "Condition" {
			wantMode = "include"
		}
		if entry.Search == nil || entry.Search.Mode != wantMode {
			t.Errorf("%s entry mode = %v, want %s", probe.ResourceType, entry.Search, wantMode)
		}
		if !strings.Contains(entry.FullURL, "/"+probe.ResourceType+"/") {
			t.Errorf("fullUrl %s does not address a %s", entry.FullURL, probe.ResourceType)
		}
	}
}
