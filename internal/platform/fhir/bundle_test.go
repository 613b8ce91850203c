package fhir

import (
	"encoding/json"
	"testing"
)

func TestNewSearchset(t *testing.T) {
	b := NewSearchset("bundle-0a1b2c3d", 3)

	if b.ResourceType != "Bundle" {
		t.Errorf("resourceType = %s, want Bundle", b.ResourceType)
	}
	if b.Type != "searchset" {
		t.Errorf("type = %s, want searchset", b.Type)
	}
	if b.Total == nil || *b.Total != 3 {
		t.Errorf("total = %v, want 3", b.Total)
	}
	if b.Meta == nil || b.Meta.LastUpdated.IsZero() {
		t.Error("expected meta.lastUpdated to be set")
	}
	if b.Entry == nil {
		t.Error("expected entry to be non-nil so it marshals as []")
	}
}

func TestBundle_AppendEntry(t *testing.T) {
	b := NewSearchset("bundle-0a1b2c3d", 1)

	res := Resource{ResourceType: "Patient", ID: "patient-12345678"}
	if err := b.AppendEntry("http://example.org/fhir/Patient/patient-12345678", res, SearchModeMatch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(b.Entry) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(b.Entry))
	}
	if b.Entry[0].Search.Mode != SearchModeMatch {
		t.Errorf("mode = %s, want match", b.Entry[0].Search.Mode)
	}

	var got Resource
	if err := json.Unmarshal(b.Entry[0].Resource, &got); err != nil {
		t.Fatalf("entry resource did not round-trip: %v", err)
	}
	if got.ID != "patient-12345678" {
		t.Errorf("resource id = %s, want patient-12345678", got.ID)
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference("Patient", "patient-1a2b3c4d"); got != "Patient/patient-1a2b3c4d" {
		t.Errorf("FormatReference = %s", got)
	}
}

func TestErrorOutcome(t *testing.T) {
	oo := ErrorOutcome("boom")
	if oo.ResourceType != "OperationOutcome" {
		t.Errorf("resourceType = %s", oo.ResourceType)
	}
	if len(oo.Issue) != 1 || oo.Issue[0].Severity != "error" || oo.Issue[0].Diagnostics != "boom" {
		t.Errorf("unexpected issue: %+v", oo.Issue)
	}
}
