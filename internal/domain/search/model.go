package search

import (
	"time"

	"github.com/ehr/healthquery/internal/platform/fhir"
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

// Patient is a synthesized subject. Demographics are drawn once at creation
// and never mutated; Age and BirthDate are derived together so they stay
// consistent for the record's lifetime.
type Patient struct {
	ID            string
	CreatedAt     time.Time
	Gender        string
	Age           int
	BirthDate     time.Time
	FirstName     string
	LastName      string
	Address       fhir.Address
	Phone         string
	Email         string
	ConditionKeys []string
}

// DisplayName returns the patient's full name.
func (p *Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

// Computed is the derived view that rides alongside the FHIR shape under
// "_computed", so clients can filter and display without re-deriving age
// from the birth date.
type Computed struct {
	Age         int      `json:"age"`
	DisplayName string   `json:"display_name"`
	Conditions  []string `json:"conditions"`
}

func (p *Patient) Computed() Computed {
	conditions := p.ConditionKeys
	if conditions == nil {
		conditions = []string{}
	}
	return Computed{
		Age:         p.Age,
		DisplayName: p.DisplayName(),
		Conditions:  conditions,
	}
}

// ToFHIR renders the patient as a FHIR Patient resource.
func (p *Patient) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Patient",
		"id":           p.ID,
		"meta":         fhir.Meta{VersionID: "1", LastUpdated: p.CreatedAt},
		"identifier": []fhir.Identifier{
			{
				Use:    "official",
				System: "http://hospital.example.org/patients",
				Value:  p.ID,
			},
		},
		"active": true,
		"name": []fhir.HumanName{
			{Use: "official", Family: p.LastName, Given: []string{p.FirstName}},
		},
		"gender":    p.Gender,
		"birthDate": p.BirthDate.Format("2006-01-02"),
		"address":   []fhir.Address{p.Address},
		"telecom": []fhir.ContactPoint{
			{System: "phone", Value: p.Phone, Use: "home"},
			{System: "email", Value: p.Email, Use: "home"},
		},
		"_computed": p.Computed(),
	}
}

// Condition is one clinical observation tied to exactly one patient. The
// condition is recorded at onset, so RecordedAt tracks OnsetDate; CreatedAt
// is when the record itself was synthesized.
type Condition struct {
	ID         string
	PatientID  string
	Coding     CatalogEntry
	OnsetDate  time.Time
	RecordedAt time.Time
	CreatedAt  time.Time
}

// ToFHIR renders the condition as a FHIR Condition resource.
func (c *Condition) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Condition",
		"id":           c.ID,
		"meta":         fhir.Meta{VersionID: "1", LastUpdated: c.CreatedAt},
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  fhirmodels.SystemConditionClinical,
				Code:    fhirmodels.ConditionActive,
				Display: "Active",
			}},
		},
		"verificationStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  fhirmodels.SystemConditionVerStatus,
				Code:    fhirmodels.VerificationConfirmed,
				Display: "Confirmed",
			}},
		},
		"category": []fhir.CodeableConcept{{
			Coding: []fhir.Coding{{
				System:  fhirmodels.SystemConditionCategory,
				Code:    fhirmodels.CategoryEncounterDiagnosis,
				Display: "Encounter Diagnosis",
			}},
		}},
		"code": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System:  c.Coding.System,
				Code:    c.Coding.Code,
				Display: c.Coding.Display,
			}},
			Text: c.Coding.Display,
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", c.PatientID),
			Display:   "Patient " + c.PatientID,
		},
		"onsetDateTime": c.OnsetDate.Format(time.RFC3339),
		"recordedDate":  c.RecordedAt.Format(time.RFC3339),
	}
}
