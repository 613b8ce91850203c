package search

import (
	"encoding/json"

	"github.com/ehr/healthquery/internal/platform/fhir"
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

// Statistics summarizes the patient and condition entries of one bundle.
type Statistics struct {
	TotalPatients         int            `json:"total_patients"`
	TotalConditions       int            `json:"total_conditions"`
	AgeDistribution       map[string]int `json:"age_distribution"`
	GenderDistribution    map[string]int `json:"gender_distribution"`
	ConditionDistribution map[string]int `json:"condition_distribution"`
	AverageAge            float64        `json:"average_age"`
}

// patientEntry and conditionEntry are the projections of bundle resources
// the aggregator needs. Statistics are recomputed from the bundle itself,
// not from the generation-time pool, so they always describe exactly what
// was returned.
type patientEntry struct {
	ResourceType string   `json:"resourceType"`
	ID           string   `json:"id"`
	Gender       string   `json:"gender"`
	BirthDate    string   `json:"birthDate"`
	Computed     Computed `json:"_computed"`
}

type conditionEntry struct {
	ResourceType string `json:"resourceType"`
	Code         struct {
		Text string `json:"text"`
	} `json:"code"`
	Subject struct {
		Reference string `json:"reference"`
	} `json:"subject"`
}

func decodeEntries(b *fhir.Bundle) ([]patientEntry, []conditionEntry) {
	var patients []patientEntry
	var conditions []conditionEntry
	for _, entry := range b.Entry {
		var probe struct {
			ResourceType string `json:"resourceType"`
		}
		if err := json.Unmarshal(entry.Resource, &probe); err != nil {
			continue
		}
		switch probe.ResourceType {
		case "Patient":
			var p patientEntry
			if err := json.Unmarshal(entry.Resource, &p); err == nil {
				patients = append(patients, p)
			}
		case "Condition":
			var c conditionEntry
			if err := json.Unmarshal(entry.Resource, &c); err == nil {
				conditions = append(conditions, c)
			}
		}
	}
	return patients, conditions
}

// Summarize computes summary statistics over a searchset bundle. Age bands
// are fixed; the top band is open-ended. Condition counts are keyed by the
// coding display text and accumulated over condition entries, so a patient
// with two conditions contributes two counts.
func Summarize(b *fhir.Bundle) Statistics {
	patients, conditions := decodeEntries(b)

	stats := Statistics{
		TotalPatients:   len(patients),
		TotalConditions: len(conditions),
		AgeDistribution: map[string]int{
			"18-30": 0, "31-50": 0, "51-70": 0, "71+": 0,
		},
		GenderDistribution: map[string]int{
			fhirmodels.GenderMale: 0, fhirmodels.GenderFemale: 0,
		},
		ConditionDistribution: map[string]int{},
	}

	ageSum := 0
	for _, p := range patients {
		age := p.Computed.Age
		ageSum += age
		switch {
		case age >= 18 && age <= 30:
			stats.AgeDistribution["18-30"]++
		case age >= 31 && age <= 50:
			stats.AgeDistribution["31-50"]++
		case age >= 51 && age <= 70:
			stats.AgeDistribution["51-70"]++
		case age > 70:
			stats.AgeDistribution["71+"]++
		}
		stats.GenderDistribution[p.Gender]++
	}
	if len(patients) > 0 {
		stats.AverageAge = float64(ageSum) / float64(len(patients))
	}

	for _, c := range conditions {
		stats.ConditionDistribution[c.Code.Text]++
	}

	return stats
}

// PatientSummary is the flattened client view of a bundle patient entry.
type PatientSummary struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     string   `json:"gender"`
	Conditions []string `json:"conditions"`
	BirthDate  string   `json:"birthDate"`
}

// FlattenPatients extracts the patient entries of a bundle into the
// simplified shape clients render directly.
func FlattenPatients(b *fhir.Bundle) []PatientSummary {
	patients, _ := decodeEntries(b)

	out := make([]PatientSummary, 0, len(patients))
	for _, p := range patients {
		conditions := p.Computed.Conditions
		if conditions == nil {
			conditions = []string{}
		}
		out = append(out, PatientSummary{
			ID:         p.ID,
			Name:       p.Computed.DisplayName,
			Age:        p.Computed.Age,
			Gender:     p.Gender,
			Conditions: conditions,
			BirthDate:  p.BirthDate,
		})
	}
	return out
}
