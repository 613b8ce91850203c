// Package nlp extracts structured patient-search parameters from short
// natural-language clinical queries ("Show me all diabetic patients over 50")
// using deterministic pattern rules. It performs no I/O and never fails:
// text without a recognizable signal simply leaves the corresponding filter
// field unset.
package nlp

// AgeRange holds optional inclusive age bounds. A nil pointer means the bound
// is unconstrained; there is no sentinel value.
type AgeRange struct {
	Min *int `json:"min_age,omitempty"`
	Max *int `json:"max_age,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r AgeRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Contains reports whether age satisfies both configured bounds.
func (r AgeRange) Contains(age int) bool {
	if r.Min != nil && age < *r.Min {
		return false
	}
	if r.Max != nil && age > *r.Max {
		return false
	}
	return true
}

// FilterSpec is the structured search intent extracted from a query.
// Condition keys keep detection order so explanations read the same way the
// vocabulary is declared.
type FilterSpec struct {
	Conditions []string `json:"conditions"`
	AgeRange   AgeRange `json:"age_filter"`
	Gender     string   `json:"gender,omitempty"`
	Limit      int      `json:"limit"`
	QueryType  string   `json:"query_type"`
}

// DefaultLimit is the result cap applied when no limit is configured. The
// extractor has no query syntax for limits; the cap comes from the
// interpreter's configuration.
const DefaultLimit = 10

// QueryTypePatientSearch is the only query type the extractor produces.
const QueryTypePatientSearch = "patient_search"

// NewFilterSpec returns an unconstrained spec with the default limit.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Conditions: []string{},
		Limit:      DefaultLimit,
		QueryType:  QueryTypePatientSearch,
	}
}
