package search

import (
	"strings"

	"github.com/ehr/healthquery/internal/platform/nlp"
)

// Suggestion is a canned query offered to clients for autocomplete.
type Suggestion struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

var suggestions = []Suggestion{
	{"Show me all diabetic patients over 50", "Find diabetic patients aged 50 or older"},
	{"Find female patients with hypertension", "Search for women diagnosed with hypertension"},
	{"List male cancer patients between 40 and 60", "Display male cancer patients in middle age"},
	{"Show patients with asthma under 30", "Find young asthma patients"},
	{"Find heart disease patients", "Search for patients with cardiovascular conditions"},
	{"Show diabetic female patients", "Find women with diabetes"},
	{"List patients over 65 with hypertension", "Find elderly patients with high blood pressure"},
	{"Find male patients under 40", "Search for young male patients"},
}

const maxSuggestions = 5

// Suggestions returns up to five canned queries containing prefix
// (case-insensitive substring match; empty prefix returns the head of the
// list).
func Suggestions(prefix string) []Suggestion {
	lower := strings.ToLower(prefix)
	out := make([]Suggestion, 0, maxSuggestions)
	for _, s := range suggestions {
		if lower != "" && !strings.Contains(strings.ToLower(s.Text), lower) {
			continue
		}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// ExampleQuery pairs a canonical input with its expected extraction and the
// extractor's actual output, for documentation and regression checks.
type ExampleQuery struct {
	Input          string         `json:"input"`
	ExpectedParams nlp.FilterSpec `json:"expected_params"`
	ActualParams   nlp.FilterSpec `json:"actual_params"`
	Explanation    string         `json:"explanation"`
}

func intPtr(n int) *int { return &n }

// canonicalExamples are the five demonstration queries and what the
// extractor is expected to produce for each.
var canonicalExamples = []ExampleQuery{
	{
		Input: "Show me all diabetic patients over 50",
		ExpectedParams: nlp.FilterSpec{
			Conditions: []string{"diabetes"},
			AgeRange:   nlp.AgeRange{Min: intPtr(50)},
			Limit:      nlp.DefaultLimit,
			QueryType:  nlp.QueryTypePatientSearch,
		},
	},
	{
		Input: "Find female patients with hypertension",
		ExpectedParams: nlp.FilterSpec{
			Conditions: []string{"hypertension"},
			Gender:     "female",
			Limit:      nlp.DefaultLimit,
			QueryType:  nlp.QueryTypePatientSearch,
		},
	},
	{
		Input: "List male cancer patients between 40 and 60",
		ExpectedParams: nlp.FilterSpec{
			Conditions: []string{"cancer"},
			AgeRange:   nlp.AgeRange{Min: intPtr(40), Max: intPtr(60)},
			Gender:     "male",
			Limit:      nlp.DefaultLimit,
			QueryType:  nlp.QueryTypePatientSearch,
		},
	},
	{
		Input: "Show patients with asthma under 30",
		ExpectedParams: nlp.FilterSpec{
			Conditions: []string{"asthma"},
			AgeRange:   nlp.AgeRange{Max: intPtr(30)},
			Limit:      nlp.DefaultLimit,
			QueryType:  nlp.QueryTypePatientSearch,
		},
	},
	{
		Input: "Find heart disease patients",
		ExpectedParams: nlp.FilterSpec{
			Conditions: []string{"heart disease"},
			Limit:      nlp.DefaultLimit,
			QueryType:  nlp.QueryTypePatientSearch,
		},
	},
}

// Examples runs the extractor over the canonical queries and returns each
// with its expected and actual output side by side.
func Examples(interp *nlp.Interpreter) []ExampleQuery {
	out := make([]ExampleQuery, len(canonicalExamples))
	for i, ex := range canonicalExamples {
		spec, explanation := interp.Interpret(ex.Input)
		ex.ActualParams = spec
		ex.Explanation = explanation
		out[i] = ex
	}
	return out
}
