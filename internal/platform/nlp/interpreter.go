package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// conditionEntry maps a condition key to the surface forms that trigger it.
// Declaration order is detection order.
type conditionEntry struct {
	Key      string
	Variants []string
}

// conditionVocabulary lists every condition the extractor can recognize.
// Variants are matched as substrings of the lowercased query, so "diabetic"
// and "dm" both resolve to the "diabetes" key.
var conditionVocabulary = []conditionEntry{
	{"diabetes", []string{"diabetes", "diabetic", "dm", "type 1", "type 2"}},
	{"hypertension", []string{"hypertension", "high blood pressure", "hbp", "hypertensive"}},
	{"asthma", []string{"asthma", "asthmatic", "respiratory"}},
	{"heart disease", []string{"heart disease", "cardiac", "coronary", "heart condition", "cardiovascular"}},
	{"cancer", []string{"cancer", "oncology", "tumor", "malignant", "carcinoma"}},
	{"copd", []string{"copd", "chronic obstructive", "emphysema"}},
	{"stroke", []string{"stroke", "cerebrovascular", "cva"}},
}

// Gender patterns use word boundaries so that "men" never matches inside
// "women". Female patterns are checked before male ones; the first category
// with any match wins.
var genderPatterns = []struct {
	Gender   string
	Patterns []*regexp.Regexp
}{
	{"female", compileAll(`\bfemale\b`, `\bwomen\b`, `\bwoman\b`, `\bfeminine\b`)},
	{"male", compileAll(`\bmale\b`, `\bmen\b`, `\bman\b`, `\bmasculine\b`)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// Age keyword classes, in dispatch precedence order. Only one class is
// applied per query; a query containing both "over" and "under" is not
// disambiguated further.
var (
	betweenKeywords = []string{"between", "from", "age range"}
	overKeywords    = []string{"over", "above", "older than"}
	underKeywords   = []string{"under", "below", "younger than"}
)

var ageNumberRe = regexp.MustCompile(`\b\d{1,3}\b`)

// Interpreter turns free text into a FilterSpec plus a human-readable
// explanation of what was extracted.
type Interpreter struct {
	defaultLimit int
}

func NewInterpreter() *Interpreter {
	return &Interpreter{defaultLimit: DefaultLimit}
}

// NewInterpreterWithLimit returns an interpreter whose specs carry the given
// result limit. Non-positive limits fall back to DefaultLimit.
func NewInterpreterWithLimit(limit int) *Interpreter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Interpreter{defaultLimit: limit}
}

// Interpret extracts conditions, gender, and age bounds from text. It never
// returns an error; unrecognized text yields an unconstrained spec and a
// generic explanation.
func (in *Interpreter) Interpret(text string) (FilterSpec, string) {
	spec := NewFilterSpec()
	spec.Limit = in.defaultLimit
	lower := strings.ToLower(text)

	spec.Conditions = extractConditions(lower)
	spec.Gender = extractGender(lower)
	spec.AgeRange = extractAgeRange(lower)

	return spec, explain(spec)
}

func extractConditions(lower string) []string {
	found := []string{}
	for _, entry := range conditionVocabulary {
		for _, variant := range entry.Variants {
			if strings.Contains(lower, variant) {
				found = append(found, entry.Key)
				break
			}
		}
	}
	return found
}

func extractGender(lower string) string {
	for _, gp := range genderPatterns {
		for _, re := range gp.Patterns {
			if re.MatchString(lower) {
				return gp.Gender
			}
		}
	}
	return ""
}

func extractAgeRange(lower string) AgeRange {
	numbers := extractNumbers(lower)

	if containsAny(lower, betweenKeywords) && len(numbers) >= 2 {
		return AgeRange{Min: &numbers[0], Max: &numbers[1]}
	}
	if containsAny(lower, overKeywords) {
		if len(numbers) > 0 {
			return AgeRange{Min: &numbers[0]}
		}
		return AgeRange{}
	}
	if containsAny(lower, underKeywords) {
		if len(numbers) > 0 {
			return AgeRange{Max: &numbers[0]}
		}
		return AgeRange{}
	}
	return AgeRange{}
}

// extractNumbers returns every standalone 1-3 digit integer in order of
// appearance.
func extractNumbers(lower string) []int {
	var numbers []int
	for _, m := range ageNumberRe.FindAllString(lower, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// explain builds a semicolon-joined summary of the detected filters in the
// fixed order conditions, gender, age.
func explain(spec FilterSpec) string {
	var parts []string

	if len(spec.Conditions) > 0 {
		parts = append(parts, "Searching for patients with: "+strings.Join(spec.Conditions, ", "))
	}
	if spec.Gender != "" {
		parts = append(parts, "Gender: "+spec.Gender)
	}
	switch {
	case spec.AgeRange.Min != nil && spec.AgeRange.Max != nil:
		parts = append(parts, fmt.Sprintf("Age between %d and %d", *spec.AgeRange.Min, *spec.AgeRange.Max))
	case spec.AgeRange.Min != nil:
		parts = append(parts, fmt.Sprintf("Age over %d", *spec.AgeRange.Min))
	case spec.AgeRange.Max != nil:
		parts = append(parts, fmt.Sprintf("Age under %d", *spec.AgeRange.Max))
	}

	if len(parts) == 0 {
		return "General patient search"
	}
	return strings.Join(parts, "; ")
}

// SupportedConditions returns the condition keys in vocabulary order.
func SupportedConditions() []string {
	keys := make([]string, len(conditionVocabulary))
	for i, entry := range conditionVocabulary {
		keys[i] = entry.Key
	}
	return keys
}
