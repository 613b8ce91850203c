package search

import (
	"github.com/ehr/healthquery/internal/platform/nlp"
)

// FilterPatients narrows pool to the patients satisfying every configured
// dimension of spec, preserving pool order, then truncates to spec.Limit.
// The predicates are independent, so their order does not affect the result
// set; truncation must stay last.
func FilterPatients(pool []*Patient, spec nlp.FilterSpec) []*Patient {
	matches := make([]*Patient, 0, len(pool))
	for _, p := range pool {
		if !matchesSpec(p, spec) {
			continue
		}
		matches = append(matches, p)
	}

	limit := spec.Limit
	if limit <= 0 {
		limit = nlp.DefaultLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func matchesSpec(p *Patient, spec nlp.FilterSpec) bool {
	if spec.Gender != "" && p.Gender != spec.Gender {
		return false
	}
	if !spec.AgeRange.Contains(p.Age) {
		return false
	}
	if len(spec.Conditions) > 0 && !hasAnyCondition(p, spec.Conditions) {
		return false
	}
	return true
}

func hasAnyCondition(p *Patient, requested []string) bool {
	for _, want := range requested {
		for _, have := range p.ConditionKeys {
			if have == want {
				return true
			}
		}
	}
	return false
}
