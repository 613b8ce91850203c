package search

import (
	"fmt"

	"github.com/ehr/healthquery/internal/platform/fhir"
	"github.com/ehr/healthquery/internal/platform/nlp"
)

// DefaultBaseURL is the fullUrl prefix for bundle entries.
const DefaultBaseURL = "http://example.org/fhir"

// Service composes generation, filtering, and bundle assembly into the
// simulated search the HTTP layer exposes. Each request gets its own
// generator, so the service itself is safe for concurrent use.
type Service struct {
	catalog *Catalog
	poolMin int
	poolMax int
	baseURL string
}

func NewService(catalog *Catalog, poolMin, poolMax int) *Service {
	return &Service{
		catalog: catalog,
		poolMin: poolMin,
		poolMax: poolMax,
		baseURL: DefaultBaseURL,
	}
}

// Catalog exposes the shared condition catalog.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// BuildResponse synthesizes a candidate pool for spec, narrows it to
// matches, and assembles the searchset bundle. The bundle id and timestamp
// are fresh per call; nothing is retained between calls.
func (s *Service) BuildResponse(spec nlp.FilterSpec) (*fhir.Bundle, error) {
	gen := NewGenerator(s.catalog, s.poolMin, s.poolMax, 0)
	pool := gen.GeneratePool(spec)
	matches := FilterPatients(pool, spec)
	return s.assemble(gen, matches)
}

// assemble builds the searchset bundle: for each matched patient a match
// entry, followed by one include entry per assigned condition key.
// Conditions are synthesized only here, for matched patients, so the bundle
// never references unreturned data. Total counts patient entries only.
func (s *Service) assemble(gen *Generator, matches []*Patient) (*fhir.Bundle, error) {
	bundle := fhir.NewSearchset(shortID("bundle"), len(matches))

	for _, p := range matches {
		fullURL := fmt.Sprintf("%s/Patient/%s", s.baseURL, p.ID)
		if err := bundle.AppendEntry(fullURL, p.ToFHIR(), fhir.SearchModeMatch); err != nil {
			return nil, fmt.Errorf("append patient entry: %w", err)
		}

		for _, key := range p.ConditionKeys {
			cond := gen.SynthesizeCondition(p.ID, key)
			condURL := fmt.Sprintf("%s/Condition/%s", s.baseURL, cond.ID)
			if err := bundle.AppendEntry(condURL, cond.ToFHIR(), fhir.SearchModeInclude); err != nil {
				return nil, fmt.Errorf("append condition entry: %w", err)
			}
		}
	}

	return bundle, nil
}
