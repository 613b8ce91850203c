package search

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehr/healthquery/internal/platform/fhir"
	"github.com/ehr/healthquery/internal/platform/nlp"
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

// Demographic vocabularies. Read-only after initialization.
var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara",
		"Susan", "Jessica", "Sarah", "Karen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	addresses = []fhir.Address{
		{Use: "home", Line: []string{"123 Main St"}, City: "Boston", State: "MA", PostalCode: "02101", Country: "US"},
		{Use: "home", Line: []string{"456 Oak Ave"}, City: "New York", State: "NY", PostalCode: "10001", Country: "US"},
		{Use: "home", Line: []string{"789 Pine Rd"}, City: "Chicago", State: "IL", PostalCode: "60601", Country: "US"},
		{Use: "home", Line: []string{"321 Elm St"}, City: "Los Angeles", State: "CA", PostalCode: "90001", Country: "US"},
		{Use: "home", Line: []string{"654 Maple Dr"}, City: "Houston", State: "TX", PostalCode: "77001", Country: "US"},
	}
)

// Default age bounds applied when the filter leaves a side unconstrained.
const (
	defaultAgeFloor   = 18
	defaultAgeCeiling = 85
)

// Condition onset window, in days before now.
const (
	onsetMinDays = 30
	onsetMaxDays = 1825
)

// Condition assignment thresholds. The multi-condition branch is only
// reachable when the single-condition draw fails, so its effective
// probability is 0.7*0.1; this mirrors the original policy on purpose.
const (
	probRequestedSingle = 0.3
	probRequestedMulti  = 0.1
	probUnprompted      = 0.4
)

// Generator synthesizes candidate patient populations. It is cheap to create
// and not safe for concurrent use; build one per request.
type Generator struct {
	rng     *rand.Rand
	catalog *Catalog
	poolMin int
	poolMax int
}

// NewGenerator returns a generator over the given catalog producing pools of
// poolMin..poolMax patients. If seed is 0 a time-based seed is chosen.
func NewGenerator(catalog *Catalog, poolMin, poolMax int, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		catalog: catalog,
		poolMin: poolMin,
		poolMax: poolMax,
	}
}

func shortID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, hex[:8])
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

// GeneratePool synthesizes a candidate population for the given spec. Pool
// size is drawn independently of the filter; condition keys are assigned so
// that the pool contains enough matches to exercise filtering in
// expectation, not to model real prevalence.
func (g *Generator) GeneratePool(spec nlp.FilterSpec) []*Patient {
	size := g.poolMin + g.rng.Intn(g.poolMax-g.poolMin+1)

	pool := make([]*Patient, 0, size)
	for i := 0; i < size; i++ {
		keys := g.assignConditionKeys(spec.Conditions)
		pool = append(pool, g.SynthesizePatient(spec.Gender, spec.AgeRange, keys))
	}
	return pool
}

// assignConditionKeys applies the fixed-probability policy: with requested
// conditions, 0.3 for exactly one of them, else a separate 0.1 draw for up
// to two distinct ones; with no requested conditions, 0.4 for one condition
// from the whole catalog.
func (g *Generator) assignConditionKeys(requested []string) []string {
	if len(requested) > 0 {
		if g.rng.Float64() < probRequestedSingle {
			return []string{requested[g.rng.Intn(len(requested))]}
		}
		if g.rng.Float64() < probRequestedMulti {
			return g.sample(requested, 2)
		}
		return nil
	}
	if g.rng.Float64() < probUnprompted {
		keys := g.catalog.Keys()
		return []string{keys[g.rng.Intn(len(keys))]}
	}
	return nil
}

// sample returns up to n distinct elements of pool in random order.
func (g *Generator) sample(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, idx := range g.rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// SynthesizePatient creates one patient. Empty gender means draw uniformly;
// unset age bounds fall back to the default floor and ceiling.
func (g *Generator) SynthesizePatient(gender string, ageRange nlp.AgeRange, conditionKeys []string) *Patient {
	if gender == "" {
		if g.rng.Intn(2) == 0 {
			gender = fhirmodels.GenderMale
		} else {
			gender = fhirmodels.GenderFemale
		}
	}

	minAge, maxAge := defaultAgeFloor, defaultAgeCeiling
	if ageRange.Min != nil {
		minAge = *ageRange.Min
	}
	if ageRange.Max != nil {
		maxAge = *ageRange.Max
	}
	// A filter like "under 10" puts the ceiling below the default floor.
	if minAge > maxAge {
		minAge = maxAge
	}
	age := minAge + g.rng.Intn(maxAge-minAge+1)

	now := time.Now().UTC()
	birthDate := now.Add(-time.Duration(float64(age) * 365.25 * 24 * float64(time.Hour)))

	var firstName string
	if gender == fhirmodels.GenderMale {
		firstName = g.pick(firstNamesMale)
	} else {
		firstName = g.pick(firstNamesFemale)
	}
	lastName := g.pick(lastNames)

	return &Patient{
		ID:        shortID("patient"),
		CreatedAt: now,
		Gender:    gender,
		Age:       age,
		BirthDate: birthDate,
		FirstName: firstName,
		LastName:  lastName,
		Address:   addresses[g.rng.Intn(len(addresses))],
		Phone: fmt.Sprintf("(%03d) %03d-%04d",
			100+g.rng.Intn(900),
			100+g.rng.Intn(900),
			1000+g.rng.Intn(9000),
		),
		Email:         strings.ToLower(firstName) + "." + strings.ToLower(lastName) + "@email.com",
		ConditionKeys: conditionKeys,
	}
}

// SynthesizeCondition creates a condition record for a patient, with an
// onset drawn from the bounded past window. Unrecognized keys resolve to the
// catalog's unspecified fallback coding.
func (g *Generator) SynthesizeCondition(patientID, conditionKey string) *Condition {
	onsetDaysAgo := onsetMinDays + g.rng.Intn(onsetMaxDays-onsetMinDays+1)
	onset := time.Now().UTC().AddDate(0, 0, -onsetDaysAgo)

	return &Condition{
		ID:         shortID("condition"),
		PatientID:  patientID,
		Coding:     g.catalog.Resolve(conditionKey),
		OnsetDate:  onset,
		RecordedAt: onset,
		CreatedAt:  time.Now().UTC(),
	}
}
