// Package search implements simulated FHIR patient search: it synthesizes a
// candidate population for an extracted filter spec, narrows it to matches,
// and assembles a searchset Bundle with summary statistics. Everything is
// request-local and in-memory; nothing is persisted.
package search

import (
	"github.com/ehr/healthquery/pkg/fhirmodels"
)

// CatalogEntry is the coding triple for one condition key.
type CatalogEntry struct {
	Code    string `json:"code"`
	Display string `json:"display"`
	System  string `json:"system"`
}

// Catalog maps condition keys to ICD-10-CM codings. It is built once at
// startup and shared read-only by the generator and the aggregator.
type Catalog struct {
	keys    []string
	entries map[string]CatalogEntry
}

// unspecifiedCoding is the fallback for condition keys the catalog does not
// carry, so condition synthesis always produces a well-formed record.
var unspecifiedCoding = CatalogEntry{
	Code:    "R06.9",
	Display: "Unspecified abnormalities of breathing",
	System:  fhirmodels.SystemICD10CM,
}

// NewCatalog returns the default condition catalog. Note that the catalog is
// intentionally narrower than the extractor vocabulary (copd and stroke have
// no coding here); unknown keys resolve to the unspecified fallback.
func NewCatalog() *Catalog {
	c := &Catalog{entries: map[string]CatalogEntry{}}
	add := func(key string, entry CatalogEntry) {
		c.keys = append(c.keys, key)
		c.entries[key] = entry
	}

	add("diabetes", CatalogEntry{
		Code:    "E11.9",
		Display: "Type 2 diabetes mellitus without complications",
		System:  fhirmodels.SystemICD10CM,
	})
	add("hypertension", CatalogEntry{
		Code:    "I10",
		Display: "Essential hypertension",
		System:  fhirmodels.SystemICD10CM,
	})
	add("asthma", CatalogEntry{
		Code:    "J45.9",
		Display: "Asthma, unspecified",
		System:  fhirmodels.SystemICD10CM,
	})
	add("heart disease", CatalogEntry{
		Code:    "I25.9",
		Display: "Chronic ischemic heart disease, unspecified",
		System:  fhirmodels.SystemICD10CM,
	})
	add("cancer", CatalogEntry{
		Code:    "C80.1",
		Display: "Malignant neoplasm, unspecified",
		System:  fhirmodels.SystemICD10CM,
	})

	return c
}

// Keys returns the condition keys in declaration order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Lookup returns the coding for key if the catalog carries it.
func (c *Catalog) Lookup(key string) (CatalogEntry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Resolve returns the coding for key, falling back to the unspecified coding
// for unrecognized keys.
func (c *Catalog) Resolve(key string) CatalogEntry {
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	return unspecifiedCoding
}

// Entries returns a copy of the full key-to-coding mapping.
func (c *Catalog) Entries() map[string]CatalogEntry {
	out := make(map[string]CatalogEntry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
