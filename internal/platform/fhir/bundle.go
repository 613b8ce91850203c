package fhir

import (
	"encoding/json"
	"time"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
	Type         string        `json:"type"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Search   *BundleSearch   `json:"search,omitempty"`
}

type BundleSearch struct {
	Mode string `json:"mode,omitempty"`
}

// Search entry modes per FHIR R4.
const (
	SearchModeMatch   = "match"
	SearchModeInclude = "include"
)

// NewSearchset creates an empty searchset Bundle with a fresh lastUpdated
// timestamp. Total counts match entries only, so it is passed in rather than
// derived from the entry slice.
func NewSearchset(id string, total int) *Bundle {
	return &Bundle{
		ResourceType: "Bundle",
		ID:           id,
		Type:         "searchset",
		Total:        &total,
		Meta:         &Meta{LastUpdated: time.Now().UTC()},
		Entry:        []BundleEntry{},
	}
}

// AppendEntry marshals the resource and appends it with the given search mode.
func (b *Bundle) AppendEntry(fullURL string, resource interface{}, mode string) error {
	raw, err := json.Marshal(resource)
	if err != nil {
		return err
	}
	b.Entry = append(b.Entry, BundleEntry{
		FullURL:  fullURL,
		Resource: raw,
		Search:   &BundleSearch{Mode: mode},
	})
	return nil
}
