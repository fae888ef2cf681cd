// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConceptSet is the structured reading of a free-text research question.
// It is derived once per request by the concept extractor and never
// modified afterward. Marker slices are sorted and contain no duplicates.
// Per prd001-planning R1.1-R1.4.
type ConceptSet struct {
	// PrimaryTerm is the main subject of the question. Empty for an empty
	// or whitespace-only input.
	PrimaryTerm string `json:"primary_term" yaml:"primary_term"`

	// LinguisticMarkers lists matched linguistic vocabulary (e.g. "etymology").
	LinguisticMarkers []string `json:"linguistic_markers,omitempty" yaml:"linguistic_markers,omitempty"`

	// CulturalMarkers lists matched cultural vocabulary (e.g. "tradition").
	CulturalMarkers []string `json:"cultural_markers,omitempty" yaml:"cultural_markers,omitempty"`

	// TemporalMarkers lists matched period vocabulary (e.g. "medieval").
	TemporalMarkers []string `json:"temporal_markers,omitempty" yaml:"temporal_markers,omitempty"`

	// GeographicMarkers lists matched region and language names (e.g. "latin").
	GeographicMarkers []string `json:"geographic_markers,omitempty" yaml:"geographic_markers,omitempty"`
}

// IsEmpty reports whether no concepts were extracted at all.
func (c ConceptSet) IsEmpty() bool {
	return c.PrimaryTerm == "" &&
		len(c.LinguisticMarkers) == 0 &&
		len(c.CulturalMarkers) == 0 &&
		len(c.TemporalMarkers) == 0 &&
		len(c.GeographicMarkers) == 0
}
