// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner turns a research question into an ordered, deduplicated
// plan of specialized sub-queries.
// Implements: prd001-planning (R2, R3);
//
//	docs/ARCHITECTURE § Query Planning.
package planner

import (
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// generateFunc builds the specialized queries for one domain strategy.
// Implementations are pure: same ConceptSet in, same sequence out.
type generateFunc func(cs types.ConceptSet) []string

// strategy pairs a domain strategy with its applicability test. The test
// runs against the case-folded original question, not the ConceptSet, so
// partial stems like "etymolog" catch "etymological" (R2.2).
type strategy struct {
	name     string
	keywords []string // applicability stems; empty means fallback-only
	generate generateFunc
}

// strategies is the registry, in declaration order. The planner walks this
// slice rather than dispatching through an interface; each entry stays
// independently testable and new domains are added by appending here.
// Interdisciplinary has no keywords and fires only as the fallback (R2.5).
var strategies = []strategy{
	{
		name:     "etymology",
		keywords: []string{"etymolog", "origin", "linguistic", "derive", "root"},
		generate: etymologyQueries,
	},
	{
		name:     "cultural",
		keywords: []string{"cultur", "tradition", "society", "civiliz"},
		generate: culturalQueries,
	},
	{
		name:     "historical",
		keywords: []string{"histor", "develop", "evolution", "archaeolog"},
		generate: historicalQueries,
	},
	{
		name:     "interdisciplinary",
		generate: interdisciplinaryQueries,
	},
}

// matches reports whether any applicability stem occurs in the folded input.
func (s strategy) matches(folded string) bool {
	for _, kw := range s.keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// compose joins the primary term with a template tail, handling an empty
// primary term without leaving leading whitespace.
func compose(term, tail string) string {
	if term == "" {
		return tail
	}
	return term + " " + tail
}

// firstOr returns the first marker, or the fallback when none matched.
func firstOr(markers []string, fallback string) string {
	if len(markers) > 0 {
		return markers[0]
	}
	return fallback
}

func etymologyQueries(cs types.ConceptSet) []string {
	term := cs.PrimaryTerm
	queries := []string{
		compose(term, "etymology linguistic origin Proto-Indo-European roots"),
		compose(term, "word origin first attested use historical linguistics"),
		compose(term, "cognates related words comparative linguistics"),
		compose(term, "semantic shift meaning change over time"),
	}
	if len(cs.GeographicMarkers) > 0 {
		queries = append(queries,
			compose(term, firstOr(cs.GeographicMarkers, "")+" language loanwords borrowing etymology"))
	}
	return queries
}

func culturalQueries(cs types.ConceptSet) []string {
	term := cs.PrimaryTerm
	queries := []string{
		compose(term, "cultural significance traditions customs"),
		compose(term, "role in society social practices rituals"),
		compose(term, "folklore mythology symbolic meaning"),
	}
	if len(cs.GeographicMarkers) > 0 {
		queries = append(queries,
			compose(term, firstOr(cs.GeographicMarkers, "")+" cultural context regional variations"))
	}
	queries = append(queries, compose(term, "cultural heritage preservation modern practice"))
	return queries
}

func historicalQueries(cs types.ConceptSet) []string {
	term := cs.PrimaryTerm
	queries := []string{
		compose(term, "historical development timeline key periods"),
		compose(term, "earliest mentions primary sources historical records"),
		compose(term, "evolution through history major turning points"),
	}
	if len(cs.TemporalMarkers) > 0 {
		queries = append(queries,
			compose(term, firstOr(cs.TemporalMarkers, "")+" period historical context usage"))
	}
	return queries
}

func interdisciplinaryQueries(cs types.ConceptSet) []string {
	term := cs.PrimaryTerm
	return []string{
		compose(term, "overview academic research perspectives"),
		compose(term, "anthropology sociology linguistics scholarship"),
		compose(term, "contemporary scholarship recent studies"),
		compose(term, "cross-cultural comparative analysis"),
	}
}
