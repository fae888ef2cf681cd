// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package concepts parses a free-text research question into a ConceptSet.
// Implements: prd001-planning (R1);
//
//	docs/ARCHITECTURE § Concept Extraction.
package concepts

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Marker vocabularies (R1.2). Matching is substring-based against the
// case-folded input, so "etymological" matches "etymolog"-rooted entries
// via the full word "etymology" only when the word itself appears; the
// vocabularies therefore list the shortest useful surface forms.
var (
	linguisticVocab = []string{"etymology", "origin", "root", "derive", "linguistic"}

	culturalVocab = []string{"cultural", "tradition", "society", "civilization", "heritage"}

	temporalVocab = []string{"history", "ancient", "medieval", "renaissance", "modern", "contemporary"}

	geographicVocab = []string{
		"latin", "greek", "sanskrit", "arabic", "hebrew",
		"spanish", "english", "french", "german", "italian", "portuguese",
		"chinese", "japanese", "slavic", "celtic", "germanic", "romance",
		"european", "mediterranean", "iberian", "nordic", "balkan",
		"mesoamerican", "andean", "indo-european",
	}
)

// primaryTermPatterns are tried in order against the case-folded query.
// The first capture group of the first matching pattern wins (R1.3).
var primaryTermPatterns = []*regexp.Regexp{
	// Quoted term: etymology of "saudade".
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),

	// "... of the word X", "... of X", "... about X".
	regexp.MustCompile(`\b(?:of|about)\s+(?:the\s+)?(?:word\s+|term\s+|concept\s+)?([a-z][a-z-]{3,})`),

	// Question forms: "what is X", "where does X ...".
	regexp.MustCompile(`^(?:what|where|when|how|why|who)\s+(?:is|are|was|were|does|did|do)\s+(?:the\s+)?([a-z][a-z-]{3,})`),
}

// fallbackStopwords are skipped when deriving the primary term from leading
// tokens. Marker vocabulary words are skipped as well so that a query like
// "autodidact etymology" yields the subject, not the marker.
var fallbackStopwords = map[string]bool{
	"what": true, "where": true, "when": true, "which": true,
	"does": true, "word": true, "term": true, "from": true,
	"about": true, "their": true, "there": true, "this": true, "that": true,
}

// Extract derives a ConceptSet from a raw research question. It is pure
// and deterministic: no network access, no randomness. An empty or
// whitespace-only input yields the zero ConceptSet (R1.5); the planner
// handles that by falling back to the interdisciplinary strategy.
func Extract(query string) types.ConceptSet {
	folded := strings.ToLower(strings.TrimSpace(query))
	if folded == "" {
		return types.ConceptSet{}
	}

	return types.ConceptSet{
		PrimaryTerm:       primaryTerm(folded),
		LinguisticMarkers: matchVocab(folded, linguisticVocab),
		CulturalMarkers:   matchVocab(folded, culturalVocab),
		TemporalMarkers:   matchVocab(folded, temporalVocab),
		GeographicMarkers: matchVocab(folded, geographicVocab),
	}
}

// matchVocab returns the vocabulary entries present in the folded input,
// sorted for deterministic output.
func matchVocab(folded string, vocab []string) []string {
	var matched []string
	for _, word := range vocab {
		if strings.Contains(folded, word) {
			matched = append(matched, word)
		}
	}
	sort.Strings(matched)
	return matched
}

// primaryTerm extracts the main subject of the folded query: extraction
// patterns first, then the first two tokens longer than three characters
// that are neither markers nor stopwords (R1.3, R1.4).
func primaryTerm(folded string) string {
	for _, re := range primaryTermPatterns {
		if m := re.FindStringSubmatch(folded); m != nil {
			term := strings.TrimSpace(m[1])
			if term != "" && !isMarkerWord(term) {
				return term
			}
		}
	}

	var picked []string
	for _, tok := range strings.Fields(folded) {
		tok = strings.Trim(tok, `.,;:?!"'()`)
		if len(tok) <= 3 || fallbackStopwords[tok] || isMarkerWord(tok) {
			continue
		}
		picked = append(picked, tok)
		if len(picked) == 2 {
			break
		}
	}
	return strings.Join(picked, " ")
}

// isMarkerWord reports whether the token belongs to any marker vocabulary.
func isMarkerWord(tok string) bool {
	for _, vocab := range [][]string{linguisticVocab, culturalVocab, temporalVocab, geographicVocab} {
		for _, word := range vocab {
			if tok == word {
				return true
			}
		}
	}
	return false
}
