// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis assembles the batch's results into a categorized,
// citation-deduplicated report with a short narrative summary.
// Implements: prd004-synthesis (R1-R4);
//
//	docs/ARCHITECTURE § Synthesis.
package synthesis

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/deep-research/pkg/types"
)

// excerptLength bounds the per-category excerpt in the narrative summary.
const excerptLength = 200

// categoryOrder fixes the bucket sequence in reports and summaries.
var categoryOrder = []string{"etymology", "cultural", "historical", "modern", "interdisciplinary"}

// categoryStems mirror the planner's strategy applicability stems, applied
// to the query that produced each result (not the answer). A query that
// matches nothing lands in interdisciplinary.
var categoryStems = map[string][]string{
	"etymology":  {"etymolog", "origin", "linguistic", "derive", "root"},
	"cultural":   {"cultur", "tradition", "society", "civiliz"},
	"historical": {"histor", "develop", "evolution", "archaeolog"},
	"modern":     {"modern", "contemporary", "recent", "current"},
}

// Synthesize buckets the successful results, deduplicates citations by
// identity preserving first-seen order, and builds the narrative summary.
// This stage cannot fail: an all-empty or all-failed batch yields a report
// with no sections and an empty summary (R4.2).
func Synthesize(question, model string, results []types.SearchResult) types.SynthesizedReport {
	report := types.SynthesizedReport{
		Question:    question,
		GeneratedAt: time.Now().UTC(),
		Model:       model,
	}

	buckets := make(map[string][]types.SearchResult)
	seen := make(map[string]bool)

	for _, r := range results {
		if r.Usage != nil {
			report.TotalUsage = report.TotalUsage.Add(*r.Usage)
		}
		if !r.Succeeded {
			continue
		}

		cat := categorize(r.Query)
		buckets[cat] = append(buckets[cat], r)

		for _, c := range r.Citations {
			key := c.Key()
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			report.Citations = append(report.Citations, c)
		}
	}

	var summaryParts []string
	for _, cat := range categoryOrder {
		rs := buckets[cat]
		if len(rs) == 0 {
			continue
		}
		report.Sections = append(report.Sections, types.CategorySection{
			Category: cat,
			Results:  rs,
		})
		if ex := excerpt(rs[0].AnswerText); ex != "" {
			summaryParts = append(summaryParts, strings.ToUpper(cat[:1])+cat[1:]+": "+ex)
		}
	}
	report.Summary = strings.Join(summaryParts, "\n\n")

	return report
}

// categorize maps a query string to its topic bucket by stem test, in
// fixed category order.
func categorize(query string) string {
	folded := strings.ToLower(query)
	for _, cat := range categoryOrder {
		for _, stem := range categoryStems[cat] {
			if strings.Contains(folded, stem) {
				return cat
			}
		}
	}
	return "interdisciplinary"
}

// excerpt truncates text to excerptLength at a word boundary, or at a
// rune boundary when the window holds no space.
func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= excerptLength {
		return text
	}
	cut := excerptLength
	if i := strings.LastIndexByte(text[:cut], ' '); i > 0 {
		cut = i
	} else {
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
	}
	return text[:cut] + "..."
}
