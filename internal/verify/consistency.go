// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"sort"

	"github.com/pdiddy/deep-research/pkg/types"
)

// claimRecord ties one claim to its originating result.
type claimRecord struct {
	resultIdx int
	query     string
	text      string
	keywords  map[string]bool
}

// scoreConsistency compares same-topic claims across results and flags
// keyword-overlap divergence as a contradiction (R2.1-R2.5). Detection is
// purely lexical: two claims that share a topic keyword but otherwise use
// disjoint vocabularies are flagged, whether or not they semantically
// disagree. Returns the report and the set of result indices that
// participated in a contradiction, for the risk scorer.
func scoreConsistency(results []types.SearchResult, cfg Config) (types.SelfConsistencyReport, map[int]bool) {
	sc := cfg.SelfConsistency
	gc := cfg.CitationGrounding

	var claims []claimRecord
	for i, r := range results {
		if !r.Succeeded || r.AnswerText == "" {
			continue
		}
		for _, text := range extractClaims(r.AnswerText, gc.MinClaimLength, gc.MaxClaimsToAnalyze) {
			claims = append(claims, claimRecord{
				resultIdx: i,
				query:     r.Query,
				text:      text,
				keywords:  keywordSet(text, gc.MinKeywordLength),
			})
		}
	}

	// Topic index: keyword -> claims containing it. Only topics spanning
	// at least MinQueryGroupSize distinct results are compared (R2.2).
	byTopic := make(map[string][]int)
	for ci, c := range claims {
		for kw := range c.keywords {
			byTopic[kw] = append(byTopic[kw], ci)
		}
	}

	topics := make([]string, 0, len(byTopic))
	for topic, members := range byTopic {
		if distinctResults(claims, members) >= sc.MinQueryGroupSize {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)

	report := types.SelfConsistencyReport{Score: 1.0}
	contradicted := make(map[int]bool)

	// Each cross-result claim pair counts once, attributed to the first
	// shared topic in sorted order.
	comparedPairs := make(map[[2]int]bool)
	for _, topic := range topics {
		members := byTopic[topic]
		for ai := 0; ai < len(members); ai++ {
			for bi := ai + 1; bi < len(members); bi++ {
				a, b := claims[members[ai]], claims[members[bi]]
				if a.resultIdx == b.resultIdx {
					continue
				}
				pair := [2]int{members[ai], members[bi]}
				if comparedPairs[pair] {
					continue
				}
				comparedPairs[pair] = true
				report.Comparisons++

				// Symmetric agreement: take the weaker direction of the
				// overlap test.
				agreement := overlap(a.keywords, b.keywords)
				if rev := overlap(b.keywords, a.keywords); rev < agreement {
					agreement = rev
				}
				if agreement >= sc.MinSimilarity {
					continue
				}

				contradicted[a.resultIdx] = true
				contradicted[b.resultIdx] = true
				report.Contradictions = append(report.Contradictions, types.Contradiction{
					Topic:  topic,
					Query1: a.query,
					Query2: b.query,
					Difference: fmt.Sprintf("claims share topic %q but overlap only %.2f (threshold %.2f)",
						topic, agreement, sc.MinSimilarity),
				})
			}
		}
	}

	if report.Comparisons > 0 {
		report.Score = clamp01(1.0 - float64(len(report.Contradictions))/float64(report.Comparisons))
	}
	report.Consistent = report.Score >= sc.ConsistencyThreshold
	return report, contradicted
}

// distinctResults counts how many different results the claim indices span.
func distinctResults(claims []claimRecord, indices []int) int {
	seen := make(map[int]bool, len(indices))
	for _, ci := range indices {
		seen[claims[ci].resultIdx] = true
	}
	return len(seen)
}
