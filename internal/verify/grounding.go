// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// groundingDetail holds the per-result claim verification counts the other
// scorers consume. Indexed parallel to the result slice.
type groundingDetail struct {
	totalClaims    int
	verifiedClaims int
	rate           float64
}

// scoreGrounding verifies each result's claims against its own citations
// by keyword overlap (R1.1-R1.6). Failed or empty results contribute no
// claims. Returns the aggregate report and the per-result details.
func scoreGrounding(results []types.SearchResult, cfg Config) (types.CitationGroundingReport, []groundingDetail) {
	gc := cfg.CitationGrounding
	details := make([]groundingDetail, len(results))

	report := types.CitationGroundingReport{
		PerQuery: make(map[string]float64, len(results)),
	}

	for i, r := range results {
		if !r.Succeeded || r.AnswerText == "" {
			report.PerQuery[r.Query] = 0
			continue
		}

		citationKW := citationKeywords(r.Citations, gc.MinKeywordLength)
		claims := extractClaims(r.AnswerText, gc.MinClaimLength, gc.MaxClaimsToAnalyze)

		d := &details[i]
		for _, claim := range claims {
			d.totalClaims++
			ov := overlap(keywordSet(claim, gc.MinKeywordLength), citationKW)
			if ov >= gc.MinKeywordOverlap {
				d.verifiedClaims++
				continue
			}
			report.Unverified = append(report.Unverified, types.UnverifiedClaim{
				Query:   r.Query,
				Claim:   claim,
				Overlap: ov,
			})
		}
		if d.totalClaims > 0 {
			d.rate = float64(d.verifiedClaims) / float64(d.totalClaims)
		}

		report.TotalClaims += d.totalClaims
		report.VerifiedClaims += d.verifiedClaims
		report.PerQuery[r.Query] = d.rate
	}

	if report.TotalClaims > 0 {
		report.Rate = float64(report.VerifiedClaims) / float64(report.TotalClaims)
	}

	// Well-grounded requires the aggregate rate to clear the threshold and
	// every result that produced claims to clear it on its own (R1.6).
	report.WellGrounded = report.TotalClaims > 0 && report.Rate >= gc.VerificationThreshold
	for _, d := range details {
		if d.totalClaims > 0 && d.rate < gc.VerificationThreshold {
			report.WellGrounded = false
		}
	}

	return report, details
}

// citationKeywords builds the keyword union of a result's citation titles
// and URLs. URL punctuation splits into tokens, so path segments like
// "proto-indo-european" contribute keywords.
func citationKeywords(citations []types.Citation, minLen int) map[string]bool {
	var b strings.Builder
	for _, c := range citations {
		b.WriteString(c.Title)
		b.WriteByte(' ')
		b.WriteString(strings.NewReplacer("/", " ", "-", " ", "_", " ", ".", " ", "%20", " ").Replace(c.URL))
		b.WriteByte(' ')
	}
	return keywordSet(b.String(), minLen)
}
