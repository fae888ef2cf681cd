// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

// groundedResult has claims whose vocabulary matches its citations.
func groundedResult() types.SearchResult {
	return types.SearchResult{
		Query: "autodidact etymology linguistic origin",
		AnswerText: "The word autodidact derives from ancient Greek autodidaktos meaning self-taught. " +
			"Greek autodidaktos combines autos meaning self with didaktos meaning taught or instructed.",
		Citations: []types.Citation{
			{Title: "Autodidact etymology Greek autodidaktos autos didaktos self-taught origin", URL: "https://www.etymonline.com/word/autodidact"},
			{Title: "Greek loanwords meaning self taught instructed didaktos", URL: "https://www.oed.com/dictionary/autodidact"},
		},
		Succeeded: true,
	}
}

// ungroundedResult has claims sharing no vocabulary with its citation.
func ungroundedResult() types.SearchResult {
	return types.SearchResult{
		Query: "autodidact cultural significance traditions customs",
		AnswerText: "Scholars continue to debate whether bilingual education policies shaped these outcomes significantly. " +
			"Regional funding disparities complicated every attempt at curriculum standardization nationwide.",
		Citations: []types.Citation{
			{Title: "Unrelated", URL: "https://example.com/zzz"},
		},
		Succeeded: true,
	}
}

func TestScoreGroundingVerifiesMatchingClaims(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	report, details := scoreGrounding([]types.SearchResult{groundedResult()}, cfg)

	if report.TotalClaims == 0 {
		t.Fatal("no claims extracted from grounded result")
	}
	if report.VerifiedClaims != report.TotalClaims {
		t.Errorf("verified %d of %d claims, want all verified; unverified: %+v",
			report.VerifiedClaims, report.TotalClaims, report.Unverified)
	}
	if !report.WellGrounded {
		t.Error("WellGrounded = false for a fully verified result")
	}
	if details[0].rate != 1.0 {
		t.Errorf("per-result rate = %v, want 1.0", details[0].rate)
	}
}

func TestScoreGroundingFlagsUnmatchedClaims(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	report, details := scoreGrounding([]types.SearchResult{ungroundedResult()}, cfg)

	if report.TotalClaims == 0 {
		t.Fatal("no claims extracted")
	}
	if report.VerifiedClaims != 0 {
		t.Errorf("VerifiedClaims = %d, want 0", report.VerifiedClaims)
	}
	if len(report.Unverified) != report.TotalClaims {
		t.Errorf("len(Unverified) = %d, want %d", len(report.Unverified), report.TotalClaims)
	}
	if report.WellGrounded {
		t.Error("WellGrounded = true for a fully unverified result")
	}
	if details[0].rate != 0 {
		t.Errorf("per-result rate = %v, want 0", details[0].rate)
	}
}

func TestScoreGroundingSkipsFailedResults(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	failed := types.SearchResult{Query: "q", Succeeded: false, ErrorMessage: "timeout"}
	report, details := scoreGrounding([]types.SearchResult{failed}, cfg)

	if report.TotalClaims != 0 || report.VerifiedClaims != 0 {
		t.Errorf("failed result contributed claims: %+v", report)
	}
	if details[0].totalClaims != 0 {
		t.Errorf("failed result detail = %+v, want zero", details[0])
	}
	if report.PerQuery["q"] != 0 {
		t.Errorf("PerQuery[q] = %v, want 0", report.PerQuery["q"])
	}
}

// Raising the overlap threshold must never increase the verified count.
func TestScoreGroundingMonotonicInOverlap(t *testing.T) {
	results := []types.SearchResult{groundedResult(), ungroundedResult()}

	prev := -1
	for _, threshold := range []float64{0.9, 0.7, 0.5, 0.3, 0.1} {
		cfg, err := LoadWithOverrides("balanced", map[string]float64{
			"citationGrounding.minKeywordOverlap": threshold,
		})
		if err != nil {
			t.Fatal(err)
		}
		report, _ := scoreGrounding(results, cfg)
		if prev >= 0 && report.VerifiedClaims < prev {
			t.Errorf("lowering threshold to %v decreased verified count: %d -> %d",
				threshold, prev, report.VerifiedClaims)
		}
		prev = report.VerifiedClaims
	}
}
