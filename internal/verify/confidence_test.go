// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

// citedResult returns a successful result with n citations whose titles
// match the answer vocabulary.
func citedResult(query string, n int) types.SearchResult {
	r := types.SearchResult{
		Query: query,
		AnswerText: "The word autodidact derives from ancient Greek autodidaktos meaning self-taught. " +
			"Greek autodidaktos combines autos meaning self with didaktos meaning taught or instructed. " +
			"Comparative linguistics traces the didaktos element to the verb didaskein, to teach.",
		Succeeded: true,
	}
	for i := 0; i < n; i++ {
		r.Citations = append(r.Citations, types.Citation{
			Title: "Autodidact etymology Greek autodidaktos autos didaktos didaskein self-taught comparative linguistics verb teach word",
			URL:   fmt.Sprintf("https://www.jstor.org/stable/%d", i),
		})
	}
	return r
}

func runConfidence(t *testing.T, results []types.SearchResult, cfg Config) types.ConfidenceReport {
	t.Helper()
	_, details := scoreGrounding(results, cfg)
	return scoreConfidence(results, details, cfg)
}

func TestScoreConfidenceRewardsCitations(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	results := []types.SearchResult{
		citedResult("zero citations", 0),
		citedResult("twenty citations", 20),
	}
	report := runConfidence(t, results, cfg)

	if len(report.PerQuery) != 2 {
		t.Fatalf("len(PerQuery) = %d, want 2", len(report.PerQuery))
	}
	zero, twenty := report.PerQuery[0], report.PerQuery[1]
	if zero.Query != "zero citations" || twenty.Query != "twenty citations" {
		t.Fatalf("PerQuery order wrong: %+v", report.PerQuery)
	}
	if twenty.Score <= zero.Score {
		t.Errorf("confidence(20 citations) = %v <= confidence(0 citations) = %v",
			twenty.Score, zero.Score)
	}
}

func TestScoreConfidenceBounded(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	batches := [][]types.SearchResult{
		nil,
		{citedResult("q", 50)},
		{citedResult("q", 0)},
		{{Query: "failed", Succeeded: false}},
		{citedResult("a", 20), {Query: "failed", Succeeded: false}, citedResult("b", 0)},
	}
	for _, results := range batches {
		report := runConfidence(t, results, cfg)
		if report.Overall < 0 || report.Overall > 1 {
			t.Errorf("Overall = %v out of [0,1] for %d results", report.Overall, len(results))
		}
		for _, pq := range report.PerQuery {
			if pq.Score < 0 || pq.Score > 1 {
				t.Errorf("PerQuery[%q] = %v out of [0,1]", pq.Query, pq.Score)
			}
		}
	}
}

func TestScoreConfidenceAllFailedIsZeroPoor(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	results := []types.SearchResult{
		{Query: "q1", Succeeded: false, ErrorMessage: "unreachable"},
		{Query: "q2", Succeeded: false, ErrorMessage: "unreachable"},
	}
	report := runConfidence(t, results, cfg)

	if report.Overall != 0 {
		t.Errorf("Overall = %v, want 0", report.Overall)
	}
	if report.Label != types.ConfidencePoor {
		t.Errorf("Label = %q, want poor", report.Label)
	}
	for _, pq := range report.PerQuery {
		if pq.Score != 0 {
			t.Errorf("PerQuery[%q] = %v, want 0", pq.Query, pq.Score)
		}
	}
}

func TestLabelFor(t *testing.T) {
	th := ThresholdsConfig{Fair: 0.5, Good: 0.65, Excellent: 0.8}
	tests := []struct {
		score float64
		want  types.ConfidenceLabel
	}{
		{0.9, types.ConfidenceExcellent},
		{0.8, types.ConfidenceExcellent},
		{0.7, types.ConfidenceGood},
		{0.5, types.ConfidenceFair},
		{0.2, types.ConfidencePoor},
		{0, types.ConfidencePoor},
	}
	for _, tt := range tests {
		if got := labelFor(tt.score, th); got != tt.want {
			t.Errorf("labelFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

// A stricter preset must never grade the same raw data more favorably.
func TestStrictNeverMoreFavorableThanLenient(t *testing.T) {
	rank := map[types.ConfidenceLabel]int{
		types.ConfidencePoor:      0,
		types.ConfidenceFair:      1,
		types.ConfidenceGood:      2,
		types.ConfidenceExcellent: 3,
	}

	batches := [][]types.SearchResult{
		{citedResult("rich", 20), citedResult("rich2", 12)},
		{citedResult("sparse", 2)},
		{citedResult("none", 0)},
		{{Query: "failed", Succeeded: false}},
	}

	for i, results := range batches {
		strict, err := Load("strict")
		if err != nil {
			t.Fatal(err)
		}
		lenient, err := Load("lenient")
		if err != nil {
			t.Fatal(err)
		}

		strictReport := runConfidence(t, results, strict)
		lenientReport := runConfidence(t, results, lenient)

		if rank[strictReport.Label] > rank[lenientReport.Label] {
			t.Errorf("batch %d: strict label %q more favorable than lenient %q",
				i, strictReport.Label, lenientReport.Label)
		}
	}
}

func TestScoreConfidenceSkipsEmptyAnswers(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	cited := citedResult("cited", 20)
	baseline := runConfidence(t, []types.SearchResult{cited}, cfg)

	// An empty answer carries no claims to score, so it contributes
	// nothing to the batch mean even when the call itself succeeded.
	empty := types.SearchResult{Query: "empty answer", Succeeded: true}
	report := runConfidence(t, []types.SearchResult{cited, empty}, cfg)

	if report.Overall != baseline.Overall {
		t.Errorf("Overall with empty answer = %v, want %v (empty answers excluded from the mean)",
			report.Overall, baseline.Overall)
	}
	if len(report.PerQuery) != 2 {
		t.Fatalf("len(PerQuery) = %d, want 2", len(report.PerQuery))
	}
	if report.PerQuery[1].Score != 0 {
		t.Errorf("empty answer score = %v, want 0", report.PerQuery[1].Score)
	}
}
