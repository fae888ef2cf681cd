// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"testing"

	"github.com/pdiddy/deep-research/pkg/types"
)

func TestScoreConsistencyFlagsDivergentClaims(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	results := []types.SearchResult{
		{
			Query:      "flamenco historical development timeline key periods",
			AnswerText: "The flamenco tradition emerged from andalusian gypsy communities during the eighteenth century.",
			Succeeded:  true,
		},
		{
			Query:      "flamenco cultural significance traditions customs",
			AnswerText: "The flamenco style spread quickly through theatrical performances in twentieth century urban cafes.",
			Succeeded:  true,
		},
	}

	report, contradicted := scoreConsistency(results, cfg)

	if report.Comparisons == 0 {
		t.Fatal("no comparisons made; claims share topic keywords and should be compared")
	}
	if len(report.Contradictions) == 0 {
		t.Fatal("divergent same-topic claims not flagged")
	}
	c := report.Contradictions[0]
	if c.Query1 == c.Query2 {
		t.Errorf("contradiction within one query: %+v", c)
	}
	if !contradicted[0] || !contradicted[1] {
		t.Errorf("contradicted set = %v, want both results", contradicted)
	}
	if report.Consistent {
		t.Errorf("Consistent = true with score %v", report.Score)
	}
}

func TestScoreConsistencyAgreementScoresOne(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	// Near-identical vocabulary across results: high overlap, no flags.
	results := []types.SearchResult{
		{
			Query:      "q1",
			AnswerText: "The flamenco tradition emerged from andalusian gypsy communities during the eighteenth century.",
			Succeeded:  true,
		},
		{
			Query:      "q2",
			AnswerText: "The flamenco tradition emerged among andalusian gypsy communities during the eighteenth century.",
			Succeeded:  true,
		},
	}

	report, contradicted := scoreConsistency(results, cfg)

	if len(report.Contradictions) != 0 {
		t.Errorf("Contradictions = %+v, want none", report.Contradictions)
	}
	if report.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", report.Score)
	}
	if !report.Consistent {
		t.Error("Consistent = false for agreeing claims")
	}
	if len(contradicted) != 0 {
		t.Errorf("contradicted = %v, want empty", contradicted)
	}
}

func TestScoreConsistencyEmptyAndFailedBatches(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	for _, results := range [][]types.SearchResult{
		nil,
		{{Query: "q", Succeeded: false, ErrorMessage: "unreachable"}},
	} {
		report, contradicted := scoreConsistency(results, cfg)
		if report.Score != 1.0 {
			t.Errorf("Score = %v for batch %v, want 1.0 (no evidence of inconsistency)", report.Score, results)
		}
		if report.Comparisons != 0 || len(contradicted) != 0 {
			t.Errorf("empty batch produced comparisons: %+v", report)
		}
	}
}

func TestScoreConsistencySingleResultNotCompared(t *testing.T) {
	cfg, err := Load("balanced")
	if err != nil {
		t.Fatal(err)
	}

	report, _ := scoreConsistency([]types.SearchResult{
		{
			Query:      "q1",
			AnswerText: "The flamenco tradition emerged from andalusian gypsy communities during the eighteenth century.",
			Succeeded:  true,
		},
	}, cfg)

	if report.Comparisons != 0 {
		t.Errorf("Comparisons = %d for a single result, want 0", report.Comparisons)
	}
	if report.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", report.Score)
	}
}
