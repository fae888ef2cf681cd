// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/deep-research/pkg/types"
)

func sampleResults() []types.SearchResult {
	return []types.SearchResult{
		{
			Query:      "autodidact etymology linguistic origin",
			AnswerText: "The word autodidact derives from Greek autodidaktos.",
			Citations: []types.Citation{
				{Title: "Etymonline", URL: "https://www.etymonline.com/word/autodidact"},
				{URL: "https://www.oed.com/dictionary/autodidact"},
			},
			Usage:     &types.TokenUsage{InputTokens: 10, OutputTokens: 120},
			Succeeded: true,
		},
		{
			Query:      "autodidact cultural significance traditions customs",
			AnswerText: "Self-taught scholars held a distinct place in many societies.",
			Citations: []types.Citation{
				// Duplicate of the first result's citation.
				{Title: "Etymonline", URL: "https://www.etymonline.com/word/autodidact"},
				{Title: "JSTOR", URL: "https://www.jstor.org/stable/42"},
			},
			Usage:     &types.TokenUsage{InputTokens: 12, OutputTokens: 90},
			Succeeded: true,
		},
		{
			Query:        "autodidact historical development timeline key periods",
			Succeeded:    false,
			ErrorMessage: "timeout",
		},
	}
}

func TestSynthesizeCategorizesByQuery(t *testing.T) {
	report := Synthesize("autodidact etymology", "sonar", sampleResults())

	if len(report.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2 (failed result excluded)", len(report.Sections))
	}
	if report.Sections[0].Category != "etymology" || report.Sections[1].Category != "cultural" {
		t.Errorf("section order = %q, %q; want etymology, cultural",
			report.Sections[0].Category, report.Sections[1].Category)
	}
}

func TestSynthesizeDeduplicatesCitations(t *testing.T) {
	report := Synthesize("autodidact etymology", "sonar", sampleResults())

	if len(report.Citations) != 3 {
		t.Fatalf("len(Citations) = %d, want 3 (duplicate removed)", len(report.Citations))
	}
	// First-seen order preserved.
	if report.Citations[0].URL != "https://www.etymonline.com/word/autodidact" {
		t.Errorf("Citations[0] = %+v, want the first-seen etymonline citation", report.Citations[0])
	}
	if report.Citations[2].Title != "JSTOR" {
		t.Errorf("Citations[2] = %+v, want JSTOR last", report.Citations[2])
	}
}

func TestSynthesizeSummaryAndUsage(t *testing.T) {
	report := Synthesize("autodidact etymology", "sonar", sampleResults())

	if !strings.Contains(report.Summary, "Etymology:") || !strings.Contains(report.Summary, "Cultural:") {
		t.Errorf("Summary = %q, want excerpts from both non-empty buckets", report.Summary)
	}
	if report.TotalUsage.InputTokens != 22 || report.TotalUsage.OutputTokens != 210 {
		t.Errorf("TotalUsage = %+v, want 22 in / 210 out", report.TotalUsage)
	}
}

func TestSynthesizeEmptyBatch(t *testing.T) {
	report := Synthesize("q", "sonar", nil)

	if len(report.Sections) != 0 || len(report.Citations) != 0 || report.Summary != "" {
		t.Errorf("empty batch produced content: %+v", report)
	}
}

func TestSynthesizeAllFailedBatch(t *testing.T) {
	results := []types.SearchResult{
		{Query: "q1", Succeeded: false, ErrorMessage: "unreachable"},
		{Query: "q2", Succeeded: false, ErrorMessage: "unreachable"},
	}
	report := Synthesize("q", "sonar", results)

	if len(report.Sections) != 0 || report.Summary != "" {
		t.Errorf("all-failed batch produced content: %+v", report)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"autodidact etymology linguistic origin", "etymology"},
		{"flamenco cultural significance customs", "cultural"},
		{"siesta historical development timeline", "historical"},
		{"sobremesa modern usage today", "modern"},
		{"sobremesa overview academic perspectives", "interdisciplinary"},
	}
	for _, tt := range tests {
		if got := categorize(tt.query); got != tt.want {
			t.Errorf("categorize(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestReportFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")

	syn := Synthesize("autodidact etymology", "sonar", sampleResults())
	ver := types.VerificationReport{
		Preset: "balanced",
		Confidence: types.ConfidenceReport{
			Overall: 0.7,
			Label:   types.ConfidenceGood,
		},
		Hallucination: types.HallucinationReport{
			RiskLevel: types.RiskLow,
			Score:     0.1,
		},
	}

	if err := WriteReportFile(path, syn, ver); err != nil {
		t.Fatalf("WriteReportFile: %v", err)
	}
	rf, err := ReadReportFile(path)
	if err != nil {
		t.Fatalf("ReadReportFile: %v", err)
	}

	if rf.Synthesis.Question != syn.Question {
		t.Errorf("round-trip question = %q, want %q", rf.Synthesis.Question, syn.Question)
	}
	if rf.Verification.Confidence.Overall != 0.7 {
		t.Errorf("round-trip confidence = %v, want 0.7", rf.Verification.Confidence.Overall)
	}
	if len(rf.Synthesis.Citations) != len(syn.Citations) {
		t.Errorf("round-trip citations = %d, want %d", len(rf.Synthesis.Citations), len(syn.Citations))
	}
}

func TestFormatReport(t *testing.T) {
	var buf bytes.Buffer
	syn := Synthesize("autodidact etymology", "sonar", sampleResults())
	ver := types.VerificationReport{
		Preset:        "balanced",
		Confidence:    types.ConfidenceReport{Overall: 0.7, Label: types.ConfidenceGood},
		Hallucination: types.HallucinationReport{RiskLevel: types.RiskLow, Score: 0.1},
	}

	FormatReport(syn, ver, &buf)
	out := buf.String()

	for _, want := range []string{"autodidact etymology", "good", "low", "[etymology]", "Sources (3)", "Tokens: 22 in / 210 out"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatReport output missing %q:\n%s", want, out)
		}
	}
}

func TestExcerptTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes with no spaces: the byte window bisects a rune.
	unbroken := strings.Repeat("語", 100)
	got := excerpt(unbroken)
	if !utf8.ValidString(got) {
		t.Fatalf("excerpt produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt %q missing ellipsis", got)
	}
	if len(got) > excerptLength+len("...") {
		t.Errorf("excerpt is %d bytes, want at most %d", len(got), excerptLength+len("..."))
	}
}

func TestExcerptPrefersWordBoundary(t *testing.T) {
	spaced := strings.TrimSpace(strings.Repeat("palabra ", 40))
	got := excerpt(spaced)
	if !strings.HasSuffix(got, "palabra...") {
		t.Errorf("excerpt %q should cut at a whole word", got)
	}
	if len(got) > excerptLength+len("...") {
		t.Errorf("excerpt is %d bytes, want at most %d", len(got), excerptLength+len("..."))
	}
}
