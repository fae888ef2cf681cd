// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/pkg/types"
)

// ReportFile is the on-disk representation of one completed research
// request: the synthesized content plus the verification scores that
// accompany it. Downstream presentation tooling consumes this file; the
// core only guarantees it is fully populated and serializable.
type ReportFile struct {
	Synthesis    types.SynthesizedReport  `yaml:"synthesis"`
	Verification types.VerificationReport `yaml:"verification"`
}

// WriteReportFile saves a combined report to a YAML file.
func WriteReportFile(path string, synthesis types.SynthesizedReport, verification types.VerificationReport) error {
	data, err := yaml.Marshal(&ReportFile{
		Synthesis:    synthesis,
		Verification: verification,
	})
	if err != nil {
		return fmt.Errorf("marshaling report file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReportFile loads a previously saved report file from disk.
func ReadReportFile(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &rf, nil
}

// FormatReport writes a human-readable rendering of the combined report
// to w: verification verdicts first, then each section's excerpted
// content and the deduplicated source list.
func FormatReport(synthesis types.SynthesizedReport, verification types.VerificationReport, w io.Writer) {
	fmt.Fprintf(w, "Research: %s\n", synthesis.Question)
	fmt.Fprintln(w, strings.Repeat("-", 72))

	fmt.Fprintf(w, "Confidence: %.2f (%s)    Hallucination risk: %s (%.2f)    Consistency: %.2f\n",
		verification.Confidence.Overall, verification.Confidence.Label,
		verification.Hallucination.RiskLevel, verification.Hallucination.Score,
		verification.SelfConsistency.Score)
	fmt.Fprintf(w, "Claims verified: %d/%d    Preset: %s\n\n",
		verification.CitationGrounding.VerifiedClaims,
		verification.CitationGrounding.TotalClaims,
		verification.Preset)

	if synthesis.Summary != "" {
		fmt.Fprintln(w, synthesis.Summary)
		fmt.Fprintln(w)
	}

	for _, section := range synthesis.Sections {
		fmt.Fprintf(w, "[%s] %d result(s)\n", section.Category, len(section.Results))
	}

	if len(synthesis.Citations) > 0 {
		fmt.Fprintf(w, "\nSources (%d):\n", len(synthesis.Citations))
		for i, c := range synthesis.Citations {
			if c.Title != "" {
				fmt.Fprintf(w, "  %2d. %s  %s\n", i+1, c.Title, c.URL)
			} else {
				fmt.Fprintf(w, "  %2d. %s\n", i+1, c.URL)
			}
		}
	}

	if synthesis.TotalUsage != (types.TokenUsage{}) {
		fmt.Fprintf(w, "\nTokens: %d in / %d out\n",
			synthesis.TotalUsage.InputTokens, synthesis.TotalUsage.OutputTokens)
	}
}
