// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"github.com/pdiddy/deep-research/pkg/types"
)

// Run executes the four scorers over the result batch and assembles the
// VerificationReport. It never fails: a batch containing zero, some, or
// all failed results yields a fully populated report -- zero confidence
// and high risk in the all-failed case -- rather than an error (R6.1).
//
// Run reads the result slice but never writes to it, and it shares no
// state between invocations, so independent batches are safe to score
// concurrently.
func Run(results []types.SearchResult, cfg Config) types.VerificationReport {
	grounding, details := scoreGrounding(results, cfg)
	consistency, contradicted := scoreConsistency(results, cfg)
	hallucination := scoreHallucination(results, details, contradicted, cfg)
	confidence := scoreConfidence(results, details, cfg)

	return types.VerificationReport{
		CitationGrounding: grounding,
		SelfConsistency:   consistency,
		Hallucination:     hallucination,
		Confidence:        confidence,
		Preset:            cfg.Preset,
	}
}
