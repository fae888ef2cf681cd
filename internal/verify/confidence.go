// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// technicalTermMinLength: tokens at least this long are counted as
// technical terminology by the quality factor. A crude lexical proxy, but
// answers rich in domain vocabulary (e.g. "reconstruction",
// "morphological") reliably clear it while filler prose does not.
const technicalTermMinLength = 10

// scoreConfidence computes the composite per-result confidence
// (citation, quality, and verification factors under configured weights)
// and the batch mean (R4.1-R4.5). Failed results score zero and are
// excluded from the mean; a batch with no successful results has overall
// confidence zero.
func scoreConfidence(results []types.SearchResult, details []groundingDetail, cfg Config) types.ConfidenceReport {
	cc := cfg.Confidence

	report := types.ConfidenceReport{
		PerQuery: make([]types.QueryConfidence, 0, len(results)),
	}

	var sum float64
	succeeded := 0
	for i, r := range results {
		score := 0.0
		if r.Succeeded && r.AnswerText != "" {
			score = resultConfidence(r, details[i], cc)
			sum += score
			succeeded++
		}
		report.PerQuery = append(report.PerQuery, types.QueryConfidence{
			Query: r.Query,
			Score: score,
		})
	}

	if succeeded > 0 {
		report.Overall = clamp01(sum / float64(succeeded))
	}
	report.Label = labelFor(report.Overall, cfg.Thresholds)
	return report
}

// resultConfidence combines the three factors for one successful result.
func resultConfidence(r types.SearchResult, d groundingDetail, cc ConfidenceConfig) float64 {
	citationFactor := float64(len(r.Citations)) / float64(cc.MinCitationsForMax)
	if citationFactor > 1 {
		citationFactor = 1
	}

	score := cc.CitationWeight*citationFactor +
		cc.QualityWeight*qualityFactor(r.AnswerText, cc) +
		cc.VerificationWeight*d.rate

	return clamp01(score)
}

// qualityFactor rewards answers whose length falls in the configured word
// range and whose technical-term density clears MinTechnicalTerms (terms
// per 100 words). Length contributes 70%, terminology 30%.
func qualityFactor(text string, cc ConfidenceConfig) float64 {
	words := wordCount(text)

	var lengthScore float64
	switch {
	case words >= cc.QualityLengthShort && words <= cc.QualityLengthLong:
		lengthScore = 1.0
	case words < cc.QualityLengthShort:
		lengthScore = float64(words) / float64(cc.QualityLengthShort)
	default:
		// Over-long answers taper but never score below a rambling floor.
		lengthScore = 0.7
	}

	techScore := 1.0
	if cc.MinTechnicalTerms > 0 && words > 0 {
		density := float64(technicalTermCount(text)) / float64(words) * 100
		if density < cc.MinTechnicalTerms {
			techScore = density / cc.MinTechnicalTerms
		}
	}

	return clamp01(0.7*lengthScore + 0.3*techScore)
}

// technicalTermCount counts long word-like tokens in text.
func technicalTermCount(text string) int {
	n := 0
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) >= technicalTermMinLength {
			n++
		}
	}
	return n
}

// labelFor maps overall confidence to its band by descending checks (R4.5).
func labelFor(overall float64, t ThresholdsConfig) types.ConfidenceLabel {
	switch {
	case overall >= t.Excellent:
		return types.ConfidenceExcellent
	case overall >= t.Good:
		return types.ConfidenceGood
	case overall >= t.Fair:
		return types.ConfidenceFair
	default:
		return types.ConfidencePoor
	}
}
