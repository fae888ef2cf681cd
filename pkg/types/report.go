// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RiskLevel classifies the hallucination risk of a result set.
// Per prd003-verification R3.4.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ConfidenceLabel maps an overall confidence score to a human-readable band.
// Per prd003-verification R4.5.
type ConfidenceLabel string

const (
	ConfidenceExcellent ConfidenceLabel = "excellent"
	ConfidenceGood      ConfidenceLabel = "good"
	ConfidenceFair      ConfidenceLabel = "fair"
	ConfidencePoor      ConfidenceLabel = "poor"
)

// UnverifiedClaim records a claim whose keyword overlap with the result's
// citations fell below the grounding threshold.
type UnverifiedClaim struct {
	// Query is the planned query whose answer contained the claim.
	Query string `json:"query" yaml:"query"`

	// Claim is the sentence that failed verification.
	Claim string `json:"claim" yaml:"claim"`

	// Overlap is the best keyword overlap achieved against any citation.
	Overlap float64 `json:"overlap" yaml:"overlap"`
}

// CitationGroundingReport aggregates claim verification across all results.
// Per prd003-verification R1.5-R1.6.
type CitationGroundingReport struct {
	// TotalClaims is the number of claims analyzed across all results.
	TotalClaims int `json:"total_claims" yaml:"total_claims"`

	// VerifiedClaims is the number of claims meeting the overlap threshold.
	VerifiedClaims int `json:"verified_claims" yaml:"verified_claims"`

	// Rate is VerifiedClaims / TotalClaims, or 0 when no claims were found.
	Rate float64 `json:"rate" yaml:"rate"`

	// WellGrounded reports whether Rate meets the verification threshold.
	WellGrounded bool `json:"well_grounded" yaml:"well_grounded"`

	// PerQuery maps each query to its own verification rate.
	PerQuery map[string]float64 `json:"per_query,omitempty" yaml:"per_query,omitempty"`

	// Unverified details the claims that failed verification.
	Unverified []UnverifiedClaim `json:"unverified,omitempty" yaml:"unverified,omitempty"`
}

// Contradiction records two same-topic claims from different queries whose
// keyword overlap diverged below the similarity threshold.
type Contradiction struct {
	Topic      string `json:"topic" yaml:"topic"`
	Query1     string `json:"query1" yaml:"query1"`
	Query2     string `json:"query2" yaml:"query2"`
	Difference string `json:"difference" yaml:"difference"`
}

// SelfConsistencyReport summarizes cross-result agreement.
// Per prd003-verification R2.4-R2.5.
type SelfConsistencyReport struct {
	// Score is 1 - contradictions/comparisons, clamped to [0,1].
	Score float64 `json:"score" yaml:"score"`

	// Consistent reports whether Score meets the consistency threshold.
	Consistent bool `json:"consistent" yaml:"consistent"`

	// Comparisons is the number of same-topic claim pairs examined.
	Comparisons int `json:"comparisons" yaml:"comparisons"`

	// Contradictions lists the flagged divergences.
	Contradictions []Contradiction `json:"contradictions,omitempty" yaml:"contradictions,omitempty"`
}

// FlaggedResult is a result classified as high hallucination risk, with the
// indicators that contributed to its score.
type FlaggedResult struct {
	Query      string   `json:"query" yaml:"query"`
	Score      float64  `json:"score" yaml:"score"`
	Indicators []string `json:"indicators" yaml:"indicators"`
}

// HallucinationReport summarizes the heuristic risk signals for the batch.
// Risk is an estimate from surface signals, not a semantic truth check.
type HallucinationReport struct {
	// RiskLevel is the classification of Score.
	RiskLevel RiskLevel `json:"risk_level" yaml:"risk_level"`

	// Score is the mean per-result risk, in [0,1].
	Score float64 `json:"score" yaml:"score"`

	// Flagged lists results individually classified high risk.
	Flagged []FlaggedResult `json:"flagged,omitempty" yaml:"flagged,omitempty"`
}

// QueryConfidence is the confidence score for one result.
type QueryConfidence struct {
	Query string  `json:"query" yaml:"query"`
	Score float64 `json:"score" yaml:"score"`
}

// ConfidenceReport summarizes per-result and overall confidence.
// Per prd003-verification R4.4-R4.5.
type ConfidenceReport struct {
	// Overall is the mean confidence across successful results, in [0,1].
	Overall float64 `json:"overall" yaml:"overall"`

	// Label is the band Overall falls into.
	Label ConfidenceLabel `json:"label" yaml:"label"`

	// PerQuery lists per-result confidence in plan order.
	PerQuery []QueryConfidence `json:"per_query,omitempty" yaml:"per_query,omitempty"`
}

// VerificationReport is the terminal output of the verification engine.
// It is write-once: the engine returns it fully populated and no later
// stage modifies it.
type VerificationReport struct {
	CitationGrounding CitationGroundingReport `json:"citation_grounding" yaml:"citation_grounding"`
	SelfConsistency   SelfConsistencyReport   `json:"self_consistency" yaml:"self_consistency"`
	Hallucination     HallucinationReport     `json:"hallucination" yaml:"hallucination"`
	Confidence        ConfidenceReport        `json:"confidence" yaml:"confidence"`

	// Preset names the verification preset the scores were computed under.
	Preset string `json:"preset" yaml:"preset"`
}

// CategorySection groups the results that fell into one topic bucket.
// Sections appear in fixed bucket order; empty buckets are omitted.
type CategorySection struct {
	// Category is the bucket name: etymology, cultural, historical,
	// modern, or interdisciplinary.
	Category string `json:"category" yaml:"category"`

	// Results lists the bucket's results in execution order.
	Results []SearchResult `json:"results" yaml:"results"`
}

// SynthesizedReport is the terminal output of the synthesizer.
// Per prd004-synthesis R1-R4.
type SynthesizedReport struct {
	// Question is the original research question.
	Question string `json:"question" yaml:"question"`

	// GeneratedAt is when synthesis ran.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Model is the answer model that produced the underlying results.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Sections holds the categorized content.
	Sections []CategorySection `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Citations is the deduplicated union of all result citations,
	// first-seen order preserved.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Summary is a short narrative assembled from each non-empty section.
	Summary string `json:"summary" yaml:"summary"`

	// TotalUsage sums token usage across all successful calls.
	TotalUsage TokenUsage `json:"total_usage" yaml:"total_usage"`
}
