// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"sort"
	"strings"
)

// CitationGroundingConfig parameterizes the claim verification scorer (R1).
type CitationGroundingConfig struct {
	// MinKeywordOverlap is the claim/citation overlap required to mark a
	// claim verified, in [0,1].
	MinKeywordOverlap float64 `json:"min_keyword_overlap" yaml:"min_keyword_overlap"`

	// MinKeywordLength is the minimum token length counted as a keyword.
	MinKeywordLength int `json:"min_keyword_length" yaml:"min_keyword_length"`

	// MinClaimLength is the minimum sentence length (characters) treated
	// as a claim.
	MinClaimLength int `json:"min_claim_length" yaml:"min_claim_length"`

	// MaxClaimsToAnalyze caps claims examined per result.
	MaxClaimsToAnalyze int `json:"max_claims_to_analyze" yaml:"max_claims_to_analyze"`

	// VerificationThreshold is the per-result verified-claim rate required
	// to consider a result well-grounded, in [0,1].
	VerificationThreshold float64 `json:"verification_threshold" yaml:"verification_threshold"`
}

// SelfConsistencyConfig parameterizes the cross-result agreement scorer (R2).
type SelfConsistencyConfig struct {
	// MinSimilarity is the overlap below which two same-topic claims are
	// flagged as contradictory, in [0,1].
	MinSimilarity float64 `json:"min_similarity" yaml:"min_similarity"`

	// MinQueryGroupSize is the number of distinct results a topic must
	// span before its claims are compared.
	MinQueryGroupSize int `json:"min_query_group_size" yaml:"min_query_group_size"`

	// ConsistencyThreshold is the score at or above which the batch is
	// reported consistent, in [0,1].
	ConsistencyThreshold float64 `json:"consistency_threshold" yaml:"consistency_threshold"`
}

// HallucinationConfig parameterizes the risk scorer (R3). Penalty weights
// are applied additively and the sum is clamped to [0,1]; they are not
// required to sum to 1.
type HallucinationConfig struct {
	// NoCitationsWeight penalizes low citation density.
	NoCitationsWeight float64 `json:"no_citations_weight" yaml:"no_citations_weight"`

	// VagueLanguageWeight penalizes hedging-phrase counts above
	// VagueLanguageThreshold.
	VagueLanguageWeight float64 `json:"vague_language_weight" yaml:"vague_language_weight"`

	// UnsupportedClaimsWeight penalizes unverified-claim ratios above
	// UnsupportedClaimsThreshold.
	UnsupportedClaimsWeight float64 `json:"unsupported_claims_weight" yaml:"unsupported_claims_weight"`

	// InconsistentFactsWeight penalizes participation in a flagged
	// contradiction.
	InconsistentFactsWeight float64 `json:"inconsistent_facts_weight" yaml:"inconsistent_facts_weight"`

	// VagueLanguageThreshold is the hedging-phrase count above which the
	// vague-language penalty applies.
	VagueLanguageThreshold int `json:"vague_language_threshold" yaml:"vague_language_threshold"`

	// UnsupportedClaimsThreshold is the unverified-claim ratio above which
	// the unsupported-claims penalty applies, in [0,1].
	UnsupportedClaimsThreshold float64 `json:"unsupported_claims_threshold" yaml:"unsupported_claims_threshold"`

	// LowRiskThreshold and MediumRiskThreshold classify the risk score:
	// <= low -> "low", <= medium -> "medium", else "high". Must be
	// strictly ascending.
	LowRiskThreshold    float64 `json:"low_risk_threshold" yaml:"low_risk_threshold"`
	MediumRiskThreshold float64 `json:"medium_risk_threshold" yaml:"medium_risk_threshold"`
}

// ConfidenceConfig parameterizes the composite confidence scorer (R4).
type ConfidenceConfig struct {
	// CitationWeight, QualityWeight, and VerificationWeight combine the
	// three confidence factors. Each must lie in [0,1].
	CitationWeight     float64 `json:"citation_weight" yaml:"citation_weight"`
	QualityWeight      float64 `json:"quality_weight" yaml:"quality_weight"`
	VerificationWeight float64 `json:"verification_weight" yaml:"verification_weight"`

	// MinCitationsForMax is the citation count at which the citation
	// factor saturates at 1.
	MinCitationsForMax int `json:"min_citations_for_max" yaml:"min_citations_for_max"`

	// QualityLengthShort and QualityLengthLong bound the answer word
	// count range rewarded by the quality factor.
	QualityLengthShort int `json:"quality_length_short" yaml:"quality_length_short"`
	QualityLengthLong  int `json:"quality_length_long" yaml:"quality_length_long"`

	// MinTechnicalTerms is the technical-term density (terms per 100
	// words) at which the quality factor's terminology bonus saturates.
	MinTechnicalTerms float64 `json:"min_technical_terms" yaml:"min_technical_terms"`
}

// ThresholdsConfig maps overall confidence to a label. The triple must be
// strictly ascending: fair < good < excellent.
type ThresholdsConfig struct {
	Fair      float64 `json:"fair" yaml:"fair"`
	Good      float64 `json:"good" yaml:"good"`
	Excellent float64 `json:"excellent" yaml:"excellent"`
}

// Config is the full verification configuration. It contains only scalar
// fields, so assignment copies deeply: handing a Config to a caller can
// never alias a stored preset.
type Config struct {
	// Preset names the preset this configuration started from.
	Preset string `json:"preset" yaml:"preset"`

	CitationGrounding CitationGroundingConfig `json:"citation_grounding" yaml:"citation_grounding"`
	SelfConsistency   SelfConsistencyConfig   `json:"self_consistency" yaml:"self_consistency"`
	Hallucination     HallucinationConfig     `json:"hallucination" yaml:"hallucination"`
	Confidence        ConfidenceConfig        `json:"confidence" yaml:"confidence"`
	Thresholds        ThresholdsConfig        `json:"thresholds" yaml:"thresholds"`
}

// presets holds the named preset templates. Load returns copies; nothing
// ever writes back into this map.
var presets = map[string]Config{
	"balanced": {
		Preset: "balanced",
		CitationGrounding: CitationGroundingConfig{
			MinKeywordOverlap:     0.3,
			MinKeywordLength:      4,
			MinClaimLength:        50,
			MaxClaimsToAnalyze:    10,
			VerificationThreshold: 0.6,
		},
		SelfConsistency: SelfConsistencyConfig{
			MinSimilarity:        0.3,
			MinQueryGroupSize:    2,
			ConsistencyThreshold: 0.7,
		},
		Hallucination: HallucinationConfig{
			NoCitationsWeight:          0.3,
			VagueLanguageWeight:        0.2,
			UnsupportedClaimsWeight:    0.3,
			InconsistentFactsWeight:    0.2,
			VagueLanguageThreshold:     3,
			UnsupportedClaimsThreshold: 0.5,
			LowRiskThreshold:           0.3,
			MediumRiskThreshold:        0.6,
		},
		Confidence: ConfidenceConfig{
			CitationWeight:     0.4,
			QualityWeight:      0.3,
			VerificationWeight: 0.3,
			MinCitationsForMax: 10,
			QualityLengthShort: 50,
			QualityLengthLong:  500,
			MinTechnicalTerms:  2,
		},
		Thresholds: ThresholdsConfig{Fair: 0.5, Good: 0.65, Excellent: 0.8},
	},
	"strict": {
		Preset: "strict",
		CitationGrounding: CitationGroundingConfig{
			MinKeywordOverlap:     0.4,
			MinKeywordLength:      4,
			MinClaimLength:        40,
			MaxClaimsToAnalyze:    15,
			VerificationThreshold: 0.75,
		},
		SelfConsistency: SelfConsistencyConfig{
			MinSimilarity:        0.4,
			MinQueryGroupSize:    2,
			ConsistencyThreshold: 0.85,
		},
		Hallucination: HallucinationConfig{
			NoCitationsWeight:          0.35,
			VagueLanguageWeight:        0.25,
			UnsupportedClaimsWeight:    0.35,
			InconsistentFactsWeight:    0.25,
			VagueLanguageThreshold:     2,
			UnsupportedClaimsThreshold: 0.3,
			LowRiskThreshold:           0.2,
			MediumRiskThreshold:        0.4,
		},
		Confidence: ConfidenceConfig{
			CitationWeight:     0.45,
			QualityWeight:      0.2,
			VerificationWeight: 0.35,
			MinCitationsForMax: 15,
			QualityLengthShort: 80,
			QualityLengthLong:  600,
			MinTechnicalTerms:  3,
		},
		Thresholds: ThresholdsConfig{Fair: 0.6, Good: 0.75, Excellent: 0.9},
	},
	"lenient": {
		Preset: "lenient",
		CitationGrounding: CitationGroundingConfig{
			MinKeywordOverlap:     0.2,
			MinKeywordLength:      4,
			MinClaimLength:        60,
			MaxClaimsToAnalyze:    8,
			VerificationThreshold: 0.4,
		},
		SelfConsistency: SelfConsistencyConfig{
			MinSimilarity:        0.2,
			MinQueryGroupSize:    3,
			ConsistencyThreshold: 0.5,
		},
		Hallucination: HallucinationConfig{
			NoCitationsWeight:          0.25,
			VagueLanguageWeight:        0.15,
			UnsupportedClaimsWeight:    0.25,
			InconsistentFactsWeight:    0.15,
			VagueLanguageThreshold:     5,
			UnsupportedClaimsThreshold: 0.7,
			LowRiskThreshold:           0.4,
			MediumRiskThreshold:        0.7,
		},
		Confidence: ConfidenceConfig{
			CitationWeight:     0.4,
			QualityWeight:      0.35,
			VerificationWeight: 0.25,
			MinCitationsForMax: 5,
			QualityLengthShort: 30,
			QualityLengthLong:  800,
			MinTechnicalTerms:  1,
		},
		Thresholds: ThresholdsConfig{Fair: 0.35, Good: 0.5, Excellent: 0.65},
	},
	"fast": {
		Preset: "fast",
		CitationGrounding: CitationGroundingConfig{
			MinKeywordOverlap:     0.3,
			MinKeywordLength:      4,
			MinClaimLength:        80,
			MaxClaimsToAnalyze:    3,
			VerificationThreshold: 0.5,
		},
		SelfConsistency: SelfConsistencyConfig{
			MinSimilarity:        0.3,
			MinQueryGroupSize:    3,
			ConsistencyThreshold: 0.6,
		},
		Hallucination: HallucinationConfig{
			NoCitationsWeight:          0.3,
			VagueLanguageWeight:        0.2,
			UnsupportedClaimsWeight:    0.3,
			InconsistentFactsWeight:    0.2,
			VagueLanguageThreshold:     4,
			UnsupportedClaimsThreshold: 0.6,
			LowRiskThreshold:           0.35,
			MediumRiskThreshold:        0.65,
		},
		Confidence: ConfidenceConfig{
			CitationWeight:     0.5,
			QualityWeight:      0.25,
			VerificationWeight: 0.25,
			MinCitationsForMax: 8,
			QualityLengthShort: 40,
			QualityLengthLong:  600,
			MinTechnicalTerms:  2,
		},
		Thresholds: ThresholdsConfig{Fair: 0.45, Good: 0.6, Excellent: 0.75},
	},
	// etymology is tuned for humanities sources, which cite sparsely
	// compared to the sciences: the citation factor saturates earlier and
	// shorter answers still score well.
	"etymology": {
		Preset: "etymology",
		CitationGrounding: CitationGroundingConfig{
			MinKeywordOverlap:     0.25,
			MinKeywordLength:      4,
			MinClaimLength:        40,
			MaxClaimsToAnalyze:    12,
			VerificationThreshold: 0.5,
		},
		SelfConsistency: SelfConsistencyConfig{
			MinSimilarity:        0.25,
			MinQueryGroupSize:    2,
			ConsistencyThreshold: 0.65,
		},
		Hallucination: HallucinationConfig{
			NoCitationsWeight:          0.25,
			VagueLanguageWeight:        0.25,
			UnsupportedClaimsWeight:    0.3,
			InconsistentFactsWeight:    0.2,
			VagueLanguageThreshold:     3,
			UnsupportedClaimsThreshold: 0.5,
			LowRiskThreshold:           0.3,
			MediumRiskThreshold:        0.6,
		},
		Confidence: ConfidenceConfig{
			CitationWeight:     0.35,
			QualityWeight:      0.35,
			VerificationWeight: 0.3,
			MinCitationsForMax: 5,
			QualityLengthShort: 30,
			QualityLengthLong:  400,
			MinTechnicalTerms:  1.5,
		},
		Thresholds: ThresholdsConfig{Fair: 0.45, Good: 0.6, Excellent: 0.75},
	},
}

// PresetNames returns the valid preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns a validated copy of the named preset. An unknown name is a
// configuration error listing the valid names (R5.2).
func Load(preset string) (Config, error) {
	cfg, ok := presets[preset]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (valid presets: %s)",
			preset, strings.Join(PresetNames(), ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadWithOverrides builds a configuration from a preset and a flat map of
// dotted-path overrides (e.g. "citationGrounding.minKeywordOverlap": 0.4).
// Overrides apply to the returned copy; the preset template is never
// touched (R5.1, R5.3).
func LoadWithOverrides(preset string, overrides map[string]float64) (Config, error) {
	cfg, err := Load(preset)
	if err != nil {
		return Config{}, err
	}

	// Apply in sorted path order so error reporting is deterministic.
	paths := make([]string, 0, len(overrides))
	for p := range overrides {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := cfg.Set(p, overrides[p]); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Set assigns one leaf value by dotted path. Integer leaves truncate the
// value. Unknown paths are configuration errors.
func (c *Config) Set(path string, value float64) error {
	switch path {
	case "citationGrounding.minKeywordOverlap":
		c.CitationGrounding.MinKeywordOverlap = value
	case "citationGrounding.minKeywordLength":
		c.CitationGrounding.MinKeywordLength = int(value)
	case "citationGrounding.minClaimLength":
		c.CitationGrounding.MinClaimLength = int(value)
	case "citationGrounding.maxClaimsToAnalyze":
		c.CitationGrounding.MaxClaimsToAnalyze = int(value)
	case "citationGrounding.verificationThreshold":
		c.CitationGrounding.VerificationThreshold = value
	case "selfConsistency.minSimilarity":
		c.SelfConsistency.MinSimilarity = value
	case "selfConsistency.minQueryGroupSize":
		c.SelfConsistency.MinQueryGroupSize = int(value)
	case "selfConsistency.consistencyThreshold":
		c.SelfConsistency.ConsistencyThreshold = value
	case "hallucination.noCitationsWeight":
		c.Hallucination.NoCitationsWeight = value
	case "hallucination.vagueLanguageWeight":
		c.Hallucination.VagueLanguageWeight = value
	case "hallucination.unsupportedClaimsWeight":
		c.Hallucination.UnsupportedClaimsWeight = value
	case "hallucination.inconsistentFactsWeight":
		c.Hallucination.InconsistentFactsWeight = value
	case "hallucination.vagueLanguageThreshold":
		c.Hallucination.VagueLanguageThreshold = int(value)
	case "hallucination.unsupportedClaimsThreshold":
		c.Hallucination.UnsupportedClaimsThreshold = value
	case "hallucination.lowRiskThreshold":
		c.Hallucination.LowRiskThreshold = value
	case "hallucination.mediumRiskThreshold":
		c.Hallucination.MediumRiskThreshold = value
	case "confidence.citationWeight":
		c.Confidence.CitationWeight = value
	case "confidence.qualityWeight":
		c.Confidence.QualityWeight = value
	case "confidence.verificationWeight":
		c.Confidence.VerificationWeight = value
	case "confidence.minCitationsForMax":
		c.Confidence.MinCitationsForMax = int(value)
	case "confidence.qualityLengthShort":
		c.Confidence.QualityLengthShort = int(value)
	case "confidence.qualityLengthLong":
		c.Confidence.QualityLengthLong = int(value)
	case "confidence.minTechnicalTerms":
		c.Confidence.MinTechnicalTerms = value
	case "thresholds.fair":
		c.Thresholds.Fair = value
	case "thresholds.good":
		c.Thresholds.Good = value
	case "thresholds.excellent":
		c.Thresholds.Excellent = value
	default:
		return fmt.Errorf("unknown configuration path %q", path)
	}
	return nil
}

// Validate checks the construction-time invariants: fractional parameters
// and weights in [0,1], counts positive, and threshold triples strictly
// ascending (R5.4). Violations surface before any query executes.
func (c Config) Validate() error {
	unit := map[string]float64{
		"citationGrounding.minKeywordOverlap":      c.CitationGrounding.MinKeywordOverlap,
		"citationGrounding.verificationThreshold":  c.CitationGrounding.VerificationThreshold,
		"selfConsistency.minSimilarity":            c.SelfConsistency.MinSimilarity,
		"selfConsistency.consistencyThreshold":     c.SelfConsistency.ConsistencyThreshold,
		"hallucination.noCitationsWeight":          c.Hallucination.NoCitationsWeight,
		"hallucination.vagueLanguageWeight":        c.Hallucination.VagueLanguageWeight,
		"hallucination.unsupportedClaimsWeight":    c.Hallucination.UnsupportedClaimsWeight,
		"hallucination.inconsistentFactsWeight":    c.Hallucination.InconsistentFactsWeight,
		"hallucination.unsupportedClaimsThreshold": c.Hallucination.UnsupportedClaimsThreshold,
		"hallucination.lowRiskThreshold":           c.Hallucination.LowRiskThreshold,
		"hallucination.mediumRiskThreshold":        c.Hallucination.MediumRiskThreshold,
		"confidence.citationWeight":                c.Confidence.CitationWeight,
		"confidence.qualityWeight":                 c.Confidence.QualityWeight,
		"confidence.verificationWeight":            c.Confidence.VerificationWeight,
		"thresholds.fair":                          c.Thresholds.Fair,
		"thresholds.good":                          c.Thresholds.Good,
		"thresholds.excellent":                     c.Thresholds.Excellent,
	}
	paths := make([]string, 0, len(unit))
	for p := range unit {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if v := unit[p]; v < 0 || v > 1 {
			return fmt.Errorf("%s = %v: must be in [0,1]", p, v)
		}
	}

	counts := map[string]int{
		"citationGrounding.minKeywordLength":   c.CitationGrounding.MinKeywordLength,
		"citationGrounding.minClaimLength":     c.CitationGrounding.MinClaimLength,
		"citationGrounding.maxClaimsToAnalyze": c.CitationGrounding.MaxClaimsToAnalyze,
		"selfConsistency.minQueryGroupSize":    c.SelfConsistency.MinQueryGroupSize,
		"confidence.minCitationsForMax":        c.Confidence.MinCitationsForMax,
		"confidence.qualityLengthShort":        c.Confidence.QualityLengthShort,
		"confidence.qualityLengthLong":         c.Confidence.QualityLengthLong,
	}
	paths = paths[:0]
	for p := range counts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		if counts[p] <= 0 {
			return fmt.Errorf("%s = %d: must be a positive count", p, counts[p])
		}
	}

	if c.Hallucination.VagueLanguageThreshold < 0 {
		return fmt.Errorf("hallucination.vagueLanguageThreshold = %d: must be non-negative",
			c.Hallucination.VagueLanguageThreshold)
	}
	if !(c.Thresholds.Fair < c.Thresholds.Good && c.Thresholds.Good < c.Thresholds.Excellent) {
		return fmt.Errorf("thresholds must be strictly ascending: fair %v < good %v < excellent %v",
			c.Thresholds.Fair, c.Thresholds.Good, c.Thresholds.Excellent)
	}
	if c.Hallucination.LowRiskThreshold >= c.Hallucination.MediumRiskThreshold {
		return fmt.Errorf("hallucination risk thresholds must ascend: low %v < medium %v",
			c.Hallucination.LowRiskThreshold, c.Hallucination.MediumRiskThreshold)
	}
	if c.Confidence.QualityLengthShort >= c.Confidence.QualityLengthLong {
		return fmt.Errorf("confidence quality lengths must ascend: short %d < long %d",
			c.Confidence.QualityLengthShort, c.Confidence.QualityLengthLong)
	}
	return nil
}
