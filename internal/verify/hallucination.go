// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/deep-research/pkg/types"
)

// lowDensityCutoff is the citation density (citations per 100 words)
// below which the no-citations penalty applies.
const lowDensityCutoff = 1.0

// crossVerificationSaturation is the citation count at which the
// cross-verification signal saturates.
const crossVerificationSaturation = 20

// vaguePhrases is the fixed hedging vocabulary counted by the
// vague-language signal (R3.2).
var vaguePhrases = []string{
	"some believe", "some say", "it is said", "it is believed",
	"many think", "possibly", "perhaps", "might be", "could be",
	"may have been", "allegedly", "reportedly", "arguably",
	"it seems", "appears to",
}

// academicSuffixes and academicHosts form the source-authority allow-list:
// institutional TLDs plus known scholarly publishers (R3.3).
var academicSuffixes = []string{".edu", ".gov", ".ac.uk"}

var academicHosts = map[string]bool{
	"jstor.org":         true,
	"springer.com":      true,
	"link.springer.com": true,
	"nature.com":        true,
	"sciencedirect.com": true,
	"wiley.com":         true,
	"cambridge.org":     true,
	"academic.oup.com":  true,
	"oup.com":           true,
	"tandfonline.com":   true,
	"sagepub.com":       true,
	"arxiv.org":         true,
	"doi.org":           true,
	"etymonline.com":    true,
	"oed.com":           true,
}

// scoreHallucination computes the heuristic risk score for each successful
// result: additive penalty weights for low citation density, hedging
// language, unsupported claims, and contradiction participation, with the
// sum clamped to [0,1] (R3.1-R3.5). The weights are not normalized; the
// additive clamped behavior is deliberate.
//
// A batch with no successful results scores 1.0 and classifies high.
func scoreHallucination(results []types.SearchResult, details []groundingDetail, contradicted map[int]bool, cfg Config) types.HallucinationReport {
	hc := cfg.Hallucination

	var riskSum float64
	scored := 0
	var flagged []types.FlaggedResult

	for i, r := range results {
		if !r.Succeeded || r.AnswerText == "" {
			continue
		}
		scored++

		var risk float64
		var indicators []string

		words := wordCount(r.AnswerText)
		density := 0.0
		if words > 0 {
			density = float64(len(r.Citations)) / float64(words) * 100
		}
		if density < lowDensityCutoff {
			risk += hc.NoCitationsWeight
			indicators = append(indicators,
				fmt.Sprintf("low citation density (%.2f per 100 words)", density))
		}

		if n := vagueCount(r.AnswerText); n > hc.VagueLanguageThreshold {
			risk += hc.VagueLanguageWeight
			indicators = append(indicators,
				fmt.Sprintf("vague language (%d hedging phrases)", n))
		}

		d := details[i]
		if d.totalClaims > 0 {
			unsupported := 1.0 - d.rate
			if unsupported > hc.UnsupportedClaimsThreshold {
				risk += hc.UnsupportedClaimsWeight
				indicators = append(indicators,
					fmt.Sprintf("unsupported claims (%.0f%% unverified)", unsupported*100))
			}
		}

		if contradicted[i] {
			risk += hc.InconsistentFactsWeight
			indicators = append(indicators, "participated in a flagged contradiction")
		}

		risk = clamp01(risk)
		riskSum += risk

		if classifyRisk(risk, hc) == types.RiskHigh {
			// Informational signals for the flagged entry.
			authority := sourceAuthority(r.Citations)
			crossVerification := float64(len(r.Citations)) / crossVerificationSaturation
			if crossVerification > 1 {
				crossVerification = 1
			}
			indicators = append(indicators,
				fmt.Sprintf("source authority %s (%.2f academic)", authorityBand(authority), authority),
				fmt.Sprintf("cross-verification %.2f", crossVerification))
			flagged = append(flagged, types.FlaggedResult{
				Query:      r.Query,
				Score:      risk,
				Indicators: indicators,
			})
		}
	}

	report := types.HallucinationReport{Flagged: flagged}
	if scored == 0 {
		report.Score = 1.0
	} else {
		report.Score = riskSum / float64(scored)
	}
	report.RiskLevel = classifyRisk(report.Score, hc)
	return report
}

// classifyRisk maps a risk score to a level (R3.4).
func classifyRisk(score float64, hc HallucinationConfig) types.RiskLevel {
	switch {
	case score <= hc.LowRiskThreshold:
		return types.RiskLow
	case score <= hc.MediumRiskThreshold:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

// vagueCount counts occurrences of hedging phrases in text.
func vagueCount(text string) int {
	folded := strings.ToLower(text)
	n := 0
	for _, phrase := range vaguePhrases {
		n += strings.Count(folded, phrase)
	}
	return n
}

// sourceAuthority returns the fraction of citations whose domain matches
// the academic allow-list. Citations with unparsable URLs count in the
// denominator but never the numerator: unknown authority is not academic
// authority.
func sourceAuthority(citations []types.Citation) float64 {
	if len(citations) == 0 {
		return 0
	}
	academic := 0
	for _, c := range citations {
		if isAcademicDomain(c.URL) {
			academic++
		}
	}
	return float64(academic) / float64(len(citations))
}

// authorityBand classifies an authority fraction: low (<0.4),
// medium (<0.7), high (>=0.7).
func authorityBand(fraction float64) string {
	switch {
	case fraction >= 0.7:
		return "high"
	case fraction >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// isAcademicDomain reports whether rawURL's host matches the allow-list.
func isAcademicDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	if academicHosts[host] {
		return true
	}
	for _, suffix := range academicSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	// Subdomains of allow-listed publishers count as well.
	for allowed := range academicHosts {
		if strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
