// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify scores a batch of search results for trustworthiness:
// citation grounding, cross-result self-consistency, hallucination risk,
// and composite confidence. All scorers are pure functions over an
// immutable result slice; none of them performs I/O.
// Implements: prd003-verification (R1-R4);
//
//	docs/ARCHITECTURE § Verification.
package verify

import (
	"regexp"
	"strings"
)

// sentenceSplitRe breaks answer text into candidate sentences. Splitting
// on terminal punctuation is deliberately naive; claims are lexical units
// for overlap scoring, not parsed propositions.
var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+|[.!?]+$|\n+`)

// tokenRe matches word-like tokens, including hyphenated forms.
var tokenRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9-]*`)

// splitSentences returns the trimmed non-empty sentences of text.
func splitSentences(text string) []string {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// extractClaims returns the sentences of text longer than minClaimLength
// characters, capped at maxClaims (R1.1, R1.2).
func extractClaims(text string, minClaimLength, maxClaims int) []string {
	var claims []string
	for _, s := range splitSentences(text) {
		if len(s) <= minClaimLength {
			continue
		}
		claims = append(claims, s)
		if maxClaims > 0 && len(claims) >= maxClaims {
			break
		}
	}
	return claims
}

// keywordSet returns the lower-cased tokens of s at least minLen runes
// long. Tokens shorter than minLen carry too little signal for lexical
// overlap (R1.3).
func keywordSet(s string, minLen int) map[string]bool {
	kw := make(map[string]bool)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		if len(tok) >= minLen {
			kw[tok] = true
		}
	}
	return kw
}

// overlap computes |claim ∩ source| / |claim|, the fraction of claim
// keywords that appear in the source set. Returns 0 for an empty claim set.
func overlap(claim, source map[string]bool) float64 {
	if len(claim) == 0 {
		return 0
	}
	shared := 0
	for k := range claim {
		if source[k] {
			shared++
		}
	}
	return float64(shared) / float64(len(claim))
}

// wordCount returns the number of whitespace-separated words in s.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
