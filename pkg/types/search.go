// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the deep-research pipeline.
// Implements: prd001-planning (ConceptSet, QueryPlan);
//
//	prd002-execution (SearchResult, Citation, TokenUsage);
//	prd003-verification (VerificationReport);
//	prd004-synthesis (SynthesizedReport).
//
// See docs/ARCHITECTURE.md § Pipeline Interface, § Data Structures.
package types

// TokenUsage records token consumption reported by the answer API for one call.
type TokenUsage struct {
	// InputTokens is the number of prompt tokens billed for the request.
	InputTokens int `json:"input_tokens" yaml:"input_tokens"`

	// OutputTokens is the number of completion tokens billed for the request.
	OutputTokens int `json:"output_tokens" yaml:"output_tokens"`
}

// Add returns the element-wise sum of two usages.
func (u TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
	}
}

// Citation is a source reference attached to an answer. The answer API
// returns citations either as bare URL strings or as {title, url} objects;
// bare strings arrive here with an empty Title. A citation whose URL does
// not parse is kept and scored as authority-unknown rather than discarded.
type Citation struct {
	// Title is the source title, if the API provided one.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// URL is the source location as returned by the API.
	URL string `json:"url" yaml:"url"`
}

// Key returns the identity used for citation deduplication: the URL when
// present, otherwise the title.
func (c Citation) Key() string {
	if c.URL != "" {
		return c.URL
	}
	return c.Title
}

// SearchResult is the outcome of executing one planned query against the
// answer API. Exactly one is produced per planned query, in plan order,
// and it is never mutated after the executor records it.
type SearchResult struct {
	// Query is the planned query string that produced this result.
	Query string `json:"query" yaml:"query"`

	// AnswerText is the generated answer. Empty when the call failed.
	AnswerText string `json:"answer_text,omitempty" yaml:"answer_text,omitempty"`

	// Citations lists the sources the API attached to the answer, in API order.
	Citations []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Usage is the token accounting for the call, when the API reported it.
	Usage *TokenUsage `json:"usage,omitempty" yaml:"usage,omitempty"`

	// Succeeded reports whether the call completed and returned an answer.
	Succeeded bool `json:"succeeded" yaml:"succeeded"`

	// ErrorMessage holds the failure cause when Succeeded is false.
	ErrorMessage string `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}
