// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package planner

import (
	"strings"

	"github.com/pdiddy/deep-research/internal/concepts"
	"github.com/pdiddy/deep-research/pkg/types"
)

const (
	// DefaultMaxQueries is the plan length cap when none is configured.
	DefaultMaxQueries = 5

	// maxQueriesCeiling bounds MaxQueries regardless of configuration.
	maxQueriesCeiling = 20
)

// Plan is an ordered, deduplicated sequence of sub-queries together with
// the concepts and strategies that produced it. Created once per research
// request and discarded after execution starts.
type Plan struct {
	// Question is the original research question.
	Question string

	// Concepts is the extracted ConceptSet.
	Concepts types.ConceptSet

	// Strategies names the strategies that fired, in registry order.
	Strategies []string

	// Queries is the planned query sequence: no two elements are
	// string-identical, and 1 <= len <= MaxQueries for non-empty input.
	Queries []string
}

// Build extracts concepts from the question, runs every applicable
// strategy, deduplicates across strategies preserving first occurrence,
// and truncates to maxQueries (R3.1-R3.4). This stage cannot fail: when
// no keyword strategy matches -- including the empty question -- the
// interdisciplinary fallback fires, so the plan is never empty.
func Build(question string, maxQueries int) Plan {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	if maxQueries > maxQueriesCeiling {
		maxQueries = maxQueriesCeiling
	}

	folded := strings.ToLower(strings.TrimSpace(question))
	cs := concepts.Extract(question)

	plan := Plan{
		Question: question,
		Concepts: cs,
	}

	var raw []string
	for _, s := range strategies {
		if len(s.keywords) == 0 || !s.matches(folded) {
			continue
		}
		plan.Strategies = append(plan.Strategies, s.name)
		raw = append(raw, s.generate(cs)...)
	}

	if len(plan.Strategies) == 0 {
		// Fallback: the last registry entry is interdisciplinary.
		fallback := strategies[len(strategies)-1]
		plan.Strategies = []string{fallback.name}
		raw = fallback.generate(cs)
	}

	plan.Queries = dedupe(raw)
	if len(plan.Queries) > maxQueries {
		plan.Queries = plan.Queries[:maxQueries]
	}
	return plan
}

// dedupe removes exact-string duplicates preserving first occurrence.
func dedupe(queries []string) []string {
	seen := make(map[string]bool, len(queries))
	var out []string
	for _, q := range queries {
		if seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

// StrategyNames returns the registry's strategy names in declaration
// order, for CLI display.
func StrategyNames() []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.name
	}
	return names
}
