// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "deep-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchMode selects which corpus the answer API searches.
// Per prd002-execution R1.3.
type SearchMode string

const (
	ModeAcademic SearchMode = "academic"
	ModeWeb      SearchMode = "web"
)

// PlannerConfig holds settings for query planning.
// Per prd001-planning R3.3.
type PlannerConfig struct {
	// MaxQueries caps the query plan length (default 5, ceiling 20).
	MaxQueries int `json:"max_queries" yaml:"max_queries"`
}

// ExecutorConfig holds settings for the search execution stage.
// Per prd002-execution R1.1-R1.5, R3.1-R3.3.
type ExecutorConfig struct {
	HTTPConfig `yaml:",inline"`

	// Model is the answer model identifier (e.g. "sonar-deep-research").
	Model string `json:"model" yaml:"model"`

	// Mode selects the search corpus: academic or web.
	Mode SearchMode `json:"mode" yaml:"mode"`

	// MaxTokens bounds the answer length requested per query.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature passed to the answer API.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// APIKey authenticates against the answer API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// RequestInterval is the minimum spacing between consecutive outbound
	// calls within one research request (default 1s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// SessionConfig holds settings for the session store.
type SessionConfig struct {
	// SessionsDir is the directory holding the session database (contains research.db).
	SessionsDir string `json:"sessions_dir" yaml:"sessions_dir"`
}

// PipelineConfig groups all stage configurations for one research request.
type PipelineConfig struct {
	Planner  PlannerConfig  `json:"planner" yaml:"planner"`
	Executor ExecutorConfig `json:"executor" yaml:"executor"`
	Session  SessionConfig  `json:"session" yaml:"session"`

	// VerifyPreset names the verification preset to score results under
	// (strict, balanced, lenient, fast, or etymology; default balanced).
	VerifyPreset string `json:"verify_preset" yaml:"verify_preset"`
}
