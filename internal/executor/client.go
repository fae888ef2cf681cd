// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/deep-research/internal/httputil"
	"github.com/pdiddy/deep-research/pkg/types"
)

// answerAPIBase is the hosted answer-generation endpoint. Declared as a
// var so tests can substitute an httptest server.
var answerAPIBase = "https://api.perplexity.ai"

const chatCompletionsPath = "/chat/completions"

// Answer is one successful response from the answer API.
type Answer struct {
	Text      string
	Citations []types.Citation
	Usage     *types.TokenUsage
}

// Answerer abstracts the answer API so the executor can be tested with a
// mock.
type Answerer interface {
	Ask(ctx context.Context, query string, cfg types.ExecutorConfig) (Answer, error)
}

// Client calls the hosted answer API over its chat-completions surface.
type Client struct {
	HTTP   *http.Client
	APIKey string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	SearchMode  string        `json:"search_mode,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`

	// Citations is the legacy bare-URL list; SearchResults is the richer
	// titled form. Either or both may be present.
	Citations     []wireCitation `json:"citations"`
	SearchResults []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"search_results"`

	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// wireCitation accepts both citation encodings the API has used: a bare
// URL string, or an object with title and url.
type wireCitation struct {
	Title string
	URL   string
}

func (c *wireCitation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.URL = s
		return nil
	}
	var obj struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("citation is neither a string nor an object: %w", err)
	}
	c.Title = obj.Title
	c.URL = obj.URL
	return nil
}

// Ask submits one planned query and returns the generated answer. HTTP 429
// is retried with backoff inside the call; any other failure is returned
// to the executor, which records it as a failed result rather than
// aborting the batch.
func (c *Client) Ask(ctx context.Context, query string, cfg types.ExecutorConfig) (Answer, error) {
	body, err := json.Marshal(chatRequest{
		Model:       cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: query}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		SearchMode:  string(cfg.Mode),
	})
	if err != nil {
		return Answer{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, answerAPIBase+chatCompletionsPath, bytes.NewReader(body))
	if err != nil {
		return Answer{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return Answer{}, fmt.Errorf("answer API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Answer{}, fmt.Errorf("answer API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return Answer{}, fmt.Errorf("parsing answer API response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return Answer{}, fmt.Errorf("answer API response contained no choices")
	}

	a := Answer{Text: cr.Choices[0].Message.Content}

	// Prefer the titled search_results form; fall back to the bare list.
	if len(cr.SearchResults) > 0 {
		for _, sr := range cr.SearchResults {
			a.Citations = append(a.Citations, types.Citation{Title: sr.Title, URL: sr.URL})
		}
	} else {
		for _, wc := range cr.Citations {
			a.Citations = append(a.Citations, types.Citation{Title: wc.Title, URL: wc.URL})
		}
	}

	if cr.Usage != nil {
		a.Usage = &types.TokenUsage{
			InputTokens:  cr.Usage.PromptTokens,
			OutputTokens: cr.Usage.CompletionTokens,
		}
	}
	return a, nil
}
