// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package executor submits a query plan to the hosted answer API and
// collects one SearchResult per planned query.
// Implements: prd002-execution (R1-R3);
//
//	docs/ARCHITECTURE § Search Execution.
package executor

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/deep-research/pkg/types"
)

const (
	defaultTimeout         = 60 * time.Second
	defaultRequestInterval = time.Second
)

// Executor runs planned queries sequentially within one research request.
// Sequential execution is deliberate: it respects the API's rate limits
// and bounds outbound concurrency to one connection per request.
// Independent requests each build their own Executor and result slice, so
// running them in parallel needs no locking.
type Executor struct {
	answerer Answerer
	cfg      types.ExecutorConfig
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// New builds an Executor over the given answerer. A nil logger disables
// logging.
func New(answerer Answerer, cfg types.ExecutorConfig, logger *zap.Logger) *Executor {
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = defaultRequestInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		answerer: answerer,
		cfg:      cfg,
		// Burst 1: the first query goes out immediately, every later one
		// waits out the configured interval.
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		logger:  logger,
	}
}

// NewWithClient builds an Executor backed by the real answer API client.
func NewWithClient(cfg types.ExecutorConfig, logger *zap.Logger) *Executor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	client := &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		APIKey: cfg.APIKey,
	}
	return New(client, cfg, logger)
}

// Execute submits the planned queries in order and returns one
// SearchResult per query issued. A per-call failure is recorded on its
// result and never aborts the batch (R2.1); cancelling ctx stops issuing
// further queries but returns everything already collected (R3.3).
func (e *Executor) Execute(ctx context.Context, queries []string) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(queries))

	for i, query := range queries {
		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.Info("execution cancelled",
				zap.Int("collected", len(results)),
				zap.Int("planned", len(queries)))
			return results
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
		answer, err := e.answerer.Ask(callCtx, query, e.cfg)
		cancel()

		if err != nil {
			e.logger.Warn("query failed",
				zap.Int("index", i),
				zap.String("query", query),
				zap.Error(err))
			results = append(results, types.SearchResult{
				Query:        query,
				Succeeded:    false,
				ErrorMessage: err.Error(),
			})
			continue
		}

		e.logger.Info("query answered",
			zap.Int("index", i),
			zap.String("query", query),
			zap.Int("citations", len(answer.Citations)))
		results = append(results, types.SearchResult{
			Query:      query,
			AnswerText: answer.Text,
			Citations:  answer.Citations,
			Usage:      answer.Usage,
			Succeeded:  true,
		})
	}

	return results
}
