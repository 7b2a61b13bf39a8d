// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate drives the generative model: drafting a full article,
// regenerating a single section, and scoring a finished article. The model
// transport is abstracted behind Backend so tests can supply a mock.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/article-engine/internal/textrepair"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Backend sends ordered prompt parts to a generative model and returns the
// raw text response.
type Backend interface {
	Generate(ctx context.Context, parts []string) (string, error)
}

// Generator wraps a Backend with retry policy and the article prompts.
type Generator struct {
	Backend    Backend
	MaxRetries int
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// DraftArticle asks the model for a complete article as JSON and repairs
// the raw output into ordered sections. The search results ground the
// draft; customData, when present, is offered to the model for an
// original_data section.
func (g *Generator) DraftArticle(ctx context.Context, topic string, results []types.Result, customData string) (types.RawSections, error) {
	user, err := renderDraftPrompt(topic, results, customData)
	if err != nil {
		return nil, fmt.Errorf("rendering draft prompt: %w", err)
	}

	raw, err := g.callWithRetry(ctx, []string{draftSystemPrompt, user})
	if err != nil {
		return nil, fmt.Errorf("drafting article: %w", err)
	}

	sections, err := textrepair.RepairAndExtract(raw)
	if err != nil {
		return nil, fmt.Errorf("repairing draft output: %w", err)
	}
	return sections, nil
}

// RegenerateSection asks the model for an improved version of one section
// and returns the plain text reply.
func (g *Generator) RegenerateSection(ctx context.Context, topic, key, currentText string) (string, error) {
	user, err := renderRegeneratePrompt(topic, key, currentText)
	if err != nil {
		return "", fmt.Errorf("rendering regenerate prompt: %w", err)
	}

	raw, err := g.callWithRetry(ctx, []string{regenerateSystemPrompt, user})
	if err != nil {
		return "", fmt.Errorf("regenerating section %s: %w", key, err)
	}
	return strings.TrimSpace(raw), nil
}

// EvaluateArticle asks the model to score the article. The reply is parsed
// leniently: when it is not the requested JSON the raw text is returned
// under the "raw" key instead of failing.
func (g *Generator) EvaluateArticle(ctx context.Context, art *types.Article) (map[string]any, error) {
	user, err := renderEvaluatePrompt(art)
	if err != nil {
		return nil, fmt.Errorf("rendering evaluate prompt: %w", err)
	}

	raw, err := g.callWithRetry(ctx, []string{evaluateSystemPrompt, user})
	if err != nil {
		return nil, fmt.Errorf("evaluating article: %w", err)
	}
	return parseEvaluation(raw), nil
}

// parseEvaluation extracts the score object from the model reply, degrading
// to {"raw": text} when no valid JSON is present.
func parseEvaluation(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var scores map[string]any
		if err := json.Unmarshal([]byte(text[start:end+1]), &scores); err == nil {
			return scores
		}
	}
	return map[string]any{"raw": text}
}

// callWithRetry calls the backend with exponential backoff.
func (g *Generator) callWithRetry(ctx context.Context, parts []string) (string, error) {
	maxRetries := g.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := g.Backend.Generate(ctx, parts)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
