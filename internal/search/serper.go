// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/article-engine/internal/httputil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// serperURL is a variable so tests can point the provider at a local server.
var serperURL = "https://google.serper.dev/search"

const (
	defaultTopK    = 3
	defaultLocale  = "ja"
	defaultTimeout = 30 * time.Second
)

// Serper queries the Serper.dev Google-search API.
type Serper struct {
	client *http.Client
}

// NewSerper builds the provider with its own HTTP client.
func NewSerper(timeout time.Duration) *Serper {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Serper{client: &http.Client{Timeout: timeout}}
}

func (s *Serper) Name() string { return "serper" }

type serperRequest struct {
	Q   string `json:"q"`
	HL  string `json:"hl"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search posts the query and maps the organic hits onto Results.
func (s *Serper) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Result, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serper API key is not set")
	}

	locale := cfg.Locale
	if locale == "" {
		locale = defaultLocale
	}
	num := cfg.TopK
	if num <= 0 {
		num = defaultTopK
	}

	body, err := json.Marshal(serperRequest{Q: query, HL: locale, Num: num})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-API-KEY", cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("serper returned %d: %s", resp.StatusCode, data)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	results := make([]types.Result, 0, len(parsed.Organic))
	for _, hit := range parsed.Organic {
		if hit.Link == "" {
			continue
		}
		results = append(results, types.Result{
			Title:   hit.Title,
			URL:     hit.Link,
			Snippet: hit.Snippet,
		})
	}
	return results, nil
}
