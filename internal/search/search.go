// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web-search API and returns the ranked hits that
// seed the drafting prompt.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Provider searches a single web API. Each provider implements this
// interface per the Strategy pattern so tests can substitute a fake.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.Result, error)
}

// Search runs the query against the provider and truncates to TopK. A
// failing provider fails the whole call: drafting without grounding
// snippets produces junk articles.
func Search(ctx context.Context, p Provider, query string, cfg types.SearchConfig) ([]types.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	results, err := p.Search(ctx, query, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", p.Name(), err)
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.Result, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %s\n", "Rank", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-50s  %s\n", i+1, title, r.URL)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
