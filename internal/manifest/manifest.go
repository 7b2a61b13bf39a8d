// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest exports a plain-text summary of a generated article for
// LLM-facing consumption.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/article-engine/pkg/types"
)

// now is substitutable so tests can pin the timestamp.
var now = time.Now

// Exporter writes article manifests into Dir.
type Exporter struct {
	Dir string
}

// Export writes llm_<topic>.txt with the title, generation time, section
// keys, and reference URLs. It returns the written path. Callers treat
// failures as non-fatal: the article itself is already rendered.
func (e *Exporter) Export(topic string, s *types.Sections) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating manifest directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Article Title: %s\n", topic)
	fmt.Fprintf(&b, "Generated: %s\n", now().Format("2006-01-02 15:04:05"))

	b.WriteString("\nSections:\n")
	for _, key := range s.Keys() {
		fmt.Fprintf(&b, "- %s\n", key)
	}

	if v, ok := s.Get("references"); ok && len(v.List) > 0 {
		b.WriteString("\nReferences:\n")
		for _, u := range v.List {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}

	path := filepath.Join(dir, fileName(topic))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// fileName derives a safe manifest file name from the topic.
func fileName(topic string) string {
	safe := strings.Join(strings.Fields(strings.TrimSpace(topic)), "_")
	safe = strings.ReplaceAll(safe, string(filepath.Separator), "_")
	if safe == "" {
		safe = "article"
	}
	return "llm_" + safe + ".txt"
}
