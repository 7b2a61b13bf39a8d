// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section normalizes the arbitrary section shapes produced by the
// generative model into the canonical article schema: alias resolution,
// shape coercion, and FAQ text parsing.
package section

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// CanonicalOrder lists the canonical section keys in rendering order.
// Passthrough keys are never rendered but survive normalization.
var CanonicalOrder = []string{
	"intro",
	"overview",
	"key_points",
	"methodology",
	"advantages",
	"disadvantages",
	"use_cases",
	"original_data",
	"faq",
	"future_outlook",
	"conclusion",
	"references",
}

// builtinAliases maps each canonical key to its accepted synonyms. The
// model writes in both English and Japanese, hence 独自のデータ.
var builtinAliases = map[string][]string{
	"intro":          {"intro", "introduction", "lead"},
	"overview":       {"overview", "summary", "abstract"},
	"key_points":     {"key_points", "keypoints", "highlights", "bullets"},
	"methodology":    {"methodology", "approach", "process", "methods"},
	"advantages":     {"advantages", "pros", "benefits"},
	"disadvantages":  {"disadvantages", "cons", "limitations"},
	"use_cases":      {"use_cases", "cases", "examples"},
	"faq":            {"faq", "qna", "questions", "faqs"},
	"future_outlook": {"future_outlook", "outlook", "roadmap"},
	"conclusion":     {"conclusion", "closing", "summary_end"},
	"references":     {"references", "citations", "sources"},
	"original_data":  {"original_data", "独自のデータ", "custom_data", "own_data"},
}

// buildReverse inverts a canonical-to-synonyms table into a synonym lookup.
func buildReverse(table map[string][]string, into map[string]string) {
	for canonical, synonyms := range table {
		for _, syn := range synonyms {
			into[syn] = canonical
		}
		into[canonical] = canonical
	}
}

// loadAliasFile reads a YAML mapping of canonical key to synonym list,
// used to extend the built-in table without a rebuild.
func loadAliasFile(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias file %s: %w", path, err)
	}
	var table map[string][]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing alias file %s: %w", path, err)
	}
	return table, nil
}
