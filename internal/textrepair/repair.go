// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textrepair recovers a JSON object from unreliable generative model
// output. Model responses arrive wrapped in code fences, sprinkled with stray
// tokens, or carrying trailing commas; the repair pass fixes the known damage
// patterns and extracts the first top-level object, preserving member order.
package textrepair

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// ExtractionError reports that no JSON object could be located in the model
// output. Raw carries the original text for diagnostics.
type ExtractionError struct {
	Raw string
}

func (e *ExtractionError) Error() string {
	return "no JSON object found in model output"
}

// ParseError reports that the extracted candidate was not valid JSON even
// after repair. Candidate carries the post-repair text.
type ParseError struct {
	Candidate string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("repaired candidate is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	openFence  = regexp.MustCompile("^```[a-zA-Z]*\\s*")
	closeFence = regexp.MustCompile("\\s*```$")

	// The model intermittently emits a bare 重要 ("important") marker between
	// object members.
	strayAfterComma = regexp.MustCompile(`,\s*重要\s*,`)
	strayAfterBrace = regexp.MustCompile(`}\s*重要\s*,`)

	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// RepairAndExtract strips code fences, applies the fixed repair set, extracts
// the first { through the last }, and decodes the candidate into an ordered
// member list. One fallback repair (full-width colons to ASCII) is attempted
// before giving up.
//
// Returns *ExtractionError when no object can be located and *ParseError when
// the candidate never becomes valid JSON.
func RepairAndExtract(raw string) (types.RawSections, error) {
	text := strings.TrimSpace(raw)
	text = openFence.ReplaceAllString(text, "")
	text = closeFence.ReplaceAllString(text, "")

	text = strayAfterComma.ReplaceAllString(text, ",")
	text = strayAfterBrace.ReplaceAllString(text, "},")
	text = strings.ReplaceAll(text, `"内容"`, `"content"`)
	text = strings.ReplaceAll(text, `内容"`, `content"`)
	text = trailingComma.ReplaceAllString(text, "$1")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < 0 || end < start {
		return nil, &ExtractionError{Raw: raw}
	}
	candidate := text[start : end+1]

	sections, err := decodeOrdered(candidate)
	if err == nil {
		return sections, nil
	}

	// Full-width colons after keys are the one remaining damage pattern
	// worth a second attempt.
	retry := strings.ReplaceAll(candidate, "：", ":")
	retry = trailingComma.ReplaceAllString(retry, "$1")
	if sections, retryErr := decodeOrdered(retry); retryErr == nil {
		return sections, nil
	}

	return nil, &ParseError{Candidate: candidate, Err: err}
}

// decodeOrdered decodes a JSON object while preserving top-level member
// order, which encoding/json's map decoding would lose.
func decodeOrdered(candidate string) (types.RawSections, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top-level value is %v, not an object", tok)
	}

	var out types.RawSections
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, types.RawSection{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
