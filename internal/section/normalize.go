// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

var urlPattern = regexp.MustCompile(`https?://[^\s)\]]+`)

// Normalizer resolves section-name synonyms and coerces section content
// into the canonical shapes. It never fails once constructed, and
// Normalize is idempotent.
type Normalizer struct {
	aliases map[string]string
}

// Option configures a Normalizer.
type Option func(*Normalizer) error

// WithAliasFile merges a YAML synonym table over the built-in aliases.
func WithAliasFile(path string) Option {
	return func(n *Normalizer) error {
		table, err := loadAliasFile(path)
		if err != nil {
			return err
		}
		buildReverse(table, n.aliases)
		return nil
	}
}

// NewNormalizer builds a Normalizer with the built-in alias table plus any
// options.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{aliases: make(map[string]string)}
	buildReverse(builtinAliases, n.aliases)
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Canonical resolves a section key to its canonical form. Unknown keys pass
// through lowercased and trimmed.
func (n *Normalizer) Canonical(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := n.aliases[k]; ok {
		return canonical
	}
	return k
}

// NormalizeRaw converts the ordered raw members of the repaired model JSON
// into a normalized section mapping. Nested {title, content} objects
// collapse to text, lists of question/answer objects become QA pairs, other
// lists become string lists, and scalars become text.
func (n *Normalizer) NormalizeRaw(raw types.RawSections) *types.Sections {
	s := types.NewSections()
	for _, member := range raw {
		s.Set(member.Key, coerceRaw(member.Value))
	}
	return n.Normalize(s)
}

// Normalize re-resolves aliases (last write wins on collisions, position is
// first seen) and applies the per-key coercions: key_points to a bullet
// list, faq to QA pairs, references to a deduplicated URL list.
func (n *Normalizer) Normalize(s *types.Sections) *types.Sections {
	out := types.NewSections()
	s.Range(func(key string, v types.Value) bool {
		canonical := n.Canonical(key)
		out.Set(canonical, coerceCanonical(canonical, v))
		return true
	})
	return out
}

// coerceCanonical applies the shape rules that depend on the canonical key.
func coerceCanonical(key string, v types.Value) types.Value {
	switch key {
	case "key_points":
		return coerceBulletList(v)
	case "faq":
		if v.Kind == types.KindQA {
			return v
		}
		return types.QAValue(ParseFAQ(v.String()))
	case "references":
		return coerceReferences(v)
	default:
		return v
	}
}

// coerceBulletList turns text or a mixed list into clean bullet items.
func coerceBulletList(v types.Value) types.Value {
	var items []string
	switch v.Kind {
	case types.KindList, types.KindRefs:
		items = v.List
	default:
		items = strings.Split(v.String(), "\n")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(item), bulletCutset))
		if item != "" {
			out = append(out, item)
		}
	}
	return types.ListValue(out)
}

// coerceReferences extracts URLs from whatever shape the section has,
// deduplicating while preserving first-seen order.
func coerceReferences(v types.Value) types.Value {
	var candidates []string
	switch v.Kind {
	case types.KindList, types.KindRefs:
		candidates = v.List
	default:
		candidates = []string{v.String()}
	}

	seen := make(map[string]bool)
	var urls []string
	for _, c := range candidates {
		for _, u := range urlPattern.FindAllString(c, -1) {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return types.RefsValue(urls)
}

// coerceRaw maps a decoded JSON value onto the tagged section value.
func coerceRaw(v any) types.Value {
	switch val := v.(type) {
	case nil:
		return types.TextValue("")
	case string:
		return types.TextValue(val)
	case map[string]any:
		return types.TextValue(collapseObject(val))
	case []any:
		if qa, ok := coerceQAList(val); ok {
			return types.QAValue(qa)
		}
		items := make([]string, 0, len(val))
		for _, item := range val {
			switch elem := item.(type) {
			case string:
				items = append(items, elem)
			case map[string]any:
				items = append(items, collapseObject(elem))
			default:
				items = append(items, fmt.Sprint(elem))
			}
		}
		return types.ListValue(items)
	default:
		return types.TextValue(fmt.Sprint(val))
	}
}

// collapseObject flattens a nested {title, content} object (Japanese keys
// included) into plain text. Anything else is stringified as a fallback.
func collapseObject(obj map[string]any) string {
	title := firstString(obj, "title", "題名")
	content := firstString(obj, "content", "内容", "text", "body")
	if title == "" && content == "" {
		return fmt.Sprint(obj)
	}

	var parts []string
	if title != "" {
		parts = append(parts, title)
	}
	if content != "" {
		parts = append(parts, content)
	}
	return strings.Join(parts, "\n")
}

// coerceQAList recognizes a list whose members are all question/answer
// objects.
func coerceQAList(items []any) ([]types.QA, bool) {
	if len(items) == 0 {
		return nil, false
	}
	pairs := make([]types.QA, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		q := firstString(obj, "question", "q")
		a := firstString(obj, "answer", "a")
		if q == "" {
			return nil, false
		}
		pairs = append(pairs, types.QA{Question: q, Answer: a})
	}
	return pairs, true
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
