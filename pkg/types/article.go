// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the article-engine
// pipeline: the section value variants, the ordered section mapping, and the
// article itself.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind discriminates the payload carried by a Value.
type Kind string

const (
	// KindText is a plain text block.
	KindText Kind = "text"

	// KindList is an ordered list of text items.
	KindList Kind = "list"

	// KindQA is an ordered list of question/answer pairs.
	KindQA Kind = "qa"

	// KindRefs is an ordered list of reference URLs.
	KindRefs Kind = "refs"
)

// QA is a single question/answer pair inside a FAQ section.
type QA struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Value is the content of one article section. Exactly one payload field is
// meaningful, selected by Kind: Text for KindText, List for KindList and
// KindRefs, QA for KindQA.
type Value struct {
	Kind Kind     `json:"kind"`
	Text string   `json:"text,omitempty"`
	List []string `json:"list,omitempty"`
	QA   []QA     `json:"qa,omitempty"`
}

// TextValue wraps a plain text block.
func TextValue(text string) Value { return Value{Kind: KindText, Text: text} }

// ListValue wraps an ordered list of items.
func ListValue(items []string) Value { return Value{Kind: KindList, List: items} }

// QAValue wraps an ordered list of question/answer pairs.
func QAValue(qa []QA) Value { return Value{Kind: KindQA, QA: qa} }

// RefsValue wraps an ordered list of reference URLs.
func RefsValue(urls []string) Value { return Value{Kind: KindRefs, List: urls} }

// IsEmpty reports whether the value carries no content.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindList, KindRefs:
		return len(v.List) == 0
	case KindQA:
		return len(v.QA) == 0
	default:
		return true
	}
}

// String degrades the value to plain text. Lists join with newlines; QA
// pairs format as "Q:"/"A:" blocks separated by blank lines.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindList, KindRefs:
		return strings.Join(v.List, "\n")
	case KindQA:
		blocks := make([]string, 0, len(v.QA))
		for _, qa := range v.QA {
			blocks = append(blocks, fmt.Sprintf("Q: %s\nA: %s", qa.Question, qa.Answer))
		}
		return strings.Join(blocks, "\n\n")
	default:
		return ""
	}
}

// Sections is an insertion-ordered mapping from section key to Value. The
// first write to a key fixes its position; later writes update the content
// in place. The zero value is not usable; construct with NewSections.
type Sections struct {
	keys   []string
	values map[string]Value
}

// NewSections returns an empty ordered section mapping.
func NewSections() *Sections {
	return &Sections{values: make(map[string]Value)}
}

// Set writes key to v, appending the key if it is new.
func (s *Sections) Set(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Get returns the value for key and whether it is present.
func (s *Sections) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Sections) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (s *Sections) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of sections.
func (s *Sections) Len() int { return len(s.keys) }

// Range calls fn for each key/value pair in insertion order. Iteration
// stops early if fn returns false.
func (s *Sections) Range(fn func(key string, v Value) bool) {
	for _, k := range s.keys {
		if !fn(k, s.values[k]) {
			return
		}
	}
}

// sectionPair is the JSON wire form of one ordered entry.
type sectionPair struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// MarshalJSON encodes the mapping as an ordered array of {key, value}
// pairs so that round-tripping through JSON preserves insertion order.
func (s *Sections) MarshalJSON() ([]byte, error) {
	pairs := make([]sectionPair, 0, len(s.keys))
	for _, k := range s.keys {
		pairs = append(pairs, sectionPair{Key: k, Value: s.values[k]})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the ordered pair array produced by MarshalJSON.
func (s *Sections) UnmarshalJSON(data []byte) error {
	var pairs []sectionPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("decoding sections: %w", err)
	}
	s.keys = nil
	s.values = make(map[string]Value, len(pairs))
	for _, p := range pairs {
		s.Set(p.Key, p.Value)
	}
	return nil
}

// RawSection is one top-level member of the repaired model JSON, before
// normalization. Value holds whatever shape the model produced: a string,
// a list, or a nested object.
type RawSection struct {
	Key   string
	Value any
}

// RawSections preserves the top-level key order of the model output.
type RawSections []RawSection

// Article is the unit of state managed by the controller: a topic plus its
// ordered, normalized sections.
type Article struct {
	Topic    string    `json:"topic"`
	Sections *Sections `json:"sections"`
}
