// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections_OrderAndOverwrite(t *testing.T) {
	s := NewSections()
	s.Set("intro", TextValue("first"))
	s.Set("faq", QAValue([]QA{{Question: "q", Answer: "a"}}))
	s.Set("intro", TextValue("second"))

	assert.Equal(t, []string{"intro", "faq"}, s.Keys())

	v, ok := s.Get("intro")
	require.True(t, ok)
	assert.Equal(t, "second", v.Text)
}

func TestSections_JSONRoundTrip(t *testing.T) {
	s := NewSections()
	s.Set("overview", TextValue("a summary"))
	s.Set("key_points", ListValue([]string{"one", "two"}))
	s.Set("references", RefsValue([]string{"https://example.com/a"}))

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var got Sections
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, s.Keys(), got.Keys())
	v, ok := got.Get("key_points")
	require.True(t, ok)
	assert.Equal(t, KindList, v.Kind)
	assert.Equal(t, []string{"one", "two"}, v.List)
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"text", TextValue("hello"), "hello"},
		{"list", ListValue([]string{"a", "b"}), "a\nb"},
		{"refs", RefsValue([]string{"https://x.test"}), "https://x.test"},
		{"qa", QAValue([]QA{{Question: "why", Answer: "because"}}), "Q: why\nA: because"},
		{"empty", Value{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValue_IsEmpty(t *testing.T) {
	assert.True(t, TextValue("  ").IsEmpty())
	assert.True(t, ListValue(nil).IsEmpty())
	assert.False(t, TextValue("x").IsEmpty())
	assert.False(t, QAValue([]QA{{Question: "q"}}).IsEmpty())
}
