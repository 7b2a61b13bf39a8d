// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrepair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairAndExtract_CleanObject(t *testing.T) {
	sections, err := RepairAndExtract(`{"intro": "hello", "overview": "world"}`)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "intro", sections[0].Key)
	assert.Equal(t, "hello", sections[0].Value)
	assert.Equal(t, "overview", sections[1].Key)
}

func TestRepairAndExtract_FencedWithProse(t *testing.T) {
	raw := "Here is the article you asked for:\n```json\n{\"intro\": \"text\"}\n```"
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "intro", sections[0].Key)
}

func TestRepairAndExtract_TrailingCommas(t *testing.T) {
	raw := `{"key_points": ["a", "b",], "intro": "x",}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, []any{"a", "b"}, sections[0].Value)
}

func TestRepairAndExtract_StrayToken(t *testing.T) {
	raw := `{"intro": "a", 重要 , "overview": "b"}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "overview", sections[1].Key)
}

func TestRepairAndExtract_StrayTokenAfterObject(t *testing.T) {
	raw := `{"faq": {"q": "a"} 重要 , "intro": "b"}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 2)
}

func TestRepairAndExtract_MisspelledContentKey(t *testing.T) {
	raw := `{"intro": {"title": "t", "内容": "body"}}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	obj, ok := sections[0].Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "body", obj["content"])
}

func TestRepairAndExtract_FullWidthColonFallback(t *testing.T) {
	raw := `{"intro"： "text"}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "text", sections[0].Value)
}

func TestRepairAndExtract_PreservesMemberOrder(t *testing.T) {
	raw := `{"conclusion": "z", "intro": "a", "faq": "q"}`
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	keys := make([]string, 0, len(sections))
	for _, s := range sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"conclusion", "intro", "faq"}, keys)
}

func TestRepairAndExtract_NoObject(t *testing.T) {
	_, err := RepairAndExtract("the model refused to answer")
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "the model refused to answer", extractErr.Raw)
}

func TestRepairAndExtract_UnparseableCandidate(t *testing.T) {
	_, err := RepairAndExtract(`{"intro": !!}`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Candidate, "intro")
}

func TestRepairAndExtract_GarbageAroundObject(t *testing.T) {
	raw := "note: { \"intro\": \"a\" } -- end of transmission"
	sections, err := RepairAndExtract(raw)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "a", sections[0].Value)
}
