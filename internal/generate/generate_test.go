// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	backoffBase = time.Millisecond
}

// mockBackend records prompts and returns canned responses in sequence.
type mockBackend struct {
	responses []string
	errs      []error
	calls     int
	prompts   [][]string
}

func (m *mockBackend) Generate(_ context.Context, parts []string) (string, error) {
	i := m.calls
	m.calls++
	m.prompts = append(m.prompts, parts)
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return m.responses[len(m.responses)-1], nil
}

func TestDraftArticle(t *testing.T) {
	backend := &mockBackend{responses: []string{
		"```json\n{\"intro\": \"opening\", \"key_points\": [\"a\",]}\n```",
	}}
	g := &Generator{Backend: backend}

	sections, err := g.DraftArticle(context.Background(), "AI tools", []types.Result{
		{Title: "hit", URL: "https://x.test", Snippet: "s"},
	}, "survey data")
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "intro", sections[0].Key)

	// The prompt carries the topic, search results, and custom data.
	require.Len(t, backend.prompts, 1)
	require.Len(t, backend.prompts[0], 2)
	user := backend.prompts[0][1]
	assert.Contains(t, user, "AI tools")
	assert.Contains(t, user, "https://x.test")
	assert.Contains(t, user, "survey data")
}

func TestDraftArticle_UnrepairableOutput(t *testing.T) {
	backend := &mockBackend{responses: []string{"I cannot help with that."}}
	g := &Generator{Backend: backend}

	_, err := g.DraftArticle(context.Background(), "topic", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repairing draft output")
}

func TestRegenerateSection(t *testing.T) {
	backend := &mockBackend{responses: []string{"  better text  \n"}}
	g := &Generator{Backend: backend}

	text, err := g.RegenerateSection(context.Background(), "topic", "intro", "old text")
	require.NoError(t, err)
	assert.Equal(t, "better text", text)

	user := backend.prompts[0][1]
	assert.Contains(t, user, "intro")
	assert.Contains(t, user, "old text")
}

func TestEvaluateArticle_JSONScores(t *testing.T) {
	backend := &mockBackend{responses: []string{
		"Here are the scores:\n{\"comprehensiveness\": 8, \"readability\": 7, \"suggestions\": [\"add data\"]}",
	}}
	g := &Generator{Backend: backend}

	sections := types.NewSections()
	sections.Set("intro", types.TextValue("text"))
	scores, err := g.EvaluateArticle(context.Background(), &types.Article{Topic: "t", Sections: sections})
	require.NoError(t, err)
	assert.Equal(t, float64(8), scores["comprehensiveness"])
	assert.Equal(t, []any{"add data"}, scores["suggestions"])
}

func TestEvaluateArticle_DegradesToRaw(t *testing.T) {
	backend := &mockBackend{responses: []string{"looks fine to me"}}
	g := &Generator{Backend: backend}

	sections := types.NewSections()
	sections.Set("intro", types.TextValue("text"))
	scores, err := g.EvaluateArticle(context.Background(), &types.Article{Topic: "t", Sections: sections})
	require.NoError(t, err)
	assert.Equal(t, "looks fine to me", scores["raw"])
}

func TestCallWithRetry_RecoversAfterFailures(t *testing.T) {
	backend := &mockBackend{
		errs:      []error{fmt.Errorf("boom"), fmt.Errorf("boom")},
		responses: []string{"", "", "{\"intro\": \"ok\"}"},
	}
	g := &Generator{Backend: backend, MaxRetries: 3}

	sections, err := g.DraftArticle(context.Background(), "topic", nil, "")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, 3, backend.calls)
}

func TestCallWithRetry_Exhausted(t *testing.T) {
	backend := &mockBackend{errs: []error{
		fmt.Errorf("boom"), fmt.Errorf("boom"), fmt.Errorf("boom"),
	}}
	g := &Generator{Backend: backend, MaxRetries: 2}

	_, err := g.DraftArticle(context.Background(), "topic", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 3, backend.calls)
}
