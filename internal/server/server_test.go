// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/internal/generate"
	"github.com/pdiddy/article-engine/internal/section"
	"github.com/pdiddy/article-engine/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider returns canned search results.
type fakeProvider struct {
	results []types.Result
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(_ context.Context, _ string, _ types.SearchConfig) ([]types.Result, error) {
	return f.results, f.err
}

// fakeModel returns canned model responses in sequence.
type fakeModel struct {
	responses []string
	err       error
	calls     int
}

func (f *fakeModel) Generate(_ context.Context, _ []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func newTestServer(t *testing.T, provider *fakeProvider, model *fakeModel) *Server {
	t.Helper()
	normalizer, err := section.NewNormalizer()
	require.NoError(t, err)

	return New(Config{
		Controller: article.NewController(normalizer),
		Provider:   provider,
		Generator:  &generate.Generator{Backend: model, MaxRetries: 1},
		SearchCfg:  types.SearchConfig{TopK: 3, APIKey: "test"},
		Logger:     zap.NewNop().Sugar(),
	})
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, &fakeModel{responses: []string{"{}"}})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_FullPipeline(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{
		{Title: "hit", URL: "https://x.test", Snippet: "s"},
	}}
	model := &fakeModel{responses: []string{
		"```json\n{\"summary\": \"the overview\", \"pros\": [\"fast\"], \"references\": \"https://x.test\"}\n```",
	}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "AI tools"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp renderedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "Overview")
	assert.Contains(t, resp.HTML, "<li>fast</li>")
	assert.Contains(t, resp.JSONLD, `"headline": "AI tools"`)
}

func TestGenerate_EmptyTopic(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, &fakeModel{responses: []string{"{}"}})
	w := postJSON(t, s, "/api/generate", gin.H{"topic": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerate_SearchFailure(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("quota exceeded")}
	s := newTestServer(t, provider, &fakeModel{responses: []string{"{}"}})

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "AI tools"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "quota exceeded")
}

func TestGenerate_UnrepairableModelOutput(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{"I refuse."}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "AI tools"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestEdit(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{`{"intro": "original"}`}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/api/edit", gin.H{"section": "intro", "new_text": "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp renderedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "edited")
	assert.Equal(t, "edited", resp.NewText)
}

func TestEdit_NewTextReflectsCoercion(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{`{"key_points": ["old"]}`}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/api/edit", gin.H{"section": "key_points", "new_text": "・alpha\n・beta"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp renderedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alpha\nbeta", resp.NewText)
}

func TestEdit_UnknownSection(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{`{"intro": "original"}`}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/api/edit", gin.H{"section": "no_such", "new_text": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegenerate(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{
		`{"intro": "original"}`,
		"regenerated intro text",
	}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/api/regenerate", gin.H{"section": "intro"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp renderedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "regenerated intro text")
	assert.Equal(t, "regenerated intro text", resp.NewText)
}

func TestRegenerate_UnknownSectionSkipsModel(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{`{"intro": "original"}`}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)
	callsAfterGenerate := model.calls

	w = postJSON(t, s, "/api/regenerate", gin.H{"section": "no_such"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The bad section name is rejected before any model call.
	assert.Equal(t, callsAfterGenerate, model.calls)
}

func TestRegenerate_NoArticle(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, &fakeModel{responses: []string{"{}"}})
	w := postJSON(t, s, "/api/regenerate", gin.H{"section": "intro"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluate(t *testing.T) {
	provider := &fakeProvider{results: []types.Result{{Title: "t", URL: "https://x.test"}}}
	model := &fakeModel{responses: []string{
		`{"intro": "original"}`,
		`{"comprehensiveness": 9, "overall_comment": "solid"}`,
	}}
	s := newTestServer(t, provider, model)

	w := postJSON(t, s, "/api/generate", gin.H{"topic": "topic"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/api/evaluate", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var scores map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	assert.Equal(t, float64(9), scores["comprehensiveness"])
}

func TestEvaluate_NoArticle(t *testing.T) {
	s := newTestServer(t, &fakeProvider{}, &fakeModel{responses: []string{"{}"}})
	w := postJSON(t, s, "/api/evaluate", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
