// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

// withSerperURL points the provider at a test server for the duration of
// the test.
func withSerperURL(t *testing.T, url string) {
	t.Helper()
	old := serperURL
	serperURL = url
	t.Cleanup(func() { serperURL = old })
}

func TestSerper_Search(t *testing.T) {
	var gotReq serperRequest
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic": [
			{"title": "Hit One", "link": "https://one.test", "snippet": "first"},
			{"title": "No Link", "snippet": "dropped"},
			{"title": "Hit Two", "link": "https://two.test", "snippet": "second"}
		]}`))
	}))
	defer ts.Close()
	withSerperURL(t, ts.URL)

	cfg := types.SearchConfig{APIKey: "sp_test", Locale: "ja", TopK: 3}
	results, err := NewSerper(0).Search(context.Background(), "ai tools", cfg)
	require.NoError(t, err)

	assert.Equal(t, "sp_test", gotKey)
	assert.Equal(t, serperRequest{Q: "ai tools", HL: "ja", Num: 3}, gotReq)

	// Hits without a link are dropped.
	require.Len(t, results, 2)
	assert.Equal(t, types.Result{Title: "Hit One", URL: "https://one.test", Snippet: "first"}, results[0])
}

func TestSerper_Defaults(t *testing.T) {
	var gotReq serperRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"organic": []}`))
	}))
	defer ts.Close()
	withSerperURL(t, ts.URL)

	_, err := NewSerper(0).Search(context.Background(), "q", types.SearchConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "ja", gotReq.HL)
	assert.Equal(t, 3, gotReq.Num)
}

func TestSerper_MissingKey(t *testing.T) {
	_, err := NewSerper(0).Search(context.Background(), "q", types.SearchConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestSerper_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer ts.Close()
	withSerperURL(t, ts.URL)

	_, err := NewSerper(0).Search(context.Background(), "q", types.SearchConfig{APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
