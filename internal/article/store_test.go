// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "articles.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testArticle(topic string) *types.Article {
	sections := types.NewSections()
	sections.Set("intro", types.TextValue("hello"))
	sections.Set("references", types.RefsValue([]string{"https://example.com"}))
	return &types.Article{Topic: topic, Sections: sections}
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "session-1", testArticle("Topic A")))

	got, err := s.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Topic A", got.Topic)
	assert.Equal(t, []string{"intro", "references"}, got.Sections.Keys())

	v, ok := got.Sections.Get("references")
	require.True(t, ok)
	assert.Equal(t, types.KindRefs, v.Kind)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "session-1", testArticle("First")))
	require.NoError(t, s.Save(ctx, "session-1", testArticle("Second")))

	got, err := s.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Topic)
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a", testArticle("A")))
	require.NoError(t, s.Save(ctx, "b", testArticle("B")))
	require.NoError(t, s.Delete(ctx, "a"))
	// Deleting twice is fine.
	require.NoError(t, s.Delete(ctx, "a"))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "b", infos[0].SessionID)
	assert.Equal(t, "B", infos[0].Topic)
	assert.False(t, infos[0].UpdatedAt.IsZero())
}

func TestController_PersistsThroughStore(t *testing.T) {
	s := newTestStore(t)
	c := newController(t, WithStore(s, "session-x"))

	c.Generate("Stored Topic", types.RawSections{{Key: "intro", Value: "body"}}, "")

	got, err := s.Load(context.Background(), "session-x")
	require.NoError(t, err)
	assert.Equal(t, "Stored Topic", got.Topic)
}
