// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article holds the mutable article state: a controller that
// serializes every mutation behind a mutex, and a SQLite store that keeps
// one article per session.
package article

import (
	"context"
	"fmt"
	"sync"

	"github.com/pdiddy/article-engine/internal/render"
	"github.com/pdiddy/article-engine/internal/section"
	"github.com/pdiddy/article-engine/pkg/types"
)

// UnknownSectionError reports a mutation addressed to a section key that is
// not present in the current article. The article is left untouched.
type UnknownSectionError struct {
	Key string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.Key)
}

// Rendered bundles the outputs produced after every successful mutation.
// NewText carries the post-normalization text of the mutated section for
// single-section operations; it is empty for whole-article operations.
type Rendered struct {
	HTML    string
	JSONLD  string
	NewText string
}

// Controller owns the article for one session. All reads and writes go
// through the mutex, so concurrent API calls see a consistent article.
type Controller struct {
	mu         sync.Mutex
	normalizer *section.Normalizer
	art        *types.Article

	store     *Store
	sessionID string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithStore enables best-effort persistence of the article under sessionID
// after every successful mutation.
func WithStore(store *Store, sessionID string) ControllerOption {
	return func(c *Controller) {
		c.store = store
		c.sessionID = sessionID
	}
}

// NewController builds a controller with no article loaded.
func NewController(normalizer *section.Normalizer, opts ...ControllerOption) *Controller {
	c := &Controller{normalizer: normalizer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate replaces the article wholesale: the raw model sections are
// normalized, customData is injected as original_data when the model did
// not produce one, and both outputs are rendered.
func (c *Controller) Generate(topic string, raw types.RawSections, customData string) Rendered {
	c.mu.Lock()
	defer c.mu.Unlock()

	sections := c.normalizer.NormalizeRaw(raw)
	if customData != "" && !sections.Has("original_data") {
		sections.Set("original_data", types.TextValue(customData))
	}

	c.art = &types.Article{Topic: topic, Sections: sections}
	c.persistLocked()
	return c.renderLocked()
}

// SetSectionText overwrites one section with user-edited text and
// re-normalizes the whole mapping so shape coercions reapply.
func (c *Controller) SetSectionText(key, text string) (Rendered, error) {
	return c.replaceLocked(key, text)
}

// ReplaceSection overwrites one section with regenerated text. Semantics
// match SetSectionText; the entry point is kept separate because callers
// differ in where the text comes from.
func (c *Controller) ReplaceSection(key, text string) (Rendered, error) {
	return c.replaceLocked(key, text)
}

func (c *Controller) replaceLocked(key, text string) (Rendered, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	canonical := c.normalizer.Canonical(key)
	if c.art == nil || !c.art.Sections.Has(canonical) {
		return Rendered{}, &UnknownSectionError{Key: key}
	}

	c.art.Sections.Set(canonical, types.TextValue(text))
	c.art.Sections = c.normalizer.Normalize(c.art.Sections)
	c.persistLocked()

	rendered := c.renderLocked()
	if v, ok := c.art.Sections.Get(canonical); ok {
		rendered.NewText = v.String()
	}
	return rendered, nil
}

// HasSection reports whether the current article has a section matching
// key after alias resolution.
func (c *Controller) HasSection(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.art == nil {
		return false
	}
	return c.art.Sections.Has(c.normalizer.Canonical(key))
}

// Render produces the outputs for the current article without mutating it.
func (c *Controller) Render() (Rendered, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.art == nil {
		return Rendered{}, fmt.Errorf("no article generated yet")
	}
	return c.renderLocked(), nil
}

// Snapshot returns a copy of the current article, or nil when none has
// been generated.
func (c *Controller) Snapshot() *types.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.art == nil {
		return nil
	}

	sections := types.NewSections()
	c.art.Sections.Range(func(key string, v types.Value) bool {
		sections.Set(key, v)
		return true
	})
	return &types.Article{Topic: c.art.Topic, Sections: sections}
}

// Restore loads a previously stored article into the controller, replacing
// any current state.
func (c *Controller) Restore(art *types.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.art = art
	// Stored articles predate alias-table changes, so re-normalize.
	c.art.Sections = c.normalizer.Normalize(c.art.Sections)
}

func (c *Controller) renderLocked() Rendered {
	return Rendered{
		HTML:   render.HTML(c.art.Sections),
		JSONLD: render.JSONLD(c.art.Topic, c.art.Sections),
	}
}

// persistLocked saves the article when a store is attached. Persistence is
// best effort and never fails the mutation.
func (c *Controller) persistLocked() {
	if c.store == nil {
		return
	}
	_ = c.store.Save(context.Background(), c.sessionID, c.art)
}
