// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/internal/search"
)

type generateRequest struct {
	Topic      string `json:"topic"`
	CustomData string `json:"custom_data"`
}

type editRequest struct {
	Section string `json:"section"`
	NewText string `json:"new_text"`
}

type regenerateRequest struct {
	Section     string `json:"section"`
	CurrentText string `json:"current_text"`
}

type renderedResponse struct {
	HTML   string `json:"html"`
	JSONLD string `json:"jsonld"`

	// NewText echoes the post-normalization section text on /edit and
	// /regenerate so clients can resynchronize the edited section.
	NewText string `json:"new_text,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleGenerate runs the full pipeline: search, draft, normalize, render.
// The manifest export afterwards is best effort.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}

	ctx := c.Request.Context()

	results, err := search.Search(ctx, s.provider, topic, s.searchCfg)
	if err != nil {
		s.log.Errorw("search failed", "topic", topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	raw, err := s.generator.DraftArticle(ctx, topic, results, req.CustomData)
	if err != nil {
		s.log.Errorw("draft failed", "topic", topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	rendered := s.controller.Generate(topic, raw, req.CustomData)

	if s.exporter != nil {
		art := s.controller.Snapshot()
		if path, err := s.exporter.Export(art.Topic, art.Sections); err != nil {
			s.log.Warnw("manifest export failed", "topic", topic, "error", err)
		} else {
			s.log.Infow("manifest written", "path", path)
		}
	}

	s.log.Infow("article generated", "topic", topic, "results", len(results))
	c.JSON(http.StatusOK, renderedResponse{HTML: rendered.HTML, JSONLD: rendered.JSONLD})
}

func (s *Server) handleEdit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rendered, err := s.controller.SetSectionText(req.Section, req.NewText)
	if err != nil {
		var unknown *article.UnknownSectionError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.log.Infow("section edited", "section", req.Section)
	c.JSON(http.StatusOK, renderedResponse{
		HTML:    rendered.HTML,
		JSONLD:  rendered.JSONLD,
		NewText: rendered.NewText,
	})
}

// handleRegenerate asks the model for improved section text, then replaces
// the section with the reply.
func (s *Server) handleRegenerate(c *gin.Context) {
	var req regenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	art := s.controller.Snapshot()
	if art == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no article generated yet"})
		return
	}

	// Reject unknown sections before spending a model round trip.
	if !s.controller.HasSection(req.Section) {
		unknown := &article.UnknownSectionError{Key: req.Section}
		c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error()})
		return
	}

	current := strings.TrimSpace(req.CurrentText)
	if current == "" {
		if v, ok := art.Sections.Get(req.Section); ok {
			current = v.String()
		}
	}

	text, err := s.generator.RegenerateSection(c.Request.Context(), art.Topic, req.Section, current)
	if err != nil {
		s.log.Errorw("regenerate failed", "section", req.Section, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	rendered, err := s.controller.ReplaceSection(req.Section, text)
	if err != nil {
		var unknown *article.UnknownSectionError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.log.Infow("section regenerated", "section", req.Section)
	c.JSON(http.StatusOK, renderedResponse{
		HTML:    rendered.HTML,
		JSONLD:  rendered.JSONLD,
		NewText: rendered.NewText,
	})
}

func (s *Server) handleEvaluate(c *gin.Context) {
	art := s.controller.Snapshot()
	if art == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no article generated yet"})
		return
	}

	scores, err := s.generator.EvaluateArticle(c.Request.Context(), art)
	if err != nil {
		s.log.Errorw("evaluate failed", "topic", art.Topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scores)
}
