// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the article pipeline over a JSON HTTP API:
// generate a draft, edit or regenerate sections, and score the result.
package server

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pdiddy/article-engine/internal/article"
	"github.com/pdiddy/article-engine/internal/generate"
	"github.com/pdiddy/article-engine/internal/manifest"
	"github.com/pdiddy/article-engine/internal/search"
	"github.com/pdiddy/article-engine/pkg/types"
)

// Config wires the collaborators into the server.
type Config struct {
	Controller *article.Controller
	Provider   search.Provider
	Generator  *generate.Generator
	Exporter   *manifest.Exporter
	SearchCfg  types.SearchConfig
	Logger     *zap.SugaredLogger
	Mode       string
}

// Server is the HTTP front end over one article controller.
type Server struct {
	controller *article.Controller
	provider   search.Provider
	generator  *generate.Generator
	exporter   *manifest.Exporter
	searchCfg  types.SearchConfig
	log        *zap.SugaredLogger
	router     *gin.Engine
}

// NewLogger builds the zap logger for the requested mode.
func NewLogger(mode string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Sugar(), nil
}

// New builds the server and registers its routes.
func New(cfg Config) *Server {
	if strings.ToLower(cfg.Mode) == "prod" || strings.ToLower(cfg.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		controller: cfg.Controller,
		provider:   cfg.Provider,
		generator:  cfg.Generator,
		exporter:   cfg.Exporter,
		searchCfg:  cfg.SearchCfg,
		log:        cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	{
		api.POST("/generate", s.handleGenerate)
		api.POST("/edit", s.handleEdit)
		api.POST("/regenerate", s.handleRegenerate)
		api.POST("/evaluate", s.handleEvaluate)
	}

	s.router = router
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Infow("serving article API", "addr", addr)
	return s.router.Run(addr)
}
