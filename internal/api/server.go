package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/ai"
	"webmarcas/backend/internal/contract"
	"webmarcas/backend/internal/scoring"
	"webmarcas/backend/internal/store"
	"webmarcas/backend/internal/viability"
)

// Config defines server dependencies.
type Config struct {
	DBPath             string
	SilentDB           bool
	AllowedOrigins     []string
	AIConfig           ai.Config
	GeminiConfig       ai.GeminiConfig
	DisableAI          bool
	AITimeout          time.Duration
	NearMatchThreshold float64
	Rules              scoring.Rules
	// Enricher replaces the collaborators built from AIConfig and GeminiConfig.
	Enricher ai.Enricher
	Now      func() time.Time
}

// Server wires HTTP handlers with persistence, the viability analyzer and the contract
// renderer.
type Server struct {
	db             *store.Database
	allowedOrigins []string
	renderer       contract.Renderer
	now            func() time.Time

	analyzerMu   sync.RWMutex
	analyzer     *viability.Analyzer
	analyzerOpts viability.Options
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	enricher := cfg.Enricher
	if cfg.DisableAI {
		enricher = nil
		logrus.Info("viability enrichment disabled via configuration")
	} else if enricher == nil {
		enricher, err = ai.NewEnricher(context.Background(), cfg.AIConfig, cfg.GeminiConfig)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ai enricher: %w", err)
		}
		if enricher == nil {
			logrus.Info("viability enrichment disabled - no OpenAI or Gemini credentials configured")
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	server := &Server{
		db:             db,
		allowedOrigins: cfg.AllowedOrigins,
		renderer:       contract.Renderer{Now: now},
		now:            now,
		analyzerOpts: viability.Options{
			Rules:              cfg.Rules,
			Enricher:           enricher,
			Timeout:            cfg.AITimeout,
			NearMatchThreshold: cfg.NearMatchThreshold,
			Now:                now,
		},
	}

	if err := server.reloadFamousMarks(); err != nil {
		logrus.WithError(err).Warn("load custom famous marks; using built-in table")
		server.setAnalyzer(nil)
	}
	return server, nil
}

// Close releases the database handle.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.POST("/viability", s.handleAnalyze)
		api.GET("/viability", s.handleListAnalyses)
		api.GET("/viability/:id", s.handleGetAnalysis)

		api.GET("/famous-marks", s.handleListFamousMarks)
		api.PUT("/famous-marks", s.handleReplaceFamousMarks)

		api.GET("/templates", s.handleListTemplates)
		api.POST("/templates", s.handleCreateTemplate)
		api.GET("/templates/:id", s.handleGetTemplate)
		api.PUT("/templates/:id", s.handleUpdateTemplate)
		api.DELETE("/templates/:id", s.handleDeleteTemplate)
		api.GET("/templates/:id/placeholders", s.handleTemplatePlaceholders)

		api.POST("/contracts/render", s.handleRenderContract)
		api.GET("/contracts/:id", s.handleGetContract)
		api.GET("/contracts/:id/html", s.handleContractHTML)
	}

	return r, nil
}

func (s *Server) currentAnalyzer() *viability.Analyzer {
	s.analyzerMu.RLock()
	defer s.analyzerMu.RUnlock()
	return s.analyzer
}

// setAnalyzer rebuilds the analyzer around a famous-mark index; nil means built-in only.
func (s *Server) setAnalyzer(idx *scoring.FamousIndex) {
	s.analyzerMu.Lock()
	defer s.analyzerMu.Unlock()
	opts := s.analyzerOpts
	opts.Famous = idx
	s.analyzer = viability.NewAnalyzer(opts)
}

func (s *Server) reloadFamousMarks() error {
	rows, err := s.db.ListFamousMarks()
	if err != nil {
		return err
	}
	extra := make([]scoring.FamousMark, 0, len(rows))
	for _, row := range rows {
		extra = append(extra, scoring.FamousMark{Mark: row.Mark, Sector: row.Sector})
	}
	idx := scoring.NewFamousIndex(extra)
	s.setAnalyzer(idx)
	logrus.WithFields(logrus.Fields{
		"famous_marks": idx.Len(),
		"custom_marks": len(extra),
	}).Info("famous mark index ready")
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.Ping(); err != nil {
		s.renderError(c, http.StatusServiceUnavailable, fmt.Errorf("database unavailable: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	analyzer := s.currentAnalyzer()

	areas := make([]gin.H, 0)
	for _, area := range scoring.BusinessAreas() {
		areas = append(areas, gin.H{"key": area.Key, "label": area.Label, "classes": area.Classes})
	}
	prices := make([]PriceDTO, 0, 3)
	for _, p := range contract.Prices() {
		prices = append(prices, PriceDTO{
			Method:       string(p.Method),
			Label:        p.Label,
			Installments: p.Installments,
			Installment:  contract.FormatBRL(p.Installment),
			Total:        contract.FormatBRL(p.Total()),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"enrichment_enabled": analyzer.EnrichmentEnabled(),
		"scoring":            analyzer.Rules(),
		"business_areas":     areas,
		"default_classes":    scoring.DefaultArea.Classes,
		"prices":             prices,
		"tokens":             contract.TokenNames(),
		"validity_days":      contract.ValidityDays,
	})
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) renderStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.renderError(c, http.StatusNotFound, fmt.Errorf("%s not found", what))
	case errors.Is(err, store.ErrConflict):
		s.renderError(c, http.StatusConflict, fmt.Errorf("%s already exists", what))
	default:
		s.renderError(c, http.StatusInternalServerError, err)
	}
}

func parseUintParam(value string) (uint, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errors.New("identifier is required")
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier: %w", err)
	}
	if parsed == 0 {
		return 0, errors.New("identifier must be greater than zero")
	}
	return uint(parsed), nil
}

func parsePage(c *gin.Context) (offset, limit int) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 25
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page * pageSize, pageSize
}
