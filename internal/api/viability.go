package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/scoring"
	"webmarcas/backend/internal/store"
	"webmarcas/backend/internal/util"
	"webmarcas/backend/internal/viability"
)

const maxBrandNameLength = 120

var errBrandNameRequired = errors.New("brandName is required")

func (s *Server) handleAnalyze(c *gin.Context) {
	var req ViabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderViabilityError(c, http.StatusBadRequest, err)
		return
	}
	req.BrandName = strings.TrimSpace(req.BrandName)
	if req.BrandName == "" {
		s.renderViabilityError(c, http.StatusBadRequest, errBrandNameRequired)
		return
	}
	if utf8.RuneCountInString(req.BrandName) > maxBrandNameLength {
		s.renderViabilityError(c, http.StatusBadRequest, errors.New("brandName is too long"))
		return
	}

	timer := util.StartTimer()
	verdict := s.currentAnalyzer().Analyze(c.Request.Context(), viability.BrandQuery{
		BrandName:    req.BrandName,
		BusinessArea: req.BusinessArea,
	})

	record := AnalysisFromVerdict(verdict)
	record.ProcessingTimeMs = timer.ElapsedMs()
	if err := s.db.SaveAnalysis(record); err != nil {
		logrus.WithError(err).WithField("brand", verdict.BrandName).Warn("persist viability analysis")
		record.ID = ""
	}

	logrus.WithFields(logrus.Fields{
		"analysis_id": record.ID,
		"brand":       verdict.BrandName,
		"blocked":     verdict.Blocked,
		"level":       verdict.Level,
		"duration_ms": record.ProcessingTimeMs,
	}).Info("viability analysis served")
	c.JSON(http.StatusOK, ViabilityFromVerdict(verdict, record.ID))
}

func (s *Server) renderViabilityError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func (s *Server) handleListAnalyses(c *gin.Context) {
	offset, limit := parsePage(c)
	query := store.AnalysisQuery{
		Query:  c.Query("q"),
		Level:  c.Query("level"),
		Offset: offset,
		Limit:  limit,
	}
	if raw := strings.TrimSpace(c.Query("blocked")); raw != "" {
		blocked, err := strconv.ParseBool(raw)
		if err != nil {
			s.renderError(c, http.StatusBadRequest, errors.New("blocked must be a boolean"))
			return
		}
		query.Blocked = &blocked
	}
	if query.Level != "" && !scoring.Level(strings.ToLower(query.Level)).Valid() {
		s.renderError(c, http.StatusBadRequest, errors.New("level must be high, medium or low"))
		return
	}

	rows, total, err := s.db.ListAnalyses(query)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]ViabilityResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, ViabilityFromModel(row))
	}
	c.JSON(http.StatusOK, ViabilityListResponse{Items: items, Total: total})
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	analysis, err := s.db.GetAnalysis(c.Param("id"))
	if err != nil {
		s.renderStoreError(c, err, "analysis")
		return
	}
	c.JSON(http.StatusOK, ViabilityFromModel(*analysis))
}

func (s *Server) handleListFamousMarks(c *gin.Context) {
	custom, err := s.db.ListFamousMarks()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	customKeys := make(map[string]struct{}, len(custom))
	for _, m := range custom {
		customKeys[m.Normalized] = struct{}{}
	}
	builtin := make(map[string]struct{})
	for _, m := range scoring.NewFamousIndex(nil).Marks() {
		builtin[m.Normalized] = struct{}{}
	}

	marks := s.currentAnalyzer().FamousMarks()
	items := make([]FamousMarkDTO, 0, len(marks))
	for _, m := range marks {
		_, isCustom := customKeys[m.Normalized]
		_, isBuiltin := builtin[m.Normalized]
		items = append(items, FamousMarkDTO{
			Mark:       m.Mark,
			Sector:     m.Sector,
			Normalized: m.Normalized,
			Custom:     isCustom && !isBuiltin,
		})
	}
	c.JSON(http.StatusOK, FamousMarksResponse{Items: items, Total: len(items)})
}

func (s *Server) handleReplaceFamousMarks(c *gin.Context) {
	var req FamousMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	rows := make([]store.FamousMark, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.TrimSpace(item.Mark) == "" {
			s.renderError(c, http.StatusBadRequest, errors.New("mark is required"))
			return
		}
		rows = append(rows, store.FamousMark{Mark: item.Mark, Sector: strings.TrimSpace(item.Sector)})
	}
	if err := s.db.ReplaceFamousMarks(rows); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	if err := s.reloadFamousMarks(); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	s.handleListFamousMarks(c)
}
