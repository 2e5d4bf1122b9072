package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"webmarcas/backend/internal/contract"
	"webmarcas/backend/internal/metrics"
	"webmarcas/backend/internal/store"
)

func (s *Server) handleListTemplates(c *gin.Context) {
	rows, err := s.db.ListTemplates()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	items := make([]TemplateDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, TemplateFromModel(row))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func bindTemplate(c *gin.Context) (TemplateRequest, error) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, errors.New("name is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return req, errors.New("body is required")
	}
	return req, nil
}

func (s *Server) handleCreateTemplate(c *gin.Context) {
	req, err := bindTemplate(c)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	tpl := &store.ContractTemplate{Name: req.Name, Body: req.Body, IsDefault: req.IsDefault}
	if err := s.db.CreateTemplate(tpl); err != nil {
		s.renderStoreError(c, err, "template")
		return
	}
	logrus.WithFields(logrus.Fields{"template_id": tpl.ID, "name": tpl.Name}).Info("contract template created")
	c.JSON(http.StatusCreated, TemplateFromModel(*tpl))
}

func (s *Server) handleGetTemplate(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	tpl, err := s.db.GetTemplate(id)
	if err != nil {
		s.renderStoreError(c, err, "template")
		return
	}
	c.JSON(http.StatusOK, TemplateFromModel(*tpl))
}

func (s *Server) handleUpdateTemplate(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	req, err := bindTemplate(c)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	tpl := &store.ContractTemplate{ID: id, Name: req.Name, Body: req.Body, IsDefault: req.IsDefault}
	if err := s.db.UpdateTemplate(tpl); err != nil {
		s.renderStoreError(c, err, "template")
		return
	}
	c.JSON(http.StatusOK, TemplateFromModel(*tpl))
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.db.DeleteTemplate(id); err != nil {
		s.renderStoreError(c, err, "template")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleTemplatePlaceholders(c *gin.Context) {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	tpl, err := s.db.GetTemplate(id)
	if err != nil {
		s.renderStoreError(c, err, "template")
		return
	}
	c.JSON(http.StatusOK, PlaceholdersResponse{
		Placeholders: nonNil(contract.Placeholders(tpl.Body)),
		Unknown:      nonNil(contract.Unknown(tpl.Body)),
		Available:    contract.TokenNames(),
	})
}

func (s *Server) handleRenderContract(c *gin.Context) {
	var req RenderContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "html" {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("format %q must be text or html", req.Format))
		return
	}
	if !req.Context.PaymentMethod.Valid() {
		s.renderError(c, http.StatusBadRequest, errors.New("context.paymentMethod must be cash, card6x or slip3x"))
		return
	}
	if strings.TrimSpace(req.Context.Personal.FullName) == "" {
		s.renderError(c, http.StatusBadRequest, errors.New("context.personal.fullName is required"))
		return
	}
	if b := req.Context.Brand; b.HasCompanyID && (strings.TrimSpace(b.CompanyID) == "" || strings.TrimSpace(b.CompanyName) == "") {
		s.renderError(c, http.StatusBadRequest, errors.New("companyId and companyName are required when hasCompanyId is set"))
		return
	}

	body, templateID, err := s.resolveTemplate(req)
	if err != nil {
		s.renderStoreError(c, err, "template")
		return
	}

	record := &store.Contract{
		ID:            uuid.NewString(),
		TemplateID:    templateID,
		ClientName:    strings.TrimSpace(req.Context.Personal.FullName),
		ClientEmail:   strings.TrimSpace(req.Context.Personal.Email),
		BrandName:     strings.TrimSpace(req.Context.Brand.BrandName),
		PaymentMethod: string(req.Context.PaymentMethod),
		Body:          s.renderer.Render(body, req.Context),
		CreatedAt:     s.now(),
	}
	record.BodyHash = contract.Certify(record.Body, record.ID, record.CreatedAt).Hash

	if format == "html" {
		html, err := contract.RenderHTML(record.Body, contract.LayoutOptions{
			DocumentID:  record.ID,
			Signatories: contract.DefaultSignatories(req.Context),
			Certify:     req.Certify,
			IssuedAt:    record.CreatedAt,
		})
		if err != nil {
			s.renderError(c, http.StatusInternalServerError, err)
			return
		}
		record.HTML = html
	}

	if err := s.db.SaveContract(record); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	metrics.ContractRenders.WithLabelValues(record.PaymentMethod).Inc()
	var templateRef any = "inline"
	if templateID != nil {
		templateRef = *templateID
	}
	logrus.WithFields(logrus.Fields{
		"contract_id":    record.ID,
		"template_id":    templateRef,
		"payment_method": record.PaymentMethod,
		"format":         format,
	}).Info("contract rendered")
	c.JSON(http.StatusCreated, ContractFromModel(*record))
}

// resolveTemplate picks the inline template, then the referenced one, then the default.
func (s *Server) resolveTemplate(req RenderContractRequest) (string, *uint, error) {
	if strings.TrimSpace(req.Template) != "" {
		return req.Template, nil, nil
	}
	var (
		tpl *store.ContractTemplate
		err error
	)
	if req.TemplateID != nil {
		tpl, err = s.db.GetTemplate(*req.TemplateID)
	} else {
		tpl, err = s.db.DefaultTemplate()
	}
	if err != nil {
		return "", nil, err
	}
	id := tpl.ID
	return tpl.Body, &id, nil
}

func (s *Server) handleGetContract(c *gin.Context) {
	record, err := s.db.GetContract(c.Param("id"))
	if err != nil {
		s.renderStoreError(c, err, "contract")
		return
	}
	c.JSON(http.StatusOK, ContractFromModel(*record))
}

func (s *Server) handleContractHTML(c *gin.Context) {
	record, err := s.db.GetContract(c.Param("id"))
	if err != nil {
		s.renderStoreError(c, err, "contract")
		return
	}
	html := record.HTML
	if html == "" {
		html, err = contract.RenderHTML(record.Body, contract.LayoutOptions{DocumentID: record.ID, IssuedAt: record.CreatedAt})
		if err != nil {
			s.renderError(c, http.StatusInternalServerError, err)
			return
		}
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
