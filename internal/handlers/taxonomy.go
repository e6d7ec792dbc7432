package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/dto"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/middleware"
	"github.com/yukikurage/document-management-api/internal/services"
)

// TaxonomyHandler serves one taxonomy. The router mounts one instance for
// document types and one for IT job types.
type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
	logger          *slog.Logger
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService, logger *slog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
		logger:          logger,
	}
}

// ListEntries lists live entries; include_inactive=true adds inactive ones
func (h *TaxonomyHandler) ListEntries(c *gin.Context) {
	includeInactive := false
	if raw := c.Query("include_inactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid include_inactive")
			return
		}
		includeInactive = v
	}
	h.list(c, includeInactive)
}

// ListActiveEntries lists active entries only
func (h *TaxonomyHandler) ListActiveEntries(c *gin.Context) {
	h.list(c, false)
}

func (h *TaxonomyHandler) list(c *gin.Context, includeInactive bool) {
	entries, err := h.taxonomyService.List(includeInactive)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondItems(c, dto.ToTaxonomyDTOs(entries))
}

// CreateEntry creates a new entry
func (h *TaxonomyHandler) CreateEntry(c *gin.Context) {
	type CreateEntryRequest struct {
		Name     string `json:"name"`
		IsActive *bool  `json:"is_active"`
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	entry, err := h.taxonomyService.Create(services.CreateTaxonomyInput{
		Name:      req.Name,
		IsActive:  req.IsActive,
		CreatedBy: userID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToTaxonomyDTO(*entry))
}

// UpdateEntry renames or toggles an entry
func (h *TaxonomyHandler) UpdateEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	type UpdateEntryRequest struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	userID, _ := middleware.GetUserID(c)
	entry, err := h.taxonomyService.Update(id, services.UpdateTaxonomyInput{
		Name:      req.Name,
		IsActive:  req.IsActive,
		UpdatedBy: userID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToTaxonomyDTO(*entry))
}

// DeleteEntry soft deletes an entry
func (h *TaxonomyHandler) DeleteEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.taxonomyService.Delete(id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"id": id})
}
