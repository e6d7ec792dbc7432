package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/dto"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/middleware"
	"github.com/yukikurage/document-management-api/internal/services"
	"github.com/yukikurage/document-management-api/internal/utils"
)

type FolderHandler struct {
	folderService *services.FolderService
	logger        *slog.Logger
}

func NewFolderHandler(folderService *services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// ListFolders returns root folders, or the children of parent_id
func (h *FolderHandler) ListFolders(c *gin.Context) {
	parentID, ok := utils.ParseOptionalID(c.Query("parent_id"))
	if !ok {
		apierrors.BadRequest(c, "Invalid parent_id")
		return
	}

	folders, err := h.folderService.List(parentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondItems(c, dto.ToFolderDTOs(folders))
}

// CreateFolder creates a folder. created_by falls back to the caller's identity.
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	type CreateFolderRequest struct {
		Name      string  `json:"name"`
		ParentID  *uint64 `json:"parent_id"`
		CreatedBy *uint64 `json:"created_by"`
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateFolderInput{
		Name:     req.Name,
		ParentID: req.ParentID,
	}
	if req.CreatedBy != nil {
		input.CreatedBy = *req.CreatedBy
	} else if userID, ok := middleware.GetUserID(c); ok {
		input.CreatedBy = userID
	}

	folder, err := h.folderService.Create(input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToFolderDTO(*folder))
}
