package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/dto"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/middleware"
	"github.com/yukikurage/document-management-api/internal/services"
	"github.com/yukikurage/document-management-api/internal/utils"
)

type DocumentHandler struct {
	documentService *services.DocumentService
	maxUploadBytes  int64
	logger          *slog.Logger
}

func NewDocumentHandler(documentService *services.DocumentService, maxUploadBytes int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// ListDocuments searches live documents
// Can filter by q and folder_id
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	folderID, ok := utils.ParseOptionalID(c.Query("folder_id"))
	if !ok {
		apierrors.BadRequest(c, "Invalid folder_id")
		return
	}

	docs, total, err := h.documentService.List(services.ListDocumentsInput{
		Query:      c.Query("q"),
		FolderID:   folderID,
		Pagination: params,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, dto.ToDocumentDTOs(docs), params, total)
}

// GetDocument returns a document by ID, including trashed ones
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToDocumentDTO(*doc))
}

// UploadDocument stores a multipart file and records its metadata
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	input := services.UploadInput{CreatedBy: userID}

	file, header, err := c.Request.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		input.File = file
		input.FileName = header.Filename
		input.ContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// left nil, reported by validation together with the other fields
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierrors.BadRequest(c, "File exceeds the upload size limit")
			return
		}
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}

	for _, ref := range []struct {
		field string
		dst   **uint64
	}{
		{"folder_id", &input.FolderID},
		{"document_type_id", &input.DocumentTypeID},
		{"it_job_type_id", &input.ItJobTypeID},
	} {
		id, ok := utils.ParseOptionalID(c.PostForm(ref.field))
		if !ok {
			apierrors.BadRequest(c, "Invalid "+ref.field)
			return
		}
		*ref.dst = id
	}

	if title := c.PostForm("title"); title != "" {
		input.Title = &title
	}

	doc, err := h.documentService.Upload(input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, dto.ToDocumentDTO(*doc))
}

// DeleteDocument moves a document to the trash. The actor is the caller, or
// the deleted_by body field when there is no identity.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var actorID uint64
	if userID, exists := middleware.GetUserID(c); exists {
		actorID = userID
	} else {
		var body struct {
			DeletedBy *uint64 `json:"deleted_by"`
		}
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
				apierrors.BadRequest(c, "Invalid request body")
				return
			}
		}
		if body.DeletedBy != nil {
			actorID = *body.DeletedBy
		}
	}

	doc, err := h.documentService.SoftDelete(id, actorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToDocumentDTO(*doc))
}

// RestoreDocument takes a document out of the trash
func (h *DocumentHandler) RestoreDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)
	doc, err := h.documentService.Restore(id, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, dto.ToDocumentDTO(*doc))
}

// ListTrash returns soft-deleted documents, most recently deleted first
func (h *DocumentHandler) ListTrash(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	docs, total, err := h.documentService.ListTrash(params)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondPage(c, dto.ToDocumentDTOs(docs), params, total)
}

// DownloadDocument streams the stored bytes as an attachment
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	download, err := h.documentService.Open(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer download.File.Close()

	c.DataFromReader(http.StatusOK, download.Size, download.MimeType, download.File, map[string]string{
		"Content-Disposition": ContentDisposition(download.FileName),
	})
}

// ContentDisposition builds an attachment header carrying the name
// percent-encoded as UTF-8.
func ContentDisposition(name string) string {
	if name == "" {
		name = "download"
	}
	encoded := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return "attachment; filename*=UTF-8''" + encoded
}
