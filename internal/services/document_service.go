package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/metrics"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
	"github.com/yukikurage/document-management-api/internal/storage"
	"github.com/yukikurage/document-management-api/internal/utils"
)

// DocumentService owns the document lifecycle: upload, listing, soft delete,
// restore and download.
type DocumentService struct {
	docRepo      repository.DocumentRepository
	folderRepo   repository.FolderRepository
	docTypes     repository.TaxonomyRepository
	jobTypes     repository.TaxonomyRepository
	activityRepo repository.ActivityRepository
	files        *storage.FileStore
	logger       *slog.Logger
	now          func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	docRepo repository.DocumentRepository,
	folderRepo repository.FolderRepository,
	docTypes repository.TaxonomyRepository,
	jobTypes repository.TaxonomyRepository,
	activityRepo repository.ActivityRepository,
	files *storage.FileStore,
	logger *slog.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		folderRepo:   folderRepo,
		docTypes:     docTypes,
		jobTypes:     jobTypes,
		activityRepo: activityRepo,
		files:        files,
		logger:       logger,
		now:          time.Now,
	}
}

// ListDocumentsInput filters the active document listing.
type ListDocumentsInput struct {
	Query      string
	FolderID   *uint64
	Pagination utils.PaginationParams
}

// CreateDocumentInput is the metadata of a stored file.
type CreateDocumentInput struct {
	OriginalFileName string  `json:"original_file_name"`
	StoredFileName   string  `json:"stored_file_name"`
	FilePath         string  `json:"file_path"`
	FileSize         int64   `json:"file_size"`
	MimeType         string  `json:"mime_type"`
	Title            *string `json:"title"`
	FolderID         *uint64 `json:"folder_id"`
	DocumentTypeID   *uint64 `json:"document_type_id"`
	ItJobTypeID      *uint64 `json:"it_job_type_id"`
	CreatedBy        uint64  `json:"created_by"`
}

func (in CreateDocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.OriginalFileName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&in.StoredFileName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&in.FilePath, validation.Required),
		validation.Field(&in.FileSize, validation.Min(int64(0))),
		validation.Field(&in.MimeType, validation.Required),
		validation.Field(&in.CreatedBy, validation.Required),
	)
}

// UploadInput is one multipart upload.
type UploadInput struct {
	File           io.Reader `json:"file"`
	FileName       string    `json:"file_name"`
	ContentType    string    `json:"-"`
	Title          *string   `json:"title"`
	FolderID       *uint64   `json:"folder_id"`
	DocumentTypeID *uint64   `json:"document_type_id"`
	ItJobTypeID    *uint64   `json:"it_job_type_id"`
	CreatedBy      uint64    `json:"created_by"`
}

func (in UploadInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.File, validation.Required.Error("file is required")),
		validation.Field(&in.FileName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&in.FolderID, validation.Required),
		validation.Field(&in.DocumentTypeID, validation.Required),
		validation.Field(&in.ItJobTypeID, validation.Required),
		validation.Field(&in.CreatedBy, validation.Required),
	)
}

// DownloadFile is an open backing file ready to stream.
type DownloadFile struct {
	File     *os.File
	Size     int64
	MimeType string
	FileName string
}

// List returns live documents matching the filter.
func (s *DocumentService) List(input ListDocumentsInput) ([]models.Document, int64, error) {
	docs, total, err := s.docRepo.List(repository.DocumentFilter{
		Query:    input.Query,
		FolderID: input.FolderID,
		Limit:    input.Pagination.Limit,
		Offset:   input.Pagination.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, total, nil
}

// ListTrash returns soft-deleted documents.
func (s *DocumentService) ListTrash(p utils.PaginationParams) ([]models.Document, int64, error) {
	docs, total, err := s.docRepo.ListTrash(p.Limit, p.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trash: %w", err)
	}
	return docs, total, nil
}

// Get returns a document, deleted or not.
func (s *DocumentService) Get(id uint64) (*models.Document, error) {
	doc, err := s.docRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return doc, nil
}

// Create records metadata for a file that is already stored.
func (s *DocumentService) Create(input CreateDocumentInput) (*models.Document, error) {
	input.OriginalFileName = strings.TrimSpace(input.OriginalFileName)
	input.StoredFileName = strings.TrimSpace(input.StoredFileName)
	input.MimeType = strings.TrimSpace(input.MimeType)
	input.Title = trimOptional(input.Title)
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}

	doc := &models.Document{
		OriginalFileName: input.OriginalFileName,
		StoredFileName:   input.StoredFileName,
		FilePath:         input.FilePath,
		FileSize:         input.FileSize,
		MimeType:         input.MimeType,
		Title:            input.Title,
		FolderID:         input.FolderID,
		DocumentTypeID:   input.DocumentTypeID,
		ItJobTypeID:      input.ItJobTypeID,
		CreatedBy:        input.CreatedBy,
	}
	if err := s.docRepo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// Upload stores the file bytes and records the document. The stored file is
// removed again when the row cannot be written.
func (s *DocumentService) Upload(input UploadInput) (*models.Document, error) {
	input.FileName = strings.TrimSpace(input.FileName)
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}

	stored, err := s.files.Save(input.File, input.FileName, input.ContentType)
	if err != nil {
		metrics.ObserveDocumentOperation("upload", "error")
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc, err := s.Create(CreateDocumentInput{
		OriginalFileName: input.FileName,
		StoredFileName:   stored.StoredName,
		FilePath:         stored.Path,
		FileSize:         stored.Size,
		MimeType:         stored.MimeType,
		Title:            input.Title,
		FolderID:         input.FolderID,
		DocumentTypeID:   input.DocumentTypeID,
		ItJobTypeID:      input.ItJobTypeID,
		CreatedBy:        input.CreatedBy,
	})
	if err != nil {
		if rmErr := s.files.Remove(stored.Path); rmErr != nil {
			s.logger.Warn("failed to remove file after upload error",
				slog.String("path", stored.Path),
				slog.String("error", rmErr.Error()),
			)
		}
		metrics.ObserveDocumentOperation("upload", "error")
		return nil, err
	}

	metrics.ObserveUpload(stored.Size)
	metrics.ObserveDocumentOperation("upload", "ok")
	s.record(models.ActivityUpload, doc, input.CreatedBy)
	return doc, nil
}

func (s *DocumentService) checkReferences(input UploadInput) error {
	if _, err := s.folderRepo.FindByID(*input.FolderID); err != nil {
		if isNotFound(err) {
			return apierrors.WithKind(apierrors.ErrKindInvalidInput, "folder does not exist")
		}
		return fmt.Errorf("failed to find folder: %w", err)
	}
	for _, ref := range []struct {
		repo repository.TaxonomyRepository
		id   uint64
	}{
		{s.docTypes, *input.DocumentTypeID},
		{s.jobTypes, *input.ItJobTypeID},
	} {
		if _, err := ref.repo.FindByID(ref.id); err != nil {
			if isNotFound(err) {
				return apierrors.WithKind(apierrors.ErrKindInvalidInput, ref.repo.Kind().Label()+" does not exist")
			}
			return fmt.Errorf("failed to find %s: %w", ref.repo.Kind().Label(), err)
		}
	}
	return nil
}

// SoftDelete moves a live document to the trash.
func (s *DocumentService) SoftDelete(id, deletedBy uint64) (*models.Document, error) {
	if deletedBy == 0 {
		return nil, apierrors.WithKind(apierrors.ErrKindInvalidInput, "deleted_by is required")
	}
	if err := s.docRepo.SoftDelete(id, deletedBy, s.now()); err != nil {
		if isNotFound(err) {
			metrics.ObserveDocumentOperation("delete", "not_found")
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to delete document: %w", err)
	}

	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	metrics.ObserveDocumentOperation("delete", "ok")
	s.record(models.ActivityDelete, doc, deletedBy)
	return doc, nil
}

// Restore takes a document out of the trash.
func (s *DocumentService) Restore(id, actorID uint64) (*models.Document, error) {
	if err := s.docRepo.Restore(id); err != nil {
		if isNotFound(err) {
			metrics.ObserveDocumentOperation("restore", "not_found")
			return nil, ErrDocumentNotDeleted
		}
		return nil, fmt.Errorf("failed to restore document: %w", err)
	}

	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	metrics.ObserveDocumentOperation("restore", "ok")
	s.record(models.ActivityRestore, doc, actorID)
	return doc, nil
}

// Open resolves the backing file of a document for download. The caller
// closes the returned file.
func (s *DocumentService) Open(id uint64) (*DownloadFile, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	f, info, err := s.files.Open(doc.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmptyPath):
			return nil, ErrNoFilePath
		case errors.Is(err, storage.ErrOutsideRoot):
			s.logger.Warn("rejected download outside upload root",
				slog.Uint64("document_id", id),
				slog.String("path", doc.FilePath),
			)
			return nil, ErrPathOutsideRoot
		case errors.Is(err, storage.ErrFileMissing):
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	mimeType := doc.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	metrics.ObserveDocumentOperation("download", "ok")
	return &DownloadFile{
		File:     f,
		Size:     info.Size(),
		MimeType: mimeType,
		FileName: doc.OriginalFileName,
	}, nil
}

// record writes an activity entry. Failures are logged and never surface to
// the caller.
func (s *DocumentService) record(action models.ActivityAction, doc *models.Document, actorID uint64) {
	entry := &models.ActivityLog{
		Action:     action,
		DocumentID: doc.ID,
		FileName:   doc.OriginalFileName,
	}
	if actorID != 0 {
		entry.ActorID = &actorID
	}
	if err := s.activityRepo.Record(entry); err != nil {
		s.logger.Warn("failed to record activity",
			slog.String("action", string(action)),
			slog.Uint64("document_id", doc.ID),
			slog.String("error", err.Error()),
		)
	}
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
