package repository

import (
	"strings"
	"time"

	"github.com/yukikurage/document-management-api/internal/database"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/utils"
	"gorm.io/gorm"
)

// Columns read when the documents table has no title column.
var documentColumnsWithoutTitle = []string{
	"id", "original_file_name", "stored_file_name", "file_path", "file_size", "mime_type",
	"folder_id", "document_type_id", "it_job_type_id", "created_by",
	"created_at", "updated_at", "deleted_at", "deleted_by",
}

// Columns matched by the free text filter.
var (
	searchColumnsWithoutTitle = []string{"original_file_name", "stored_file_name", "mime_type", "file_path"}
	searchColumnsWithTitle    = append(append([]string{}, searchColumnsWithoutTitle...), "title")
)

// GormDocumentRepository is a GORM implementation of DocumentRepository.
// hasTitle is resolved once when the repository is built.
type GormDocumentRepository struct {
	db       *gorm.DB
	hasTitle bool
}

// NewDocumentRepository inspects the schema for the optional title column
// and returns a repository bound to the matching statement variants.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return NewDocumentRepositoryWithTitle(db, db.Migrator().HasColumn(&models.Document{}, "title"))
}

// NewDocumentRepositoryWithTitle skips schema inspection.
func NewDocumentRepositoryWithTitle(db *gorm.DB, hasTitle bool) DocumentRepository {
	return &GormDocumentRepository{db: db, hasTitle: hasTitle}
}

func (r *GormDocumentRepository) HasTitle() bool {
	return r.hasTitle
}

// selectColumns restricts reads to existing columns.
func (r *GormDocumentRepository) selectColumns(db *gorm.DB) *gorm.DB {
	if r.hasTitle {
		return db
	}
	return db.Select(documentColumnsWithoutTitle)
}

// Create creates a new document
func (r *GormDocumentRepository) Create(doc *models.Document) error {
	query := r.db
	if !r.hasTitle {
		query = query.Omit("Title")
	}
	if err := query.Create(doc).Error; err != nil {
		return err
	}
	if !r.hasTitle {
		doc.Title = nil
	}
	return nil
}

// FindByID finds a document by ID whether or not it is deleted
func (r *GormDocumentRepository) FindByID(id uint64) (*models.Document, error) {
	var doc models.Document
	if err := r.db.Scopes(r.selectColumns).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// List retrieves live documents with filtering and pagination
func (r *GormDocumentRepository) List(filter DocumentFilter) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{}).Where("deleted_at IS NULL")

	if filter.FolderID != nil {
		query = query.Where("folder_id = ?", *filter.FolderID)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		columns := searchColumnsWithoutTitle
		if r.hasTitle {
			columns = searchColumnsWithTitle
		}
		pattern := containsPattern(q)
		conditions := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, column := range columns {
			conditions[i] = likeClause(column)
			args[i] = pattern
		}
		query = query.Where("("+strings.Join(conditions, " OR ")+")", args...)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	docs := []models.Document{}
	err := query.Scopes(r.selectColumns).
		Order("COALESCE(updated_at, created_at) DESC").
		Order("id DESC").
		Scopes(database.Paginate(utils.PaginationParams{Limit: filter.Limit, Offset: filter.Offset})).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// ListTrash retrieves soft-deleted documents
func (r *GormDocumentRepository) ListTrash(limit, offset int) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{}).Where("deleted_at IS NOT NULL").Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	docs := []models.Document{}
	err := query.Scopes(r.selectColumns).
		Order("deleted_at DESC").
		Order("id DESC").
		Scopes(database.Paginate(utils.PaginationParams{Limit: limit, Offset: offset})).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// SoftDelete marks a live document as deleted by deletedBy
func (r *GormDocumentRepository) SoftDelete(id, deletedBy uint64, at time.Time) error {
	result := r.db.Model(&models.Document{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumns(map[string]interface{}{
			"deleted_at": at,
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears the deletion marker
func (r *GormDocumentRepository) Restore(id uint64) error {
	result := r.db.Model(&models.Document{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		UpdateColumns(map[string]interface{}{
			"deleted_at": nil,
			"deleted_by": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPurgeable returns documents deleted before cutoff, oldest first
func (r *GormDocumentRepository) ListPurgeable(cutoff time.Time, limit int) ([]models.Document, error) {
	docs := []models.Document{}
	err := r.db.Model(&models.Document{}).
		Select("id", "original_file_name", "file_path", "deleted_at").
		Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Order("deleted_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// DeleteExpired permanently removes rows among ids that are still in the
// trash past cutoff. Rows restored since they were listed are left alone.
func (r *GormDocumentRepository) DeleteExpired(ids []uint64, cutoff time.Time) ([]uint64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	result := r.db.Where("id IN ? AND deleted_at IS NOT NULL AND deleted_at < ?", ids, cutoff).
		Delete(&models.Document{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var remaining []uint64
	if err := r.db.Model(&models.Document{}).Where("id IN ?", ids).Pluck("id", &remaining).Error; err != nil {
		return nil, err
	}
	kept := make(map[uint64]bool, len(remaining))
	for _, id := range remaining {
		kept[id] = true
	}

	deleted := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if !kept[id] {
			deleted = append(deleted, id)
		}
	}
	return deleted, nil
}
