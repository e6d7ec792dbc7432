package repository

import (
	"github.com/yukikurage/document-management-api/internal/models"
	"gorm.io/gorm"
)

// GormDashboardRepository is a GORM implementation of DashboardRepository
type GormDashboardRepository struct {
	db       *gorm.DB
	hasTitle bool
}

// NewDashboardRepository creates a new DashboardRepository. hasTitle follows
// the document repository's schema check.
func NewDashboardRepository(db *gorm.DB, hasTitle bool) DashboardRepository {
	return &GormDashboardRepository{db: db, hasTitle: hasTitle}
}

// Counts returns the dashboard totals
func (r *GormDashboardRepository) Counts() (DashboardCounts, error) {
	var counts DashboardCounts

	if err := r.db.Model(&models.Document{}).
		Where("deleted_at IS NULL").
		Count(&counts.DocumentCount).Error; err != nil {
		return counts, err
	}

	if err := r.db.Model(&models.Folder{}).Count(&counts.FolderCount).Error; err != nil {
		return counts, err
	}

	if err := r.db.Model(&models.Document{}).
		Where("deleted_at IS NULL AND file_path IS NOT NULL AND file_path <> ''").
		Count(&counts.FileCount).Error; err != nil {
		return counts, err
	}

	return counts, nil
}

// LatestDocuments returns the newest live documents
func (r *GormDashboardRepository) LatestDocuments(limit int) ([]LatestDocument, error) {
	titleColumn := "NULL AS title"
	if r.hasTitle {
		titleColumn = "d.title"
	}

	rows := []LatestDocument{}
	err := r.db.Table("documents AS d").
		Select("d.id, d.original_file_name, "+titleColumn+", d.mime_type, d.file_size, d.folder_id, "+
			"f.name AS folder_name, dt.name AS document_type_name, jt.name AS it_job_type_name, "+
			"d.created_by, u.username AS created_by_username, d.created_at").
		Joins("LEFT JOIN folders f ON f.id = d.folder_id").
		Joins("LEFT JOIN "+models.TaxonomyDocumentType.Table()+" dt ON dt.id = d.document_type_id").
		Joins("LEFT JOIN "+models.TaxonomyItJobType.Table()+" jt ON jt.id = d.it_job_type_id").
		Joins("LEFT JOIN users u ON u.id = d.created_by").
		Where("d.deleted_at IS NULL").
		Order("d.created_at DESC").
		Order("d.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
