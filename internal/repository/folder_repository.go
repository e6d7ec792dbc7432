package repository

import (
	"github.com/yukikurage/document-management-api/internal/models"
	"gorm.io/gorm"
)

// GormFolderRepository is a GORM implementation of FolderRepository
type GormFolderRepository struct {
	db *gorm.DB
}

// NewFolderRepository creates a new FolderRepository
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &GormFolderRepository{db: db}
}

// List returns direct children of parentID, or roots when parentID is nil
func (r *GormFolderRepository) List(parentID *uint64) ([]models.Folder, error) {
	query := r.db.Model(&models.Folder{})
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	folders := []models.Folder{}
	if err := query.Order("name ASC").Order("id ASC").Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

// FindByID finds a live folder by ID
func (r *GormFolderRepository) FindByID(id uint64) (*models.Folder, error) {
	var folder models.Folder
	if err := r.db.First(&folder, id).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// Create creates a new folder
func (r *GormFolderRepository) Create(folder *models.Folder) error {
	return r.db.Create(folder).Error
}
