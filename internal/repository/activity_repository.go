package repository

import (
	"github.com/yukikurage/document-management-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Record appends an activity entry
func (r *GormActivityRepository) Record(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// Latest returns the newest entries with the actor username
func (r *GormActivityRepository) Latest(limit int) ([]ActivityView, error) {
	views := []ActivityView{}
	err := r.db.Table("activity_logs AS a").
		Select("a.id, a.action, a.document_id, a.file_name, a.actor_id, u.username AS actor_username, a.created_at").
		Joins("LEFT JOIN users u ON u.id = a.actor_id").
		Order("a.created_at DESC").
		Order("a.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
