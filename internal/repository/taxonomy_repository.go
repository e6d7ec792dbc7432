package repository

import (
	"time"

	"github.com/yukikurage/document-management-api/internal/models"
	"gorm.io/gorm"
)

// GormTaxonomyRepository serves one taxonomy table. Both taxonomies share
// models.TaxonomyEntry and differ only by table name.
type GormTaxonomyRepository struct {
	db   *gorm.DB
	kind models.TaxonomyKind
}

// NewTaxonomyRepository creates a TaxonomyRepository for kind
func NewTaxonomyRepository(db *gorm.DB, kind models.TaxonomyKind) TaxonomyRepository {
	return &GormTaxonomyRepository{db: db, kind: kind}
}

func (r *GormTaxonomyRepository) Kind() models.TaxonomyKind {
	return r.kind
}

func (r *GormTaxonomyRepository) table() *gorm.DB {
	return r.db.Table(r.kind.Table())
}

// List returns live entries ordered by name
func (r *GormTaxonomyRepository) List(includeInactive bool) ([]models.TaxonomyEntry, error) {
	query := r.table()
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	entries := []models.TaxonomyEntry{}
	if err := query.Order("name ASC").Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByID finds a live entry
func (r *GormTaxonomyRepository) FindByID(id uint64) (*models.TaxonomyEntry, error) {
	var entry models.TaxonomyEntry
	if err := r.table().Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// NameTaken checks the name against live entries
func (r *GormTaxonomyRepository) NameTaken(name string, excludeID uint64) (bool, error) {
	query := r.table().Where("name = ? AND deleted_at IS NULL", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a new entry
func (r *GormTaxonomyRepository) Create(entry *models.TaxonomyEntry) error {
	return r.table().Create(entry).Error
}

// Update applies changes to a live entry
func (r *GormTaxonomyRepository) Update(id uint64, changes TaxonomyChanges) error {
	values := map[string]interface{}{"updated_at": time.Now()}
	if changes.Name != nil {
		values["name"] = *changes.Name
	}
	if changes.IsActive != nil {
		values["is_active"] = *changes.IsActive
	}
	if changes.UpdatedBy != nil {
		values["updated_by"] = *changes.UpdatedBy
	}

	result := r.table().Where("id = ? AND deleted_at IS NULL", id).Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a live entry
func (r *GormTaxonomyRepository) Delete(id uint64) error {
	result := r.table().Where("id = ? AND deleted_at IS NULL", id).Update("deleted_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
