package models

import (
	"time"

	"gorm.io/gorm"
)

// TaxonomyKind selects one of the reference tables used to tag documents.
type TaxonomyKind string

const (
	TaxonomyDocumentType TaxonomyKind = "document_type"
	TaxonomyItJobType    TaxonomyKind = "it_job_type"
)

// Table returns the table backing the taxonomy.
func (k TaxonomyKind) Table() string {
	switch k {
	case TaxonomyItJobType:
		return "it_job_types"
	default:
		return "document_types"
	}
}

// Label is the human readable name used in error messages.
func (k TaxonomyKind) Label() string {
	switch k {
	case TaxonomyItJobType:
		return "job type"
	default:
		return "document type"
	}
}

// TaxonomyEntry is a named, activatable category. Both document types and
// IT job types share this shape and are addressed through db.Table.
type TaxonomyEntry struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null;index" json:"name"`
	IsActive  bool           `gorm:"not null" json:"is_active"`
	CreatedBy *uint64        `json:"created_by"`
	UpdatedBy *uint64        `json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
