package dto

import (
	"time"

	"github.com/yukikurage/document-management-api/internal/models"
)

// TaxonomyDTO represents a document type or IT job type
type TaxonomyDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedBy *uint64   `json:"created_by"`
	UpdatedBy *uint64   `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTaxonomyDTO converts a TaxonomyEntry model to TaxonomyDTO
func ToTaxonomyDTO(entry models.TaxonomyEntry) TaxonomyDTO {
	return TaxonomyDTO{
		ID:        entry.ID,
		Name:      entry.Name,
		IsActive:  entry.IsActive,
		CreatedBy: entry.CreatedBy,
		UpdatedBy: entry.UpdatedBy,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// ToTaxonomyDTOs converts a slice of entries
func ToTaxonomyDTOs(entries []models.TaxonomyEntry) []TaxonomyDTO {
	out := make([]TaxonomyDTO, len(entries))
	for i, e := range entries {
		out[i] = ToTaxonomyDTO(e)
	}
	return out
}
