package dto

import (
	"time"

	"github.com/yukikurage/document-management-api/internal/models"
)

// FolderDTO represents a folder in API responses
type FolderDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *uint64   `json:"parent_id"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToFolderDTO converts a Folder model to FolderDTO
func ToFolderDTO(folder models.Folder) FolderDTO {
	return FolderDTO{
		ID:        folder.ID,
		Name:      folder.Name,
		ParentID:  folder.ParentID,
		CreatedBy: folder.CreatedBy,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

// ToFolderDTOs converts a slice of folders
func ToFolderDTOs(folders []models.Folder) []FolderDTO {
	out := make([]FolderDTO, len(folders))
	for i, f := range folders {
		out[i] = ToFolderDTO(f)
	}
	return out
}
