package dto

import (
	"time"

	"github.com/yukikurage/document-management-api/internal/models"
)

// DocumentDTO represents a document in API responses. file_path is kept
// for clients that display it but bytes are only served by the download route.
type DocumentDTO struct {
	ID               uint64     `json:"id"`
	OriginalFileName string     `json:"original_file_name"`
	StoredFileName   string     `json:"stored_file_name"`
	FilePath         string     `json:"file_path"`
	FileSize         int64      `json:"file_size"`
	MimeType         string     `json:"mime_type"`
	Title            *string    `json:"title"`
	FolderID         *uint64    `json:"folder_id"`
	DocumentTypeID   *uint64    `json:"document_type_id"`
	ItJobTypeID      *uint64    `json:"it_job_type_id"`
	CreatedBy        uint64     `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at"`
	DeletedBy        *uint64    `json:"deleted_by"`
}

// ToDocumentDTO converts a Document model to DocumentDTO
func ToDocumentDTO(doc models.Document) DocumentDTO {
	return DocumentDTO{
		ID:               doc.ID,
		OriginalFileName: doc.OriginalFileName,
		StoredFileName:   doc.StoredFileName,
		FilePath:         doc.FilePath,
		FileSize:         doc.FileSize,
		MimeType:         doc.MimeType,
		Title:            doc.Title,
		FolderID:         doc.FolderID,
		DocumentTypeID:   doc.DocumentTypeID,
		ItJobTypeID:      doc.ItJobTypeID,
		CreatedBy:        doc.CreatedBy,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
		DeletedAt:        doc.DeletedAt,
		DeletedBy:        doc.DeletedBy,
	}
}

// ToDocumentDTOs converts a slice of documents
func ToDocumentDTOs(docs []models.Document) []DocumentDTO {
	out := make([]DocumentDTO, len(docs))
	for i, d := range docs {
		out[i] = ToDocumentDTO(d)
	}
	return out
}
