package models

import "time"

// Document is the metadata row for an uploaded file. The bytes live on disk
// under the upload root; FilePath points at them.
//
// DeletedAt is managed explicitly rather than through gorm.DeletedAt because
// soft-deleted rows stay readable by id and through the trash listing.
type Document struct {
	ID               uint64     `gorm:"primarykey" json:"id"`
	OriginalFileName string     `gorm:"type:varchar(255);not null" json:"original_file_name"`
	StoredFileName   string     `gorm:"type:varchar(255);not null" json:"stored_file_name"`
	FilePath         string     `gorm:"type:varchar(1024);not null" json:"file_path"`
	FileSize         int64      `gorm:"not null;default:0" json:"file_size"`
	MimeType         string     `gorm:"type:varchar(255);not null" json:"mime_type"`
	Title            *string    `gorm:"type:varchar(255)" json:"title"`
	FolderID         *uint64    `gorm:"index" json:"folder_id"`
	DocumentTypeID   *uint64    `gorm:"index" json:"document_type_id"`
	ItJobTypeID      *uint64    `gorm:"index" json:"it_job_type_id"`
	CreatedBy        uint64     `gorm:"not null" json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
	DeletedAt        *time.Time `gorm:"index" json:"deleted_at"`
	DeletedBy        *uint64    `json:"deleted_by"`
}

// IsDeleted reports whether the document sits in the trash.
func (d Document) IsDeleted() bool {
	return d.DeletedAt != nil
}
