package models

import (
	"time"

	"gorm.io/gorm"
)

// Folder is a node in the folder tree. A nil ParentID marks a root folder.
type Folder struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *uint64        `gorm:"index" json:"parent_id"`
	CreatedBy uint64         `gorm:"not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Parent  *Folder `gorm:"foreignKey:ParentID" json:"-"`
	Creator User    `gorm:"foreignKey:CreatedBy" json:"-"`
}
