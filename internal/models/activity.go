package models

import "time"

type ActivityAction string

const (
	ActivityUpload  ActivityAction = "UPLOAD"
	ActivityDelete  ActivityAction = "DELETE"
	ActivityRestore ActivityAction = "RESTORE"
	ActivityPurge   ActivityAction = "PURGE"
)

// ActivityLog records document lifecycle events for the dashboard feed.
type ActivityLog struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Action     ActivityAction `gorm:"type:varchar(20);not null;index" json:"action"`
	DocumentID uint64         `gorm:"not null;index" json:"document_id"`
	FileName   string         `gorm:"type:varchar(255)" json:"file_name"`
	ActorID    *uint64        `json:"actor_id"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}
