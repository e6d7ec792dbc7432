package repository

import (
	"time"

	"github.com/yukikurage/document-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns at most limit users whose username or role contains q,
	// ordered by id
	List(q string, limit int) ([]models.User, error)

	// SetActive flips the active flag; gorm.ErrRecordNotFound if no row matched
	SetActive(id uint64, active bool) error
}

// FolderRepository defines the interface for folder data access
type FolderRepository interface {
	// List returns live folders under parentID, or root folders when nil
	List(parentID *uint64) ([]models.Folder, error)

	// FindByID finds a live folder by ID
	FindByID(id uint64) (*models.Folder, error)

	// Create creates a new folder
	Create(folder *models.Folder) error
}

// DocumentFilter holds filtering options for listing documents
type DocumentFilter struct {
	Query    string
	FolderID *uint64
	Limit    int
	Offset   int
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	// HasTitle reports whether the documents table carries a title column
	HasTitle() bool

	// Create creates a new document row
	Create(doc *models.Document) error

	// FindByID finds a document by ID, including soft-deleted rows
	FindByID(id uint64) (*models.Document, error)

	// List retrieves live documents with filtering and pagination
	List(filter DocumentFilter) ([]models.Document, int64, error)

	// ListTrash retrieves soft-deleted documents, most recently deleted first
	ListTrash(limit, offset int) ([]models.Document, int64, error)

	// SoftDelete marks a live document as deleted
	SoftDelete(id, deletedBy uint64, at time.Time) error

	// Restore clears the deletion marker of a deleted document
	Restore(id uint64) error

	// ListPurgeable returns up to limit documents deleted before cutoff, oldest first
	ListPurgeable(cutoff time.Time, limit int) ([]models.Document, error)

	// DeleteExpired permanently removes those of ids still deleted before
	// cutoff and returns the ids actually removed
	DeleteExpired(ids []uint64, cutoff time.Time) ([]uint64, error)
}

// TaxonomyRepository defines the interface for one taxonomy table
type TaxonomyRepository interface {
	// Kind returns the taxonomy served by this repository
	Kind() models.TaxonomyKind

	// List returns live entries ordered by name
	List(includeInactive bool) ([]models.TaxonomyEntry, error)

	// FindByID finds a live entry by ID
	FindByID(id uint64) (*models.TaxonomyEntry, error)

	// NameTaken reports whether a live entry other than excludeID uses name
	NameTaken(name string, excludeID uint64) (bool, error)

	// Create creates a new entry
	Create(entry *models.TaxonomyEntry) error

	// Update applies the given column changes to a live entry
	Update(id uint64, changes TaxonomyChanges) error

	// Delete soft deletes a live entry
	Delete(id uint64) error
}

// TaxonomyChanges lists the mutable columns of a taxonomy entry
type TaxonomyChanges struct {
	Name      *string
	IsActive  *bool
	UpdatedBy *uint64
}

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	// Record appends an entry
	Record(entry *models.ActivityLog) error

	// Latest returns the newest entries joined with the actor username
	Latest(limit int) ([]ActivityView, error)
}

// ActivityView is an activity log row with its actor resolved
type ActivityView struct {
	ID            uint64                `json:"id"`
	Action        models.ActivityAction `json:"action"`
	DocumentID    uint64                `json:"document_id"`
	FileName      string                `json:"file_name"`
	ActorID       *uint64               `json:"actor_id"`
	ActorUsername *string               `json:"actor_username"`
	CreatedAt     time.Time             `json:"created_at"`
}

// DashboardRepository defines the aggregate queries used by the dashboard
type DashboardRepository interface {
	// Counts returns live document, live folder and stored file counts
	Counts() (DashboardCounts, error)

	// LatestDocuments returns the newest live documents with joined names
	LatestDocuments(limit int) ([]LatestDocument, error)
}

// DashboardCounts holds the dashboard totals
type DashboardCounts struct {
	DocumentCount int64
	FolderCount   int64
	FileCount     int64
}

// LatestDocument is a document row joined with its folder, type and creator names
type LatestDocument struct {
	ID                uint64    `json:"id"`
	OriginalFileName  string    `json:"original_file_name"`
	Title             *string   `json:"title"`
	MimeType          string    `json:"mime_type"`
	FileSize          int64     `json:"file_size"`
	FolderID          *uint64   `json:"folder_id"`
	FolderName        *string   `json:"folder_name"`
	DocumentTypeName  *string   `json:"document_type_name"`
	ItJobTypeName     *string   `json:"it_job_type_name"`
	CreatedBy         uint64    `json:"created_by"`
	CreatedByUsername *string   `json:"created_by_username"`
	CreatedAt         time.Time `json:"created_at"`
}
