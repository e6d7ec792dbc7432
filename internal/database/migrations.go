package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AddIndexes adds the composite indexes used by listing and purge queries
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Active listings filter on folder and deletion state
		{"documents", "idx_documents_folder_deleted", "folder_id, deleted_at"},
		{"documents", "idx_documents_created_at", "created_at"},

		// Purge scans soft-deleted rows oldest first
		{"documents", "idx_documents_deleted_at_id", "deleted_at, id"},

		// Folder listings by parent
		{"folders", "idx_folders_parent_name", "parent_id, name"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", slog.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
	}

	return nil
}
