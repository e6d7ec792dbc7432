package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yukikurage/document-management-api/internal/constants"
	"github.com/yukikurage/document-management-api/internal/metrics"
	"github.com/yukikurage/document-management-api/internal/models"
	"github.com/yukikurage/document-management-api/internal/repository"
	"github.com/yukikurage/document-management-api/internal/storage"
)

// Purge triggers, used as a metrics label.
const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
	TriggerCLI      = "cli"
)

// PurgeResult summarizes one purge run.
type PurgeResult struct {
	Cutoff         time.Time `json:"cutoff"`
	Candidates     int       `json:"candidates"`
	DeletedRows    int64     `json:"deleted_rows"`
	FilesRemoved   int       `json:"files_removed"`
	FilesMissing   int       `json:"files_missing"`
	PendingCleanup []string  `json:"pending_cleanup"`
}

// PurgeWorker permanently removes documents that have been in the trash for
// longer than the retention window.
//
// Rows are deleted first and files second. A crash between the two leaves
// orphaned files on disk; those paths are reported in PendingCleanup.
// Runs are not serialized; overlapping runs only find rows already gone.
type PurgeWorker struct {
	docRepo      repository.DocumentRepository
	activityRepo repository.ActivityRepository
	files        *storage.FileStore
	logger       *slog.Logger
	retention    time.Duration
	schedule     string
	batchSize    int
	now          func() time.Time
}

// NewPurgeWorker creates a new purge worker
func NewPurgeWorker(
	docRepo repository.DocumentRepository,
	activityRepo repository.ActivityRepository,
	files *storage.FileStore,
	logger *slog.Logger,
	retention time.Duration,
	schedule string,
) *PurgeWorker {
	if schedule == "" {
		schedule = constants.DefaultPurgeSchedule
	}
	return &PurgeWorker{
		docRepo:      docRepo,
		activityRepo: activityRepo,
		files:        files,
		logger:       logger,
		retention:    retention,
		schedule:     schedule,
		batchSize:    constants.PurgeBatchSize,
		now:          time.Now,
	}
}

// Start schedules the purge and blocks until ctx is cancelled.
func (w *PurgeWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cronLogger{w.logger}))
	_, err := c.AddFunc(w.schedule, func() {
		if _, err := w.PurgeOnce(ctx, TriggerSchedule); err != nil {
			w.logger.Error("scheduled trash purge failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", w.schedule, err)
	}

	c.Start()
	w.logger.Info("trash purge worker started",
		slog.String("schedule", w.schedule),
		slog.Duration("retention", w.retention),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Info("trash purge worker stopped")
	return nil
}

// PurgeOnce runs a single purge pass over at most one batch.
func (w *PurgeWorker) PurgeOnce(ctx context.Context, trigger string) (*PurgeResult, error) {
	start := time.Now()
	result := &PurgeResult{
		Cutoff:         w.now().Add(-w.retention),
		PendingCleanup: []string{},
	}

	docs, err := w.docRepo.ListPurgeable(result.Cutoff, w.batchSize)
	if err != nil {
		metrics.ObservePurge(trigger, "error", 0, time.Since(start))
		return nil, fmt.Errorf("failed to list purgeable documents: %w", err)
	}
	result.Candidates = len(docs)
	if len(docs) == 0 {
		metrics.ObservePurge(trigger, "noop", 0, time.Since(start))
		w.logger.Debug("trash purge found nothing to remove", slog.Time("cutoff", result.Cutoff))
		return result, nil
	}

	ids := make([]uint64, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	deletedIDs, err := w.docRepo.DeleteExpired(ids, result.Cutoff)
	if err != nil {
		metrics.ObservePurge(trigger, "error", 0, time.Since(start))
		return nil, fmt.Errorf("failed to delete purged documents: %w", err)
	}
	result.DeletedRows = int64(len(deletedIDs))

	// Files are only touched for rows this run removed
	deleted := make(map[uint64]bool, len(deletedIDs))
	for _, id := range deletedIDs {
		deleted[id] = true
	}
	for _, doc := range docs {
		if !deleted[doc.ID] {
			continue
		}
		if ctx.Err() != nil {
			result.PendingCleanup = append(result.PendingCleanup, doc.FilePath)
			continue
		}
		w.removeFile(doc, result)
		w.record(doc)
	}

	metrics.ObservePurge(trigger, "ok", result.DeletedRows, time.Since(start))
	w.logger.Info("trash purge completed",
		slog.String("trigger", trigger),
		slog.Int("candidates", result.Candidates),
		slog.Int64("deleted_rows", result.DeletedRows),
		slog.Int("files_removed", result.FilesRemoved),
		slog.Int("files_missing", result.FilesMissing),
		slog.Int("pending_cleanup", len(result.PendingCleanup)),
	)
	return result, nil
}

func (w *PurgeWorker) removeFile(doc models.Document, result *PurgeResult) {
	if doc.FilePath == "" {
		return
	}
	err := w.files.Remove(doc.FilePath)
	switch {
	case err == nil:
		result.FilesRemoved++
		metrics.ObservePurgedFile("removed")
	case errors.Is(err, storage.ErrFileMissing):
		result.FilesMissing++
		metrics.ObservePurgedFile("missing")
	case errors.Is(err, storage.ErrOutsideRoot):
		// Never delete outside the upload root
		w.logger.Warn("skipping purge of file outside upload root",
			slog.Uint64("document_id", doc.ID),
			slog.String("path", doc.FilePath),
		)
		metrics.ObservePurgedFile("skipped")
	default:
		result.PendingCleanup = append(result.PendingCleanup, doc.FilePath)
		metrics.ObservePurgedFile("failed")
		w.logger.Warn("failed to remove purged file",
			slog.Uint64("document_id", doc.ID),
			slog.String("path", doc.FilePath),
			slog.String("error", err.Error()),
		)
	}
}

func (w *PurgeWorker) record(doc models.Document) {
	err := w.activityRepo.Record(&models.ActivityLog{
		Action:     models.ActivityPurge,
		DocumentID: doc.ID,
		FileName:   doc.OriginalFileName,
	})
	if err != nil {
		w.logger.Warn("failed to record purge activity",
			slog.Uint64("document_id", doc.ID),
			slog.String("error", err.Error()),
		)
	}
}

// cronLogger routes cron's own messages through slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
