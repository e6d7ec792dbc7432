package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/worker"
)

// Purger runs one trash purge pass.
type Purger interface {
	PurgeOnce(ctx context.Context, trigger string) (*worker.PurgeResult, error)
}

type TrashHandler struct {
	purger Purger
	logger *slog.Logger
}

func NewTrashHandler(purger Purger, logger *slog.Logger) *TrashHandler {
	return &TrashHandler{
		purger: purger,
		logger: logger,
	}
}

// Purge runs the trash purge immediately
func (h *TrashHandler) Purge(c *gin.Context) {
	result, err := h.purger.PurgeOnce(c.Request.Context(), worker.TriggerManual)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
