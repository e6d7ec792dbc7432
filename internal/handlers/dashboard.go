package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *slog.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Summary returns counts and the latest documents and activities
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
