package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
)

// Health reports that the process is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"status":  "ok",
		"message": "Document Management API is running",
	})
}

// Ready reports whether the database answers.
func Ready(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			apierrors.RespondWithError(c, http.StatusServiceUnavailable,
				apierrors.NewAPIError(apierrors.ErrCodeInternalError, "database unavailable"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ready"})
	}
}
