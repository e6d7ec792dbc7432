package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/constants"
	"github.com/yukikurage/document-management-api/internal/dto"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/utils"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.DataResponse{OK: true, Data: data})
}

func respondItems(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, dto.ItemsResponse{OK: true, Items: items})
}

func respondPage(c *gin.Context, items interface{}, params utils.PaginationParams, total int64) {
	c.JSON(http.StatusOK, dto.ListResponse{
		OK:     true,
		Items:  items,
		Limit:  params.Limit,
		Offset: params.Offset,
		Total:  total,
	})
}

// respondError maps service errors onto the error envelope. Errors without a
// known kind are logged and reported as a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if apierrors.Respond(c, err) {
		return
	}

	logger.Error("request failed",
		slog.String("request_id", c.GetString(constants.ContextKeyRequestID)),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()),
	)
	_ = c.Error(err)
	apierrors.InternalError(c, "")
}

// pathID parses the :id route parameter, answering 400 when it is invalid.
func pathID(c *gin.Context) (uint64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
