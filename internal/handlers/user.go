package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/document-management-api/internal/dto"
	apierrors "github.com/yukikurage/document-management-api/internal/errors"
	"github.com/yukikurage/document-management-api/internal/middleware"
	"github.com/yukikurage/document-management-api/internal/services"
)

// UserHandler serves account administration. All routes are admin only.
type UserHandler struct {
	userService *services.UserService
	logger      *slog.Logger
}

func NewUserHandler(userService *services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers lists accounts, optionally filtered by q
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondItems(c, dto.ToUserDTOs(users))
}

// CreateUser creates a USER account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("user created",
		slog.Uint64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	respondData(c, http.StatusCreated, dto.ToUserDTO(*user))
}

// SetUserActive activates or deactivates an account
func (h *UserHandler) SetUserActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		apierrors.BadRequest(c, "is_active must be a boolean")
		return
	}

	user, err := h.userService.SetActive(actorID, id, *req.IsActive)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("user active state changed",
		slog.Uint64("user_id", user.ID),
		slog.Bool("is_active", user.IsActive),
		slog.Uint64("actor_id", actorID),
	)
	respondData(c, http.StatusOK, dto.ToUserDTO(*user))
}
