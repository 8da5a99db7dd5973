// Package handler provides HTTP handlers for skill endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/middleware"
	skillModel "github.com/gitcodegud/backend/internal/skill/model"
	"github.com/gitcodegud/backend/internal/skill/service"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

// Handler handles HTTP requests for skill endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new skill handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetProfile handles GET /users/:id/skills request.
func (h *Handler) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid user id", http.StatusBadRequest)
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			errorResponse(c, "NOT_FOUND", "user not found", http.StatusNotFound)
			return
		}
		h.logger.Errorw("failed to load skill profile", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SyncSkills handles POST /profile/skills/sync request.
func (h *Handler) SyncSkills(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		errorResponse(c, "UNAUTHENTICATED", "authentication required", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.SyncFromGitHub(c.Request.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, skillModel.ErrNoToken) {
			errorResponse(c, "NO_TOKEN",
				"GitHub token not available. Please reconnect your GitHub account.",
				http.StatusBadRequest)
			return
		}
		if errors.Is(err, skillModel.ErrSyncFailed) {
			errorResponse(c, "SYNC_FAILED",
				"Failed to sync skills from GitHub. Please try again.",
				http.StatusBadGateway)
			return
		}
		h.logger.Errorw("skill sync failed", "user_id", actor.ID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// errorResponse writes a structured error payload.
func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
