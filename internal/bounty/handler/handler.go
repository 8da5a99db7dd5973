// Package handler provides HTTP handlers for bounty endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
	"github.com/gitcodegud/backend/internal/bounty/service"
	"github.com/gitcodegud/backend/internal/middleware"
)

// Handler handles HTTP requests for bounty endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new bounty handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /bounties request.
func (h *Handler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req bountyModel.CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.writeError(c, err, "failed to create bounty")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /bounties/:id request.
func (h *Handler) Get(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), middleware.CurrentUser(c), bountyID)
	if err != nil {
		h.writeError(c, err, "failed to load bounty")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles GET /bounties request.
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	resp, err := h.service.ListOpen(c.Request.Context(), page, perPage)
	if err != nil {
		h.writeError(c, err, "failed to list bounties")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMine handles GET /profile/bounties request.
func (h *Handler) ListMine(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	bounties, err := h.service.ListMine(c.Request.Context(), actor)
	if err != nil {
		h.writeError(c, err, "failed to list owned bounties")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bounties": bounties})
}

// Update handles PATCH /bounties/:id request.
func (h *Handler) Update(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	var req bountyModel.UpdateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), middleware.CurrentUser(c), bountyID, &req)
	if err != nil {
		h.writeError(c, err, "failed to update bounty")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Archive handles DELETE /bounties/:id request.
func (h *Handler) Archive(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), middleware.CurrentUser(c), bountyID); err != nil {
		h.writeError(c, err, "failed to archive bounty")
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": true})
}

// Restore handles POST /bounties/:id/restore request.
func (h *Handler) Restore(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	resp, err := h.service.Restore(c.Request.Context(), middleware.CurrentUser(c), bountyID)
	if err != nil {
		h.writeError(c, err, "failed to restore bounty")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Submit handles POST /bounties/:id/submissions request.
func (h *Handler) Submit(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), middleware.CurrentUser(c), bountyID)
	if err != nil {
		h.writeError(c, err, "failed to create submission")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Export handles GET /bounties/:id/export request.
func (h *Handler) Export(c *gin.Context) {
	bountyID, ok := h.bountyID(c)
	if !ok {
		return
	}

	resp, err := h.service.Export(c.Request.Context(), middleware.CurrentUser(c), bountyID)
	if err != nil {
		h.writeError(c, err, "failed to export bounty")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bountyID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorResponse(c, "INVALID_REQUEST", "invalid bounty id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error, logMessage string) {
	if validationErr, ok := bountyModel.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": validationErr.Message,
				"field":   validationErr.Field,
			},
		})
		return
	}

	switch {
	case errors.Is(err, bountyModel.ErrBountyNotFound):
		errorResponse(c, "NOT_FOUND", "bounty not found", http.StatusNotFound)
	case errors.Is(err, bountyModel.ErrBountyExists):
		errorResponse(c, "BOUNTY_EXISTS", err.Error(), http.StatusConflict)
	case errors.Is(err, bountyModel.ErrBountyArchived):
		errorResponse(c, "BOUNTY_ARCHIVED", err.Error(), http.StatusConflict)
	case errors.Is(err, bountyModel.ErrBountyNotArchived):
		errorResponse(c, "BOUNTY_NOT_ARCHIVED", err.Error(), http.StatusConflict)
	case errors.Is(err, bountyModel.ErrSubmissionExists):
		errorResponse(c, "SUBMISSION_EXISTS", err.Error(), http.StatusConflict)
	case errors.Is(err, bountyModel.ErrForbidden):
		errorResponse(c, "FORBIDDEN", "operation not allowed", http.StatusForbidden)
	default:
		h.logger.Errorw(logMessage, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
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
