// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetSkillsStatistics handles GET /statistics/skills request.
func (h *Handler) GetSkillsStatistics(c *gin.Context) {
	resp, err := h.service.GetSkillsStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting skills statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBountyStatistics handles GET /statistics/bounties request.
func (h *Handler) GetBountyStatistics(c *gin.Context) {
	resp, err := h.service.GetBountyStatistics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting bounty statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
