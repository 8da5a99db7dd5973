// Package handler provides HTTP handlers for user endpoints.
package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/middleware"
	userModel "github.com/gitcodegud/backend/internal/user/model"
	"github.com/gitcodegud/backend/internal/user/service"
)

// oauthStateCookie holds the CSRF state between login and callback.
const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

// Handler handles HTTP requests for user endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetProfile handles GET /users/:id request.
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
		h.logger.Errorw("failed to load user profile", "user_id", userID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMe handles GET /profile request.
func (h *Handler) GetMe(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	profile, err := h.service.Profile(c.Request.Context(), actor.ID)
	if err != nil {
		h.logger.Errorw("failed to load own profile", "user_id", actor.ID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Leaderboard handles GET /leaderboard request.
func (h *Handler) Leaderboard(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	resp, err := h.service.Leaderboard(c.Request.Context(), page, perPage)
	if err != nil {
		h.logger.Errorw("failed to load leaderboard", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Search handles GET /search/users request.
func (h *Handler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.service.Search(c.Request.Context(), c.Query("nickname"), limit)
	if err != nil {
		h.logger.Errorw("failed to search users", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login handles GET /auth/github/login request. It issues a CSRF state
// cookie and redirects to the GitHub authorization page.
func (h *Handler) Login(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		h.logger.Errorw("failed to generate oauth state", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.service.LoginURL(state))
}

// Callback handles GET /auth/github/callback request.
func (h *Handler) Callback(c *gin.Context) {
	state := c.Query("state")
	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != expected {
		errorResponse(c, "INVALID_STATE", userModel.ErrInvalidOAuthState.Error(), http.StatusBadRequest)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		errorResponse(c, "INVALID_REQUEST", "missing authorization code", http.StatusBadRequest)
		return
	}

	user, err := h.service.HandleCallback(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, userModel.ErrOAuthExchangeFailed) {
			errorResponse(c, "OAUTH_FAILED", "GitHub login failed. Please try again.", http.StatusBadGateway)
			return
		}
		h.logger.Errorw("oauth callback failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, user)
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
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
