// Package router provides user module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gitcodegud/backend/internal/config"
	"github.com/gitcodegud/backend/internal/github"
	"github.com/gitcodegud/backend/internal/middleware"
	skillRepository "github.com/gitcodegud/backend/internal/skill/repository"
	skillService "github.com/gitcodegud/backend/internal/skill/service"
	"github.com/gitcodegud/backend/internal/user/handler"
	userRepository "github.com/gitcodegud/backend/internal/user/repository"
	"github.com/gitcodegud/backend/internal/user/service"
)

// RegisterRoutes registers user module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.GitHubConfig, ghFactory github.ClientFactory, logger *zap.SugaredLogger) {
	users := userRepository.New(db)
	skills := skillService.New(skillRepository.New(db), users, ghFactory, logger)
	oauth := github.NewOAuthProvider(cfg)
	svc := service.New(users, skills, oauth, logger)
	h := handler.New(svc, logger)

	r.GET("/users/:id", h.GetProfile)
	r.GET("/search/users", h.Search)
	r.GET("/leaderboard", h.Leaderboard)
	r.GET("/auth/github/login", h.Login)
	r.GET("/auth/github/callback", h.Callback)

	r.GET("/profile", middleware.RequireAuth(), h.GetMe)
}
