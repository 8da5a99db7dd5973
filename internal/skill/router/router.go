// Package router provides skill module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gitcodegud/backend/internal/github"
	"github.com/gitcodegud/backend/internal/skill/handler"
	skillRepository "github.com/gitcodegud/backend/internal/skill/repository"
	"github.com/gitcodegud/backend/internal/skill/service"
	userRepository "github.com/gitcodegud/backend/internal/user/repository"
)

// RegisterRoutes registers skill module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ghFactory github.ClientFactory, logger *zap.SugaredLogger) {
	skills := skillRepository.New(db)
	users := userRepository.New(db)
	svc := service.New(skills, users, ghFactory, logger)
	h := handler.New(svc, logger)

	r.GET("/users/:id/skills", h.GetProfile)
	r.POST("/profile/skills/sync", h.SyncSkills)
}
