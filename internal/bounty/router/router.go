// Package router provides bounty module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gitcodegud/backend/internal/bounty/handler"
	"github.com/gitcodegud/backend/internal/bounty/policy"
	"github.com/gitcodegud/backend/internal/bounty/repository"
	"github.com/gitcodegud/backend/internal/bounty/service"
	"github.com/gitcodegud/backend/internal/github"
	"github.com/gitcodegud/backend/internal/middleware"
)

// RegisterRoutes registers bounty module routes.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ghFactory github.ClientFactory, logger *zap.SugaredLogger) {
	bounties := repository.New(db)
	pol := policy.New(ghFactory, logger)
	svc := service.New(bounties, pol, ghFactory, logger)
	h := handler.New(svc, logger)

	r.GET("/bounties", h.List)
	r.GET("/bounties/:id", h.Get)

	authed := r.Group("/", middleware.RequireAuth())
	authed.POST("/bounties", h.Create)
	authed.PATCH("/bounties/:id", h.Update)
	authed.DELETE("/bounties/:id", h.Archive)
	authed.POST("/bounties/:id/restore", h.Restore)
	authed.POST("/bounties/:id/submissions", h.Submit)
	authed.GET("/bounties/:id/export", h.Export)
	authed.GET("/profile/bounties", h.ListMine)
}
