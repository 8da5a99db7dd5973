// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/statistics/model"
	"github.com/gitcodegud/backend/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetSkillsStatistics returns adoption statistics for all catalog skills.
	GetSkillsStatistics(ctx context.Context) (*model.SkillsStatisticsResponse, error)

	// GetBountyStatistics returns aggregate statistics over bounties.
	GetBountyStatistics(ctx context.Context) (*model.BountyStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetSkillsStatistics returns adoption statistics for all catalog skills.
func (s *service) GetSkillsStatistics(ctx context.Context) (*model.SkillsStatisticsResponse, error) {
	skills, err := s.repo.GetSkillsStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetSkillsStatistics failed", "error", err)
		return nil, err
	}

	if skills == nil {
		skills = []model.SkillStatistics{}
	}

	return &model.SkillsStatisticsResponse{
		Skills: skills,
		Total:  len(skills),
	}, nil
}

// GetBountyStatistics returns aggregate statistics over bounties.
func (s *service) GetBountyStatistics(ctx context.Context) (*model.BountyStatisticsResponse, error) {
	stats, err := s.repo.GetBountyStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetBountyStatistics failed", "error", err)
		return nil, err
	}

	return &model.BountyStatisticsResponse{
		Statistics: *stats,
	}, nil
}
