// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/gitcodegud/backend/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetSkillsStatistics returns adoption statistics for all catalog skills.
	GetSkillsStatistics(ctx context.Context) ([]model.SkillStatistics, error)

	// GetBountyStatistics returns aggregate statistics over all bounties,
	// archived rows included.
	GetBountyStatistics(ctx context.Context) (*model.BountyStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetSkillsStatistics returns adoption statistics for all catalog skills.
func (r *repository) GetSkillsStatistics(ctx context.Context) ([]model.SkillStatistics, error) {
	var stats []model.SkillStatistics

	err := r.db.WithContext(ctx).
		Table("skills").
		Select(`
			skills.skill_name,
			skills.type,
			COALESCE(COUNT(user_skills.user_id), 0) as holder_count,
			COALESCE(SUM(user_skills.xp), 0) as total_xp
		`).
		Joins("LEFT JOIN user_skills ON skills.id = user_skills.skill_id").
		Group("skills.id, skills.skill_name, skills.type").
		Order("holder_count DESC, skills.skill_name ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetSkillsStatistics database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.SkillStatistics{}
	}

	return stats, nil
}

// GetBountyStatistics returns aggregate statistics over all bounties.
func (r *repository) GetBountyStatistics(ctx context.Context) (*model.BountyStatistics, error) {
	var result struct {
		TotalBounties    int64   `gorm:"column:total_bounties"`
		OpenBounties     int64   `gorm:"column:open_bounties"`
		ArchivedBounties int64   `gorm:"column:archived_bounties"`
		AverageRewardXP  float64 `gorm:"column:avg_reward_xp"`
		With0Submissions int64   `gorm:"column:bounties_0_submissions"`
		With1Submission  int64   `gorm:"column:bounties_1_submission"`
		WithManySubs     int64   `gorm:"column:bounties_many_submissions"`
	}

	err := r.db.WithContext(ctx).
		Table("bounties").
		Select(`
			COUNT(*) as total_bounties,
			COALESCE(SUM(CASE WHEN bounties.deleted_at IS NULL AND bounties.status = 'open' THEN 1 ELSE 0 END), 0) as open_bounties,
			COALESCE(SUM(CASE WHEN bounties.deleted_at IS NOT NULL THEN 1 ELSE 0 END), 0) as archived_bounties,
			COALESCE(AVG(bounties.reward_xp), 0) as avg_reward_xp,
			COALESCE(SUM(CASE WHEN COALESCE(submission_counts.submission_count, 0) = 0 THEN 1 ELSE 0 END), 0) as bounties_0_submissions,
			COALESCE(SUM(CASE WHEN COALESCE(submission_counts.submission_count, 0) = 1 THEN 1 ELSE 0 END), 0) as bounties_1_submission,
			COALESCE(SUM(CASE WHEN COALESCE(submission_counts.submission_count, 0) >= 2 THEN 1 ELSE 0 END), 0) as bounties_many_submissions
		`).
		Joins(`
			LEFT JOIN (
				SELECT bounty_id, CAST(COUNT(*) AS REAL) as submission_count
				FROM submissions
				GROUP BY bounty_id
			) submission_counts ON bounties.id = submission_counts.bounty_id
		`).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetBountyStatistics database error", "error", err)
		return nil, err
	}

	return &model.BountyStatistics{
		TotalBounties:             int(result.TotalBounties),
		OpenBounties:              int(result.OpenBounties),
		ArchivedBounties:          int(result.ArchivedBounties),
		AverageRewardXP:           result.AverageRewardXP,
		BountiesWith0Submissions:  int(result.With0Submissions),
		BountiesWith1Submission:   int(result.With1Submission),
		BountiesWithManySubmitted: int(result.WithManySubs),
	}, nil
}
