// Package repository provides data access layer for the bounty module.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
)

// Repository defines the interface for bounty data access operations.
type Repository interface {
	// UpsertRepo finds a repo row by URL or creates it; the owning user and
	// derived git id are refreshed on every call (last writer wins).
	UpsertRepo(ctx context.Context, url, gitID, description string, userID int64) (*bountyModel.Repo, error)

	// FirstOrCreateIssue finds an issue row by (url, repo) or creates it.
	FirstOrCreateIssue(ctx context.Context, url string, repoID int64, description string) (*bountyModel.Issue, error)

	// AnyBountyForIssue reports whether any bounty row, archived included,
	// is bound to the issue.
	AnyBountyForIssue(ctx context.Context, issueID int64) (bool, error)

	// Create inserts a new bounty. A uniqueness violation on the issue
	// reference is reported as ErrBountyExists.
	Create(ctx context.Context, bounty *bountyModel.Bounty) error

	// GetByID finds a bounty with its issue and repo chain loaded.
	// Archived rows are only visible when includeArchived is set.
	GetByID(ctx context.Context, bountyID int64, includeArchived bool) (*bountyModel.Bounty, error)

	// Update mutates title, description, and reward of an active bounty.
	Update(ctx context.Context, bountyID int64, title, description string, rewardXP int) error

	// Archive soft deletes an active bounty.
	Archive(ctx context.Context, bountyID int64) error

	// Restore clears the soft-delete mark and reopens the bounty.
	Restore(ctx context.Context, bountyID int64) error

	// ListOpen returns active open bounties, newest first.
	ListOpen(ctx context.Context, page, perPage int) ([]bountyModel.Bounty, int64, error)

	// ListByOwner returns all bounties, archived included, whose repo belongs
	// to the given user, newest first.
	ListByOwner(ctx context.Context, userID int64) ([]bountyModel.Bounty, error)

	// CreateSubmission inserts a submission. A duplicate (bounty, user) pair
	// is reported as ErrSubmissionExists.
	CreateSubmission(ctx context.Context, submission *bountyModel.Submission) error

	// GetSubmissions returns all submissions for a bounty, oldest first.
	GetSubmissions(ctx context.Context, bountyID int64) ([]bountyModel.Submission, error)

	// Transaction runs fn against a repository bound to a single database
	// transaction, rolling back when fn returns an error.
	Transaction(ctx context.Context, fn func(Repository) error) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new bounty repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// isDuplicateError checks if err is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}

// Transaction runs fn against a repository bound to a database transaction.
func (r *repository) Transaction(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

// UpsertRepo finds a repo row by URL or creates it, refreshing ownership.
func (r *repository) UpsertRepo(ctx context.Context, url, gitID, description string, userID int64) (*bountyModel.Repo, error) {
	var repo bountyModel.Repo
	err := r.db.WithContext(ctx).Where("url = ?", url).First(&repo).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		repo = bountyModel.Repo{
			UserID:      userID,
			URL:         url,
			GitID:       gitID,
			Description: description,
		}
		if createErr := r.db.WithContext(ctx).Create(&repo).Error; createErr != nil {
			return nil, createErr
		}
		return &repo, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"user_id":     userID,
		"git_id":      gitID,
		"description": description,
	}
	if updateErr := r.db.WithContext(ctx).
		Model(&repo).
		Updates(updates).Error; updateErr != nil {
		return nil, updateErr
	}

	return &repo, nil
}

// FirstOrCreateIssue finds an issue row by (url, repo) or creates it.
func (r *repository) FirstOrCreateIssue(ctx context.Context, url string, repoID int64, description string) (*bountyModel.Issue, error) {
	var issue bountyModel.Issue
	err := r.db.WithContext(ctx).
		Where("url = ? AND repo_id = ?", url, repoID).
		First(&issue).Error
	if err == nil {
		return &issue, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	issue = bountyModel.Issue{
		RepoID:      repoID,
		URL:         url,
		Description: description,
	}
	if createErr := r.db.WithContext(ctx).Create(&issue).Error; createErr != nil {
		return nil, createErr
	}
	return &issue, nil
}

// AnyBountyForIssue reports whether any bounty row is bound to the issue.
func (r *repository) AnyBountyForIssue(ctx context.Context, issueID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&bountyModel.Bounty{}).
		Where("issue_id = ?", issueID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new bounty.
func (r *repository) Create(ctx context.Context, bounty *bountyModel.Bounty) error {
	err := r.db.WithContext(ctx).Create(bounty).Error
	if err != nil {
		if isDuplicateError(err) {
			return bountyModel.ErrBountyExists
		}
		return err
	}
	return nil
}

// GetByID finds a bounty with its issue and repo chain loaded.
func (r *repository) GetByID(ctx context.Context, bountyID int64, includeArchived bool) (*bountyModel.Bounty, error) {
	query := r.db.WithContext(ctx).Preload("Issue.Repo")
	if includeArchived {
		query = query.Unscoped().
			Preload("Issue", func(db *gorm.DB) *gorm.DB { return db.Unscoped() })
	}

	var bounty bountyModel.Bounty
	err := query.First(&bounty, bountyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bountyModel.ErrBountyNotFound
		}
		return nil, err
	}
	return &bounty, nil
}

// Update mutates title, description, and reward of an active bounty.
func (r *repository) Update(ctx context.Context, bountyID int64, title, description string, rewardXP int) error {
	result := r.db.WithContext(ctx).
		Model(&bountyModel.Bounty{}).
		Where("id = ?", bountyID).
		Updates(map[string]interface{}{
			"title":       title,
			"description": description,
			"reward_xp":   rewardXP,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bountyModel.ErrBountyNotFound
	}
	return nil
}

// Archive soft deletes an active bounty.
func (r *repository) Archive(ctx context.Context, bountyID int64) error {
	result := r.db.WithContext(ctx).Delete(&bountyModel.Bounty{}, bountyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bountyModel.ErrBountyNotFound
	}
	return nil
}

// Restore clears the soft-delete mark and reopens the bounty.
func (r *repository) Restore(ctx context.Context, bountyID int64) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Model(&bountyModel.Bounty{}).
		Where("id = ? AND deleted_at IS NOT NULL", bountyID).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"status":     bountyModel.StatusOpen,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return bountyModel.ErrBountyNotFound
	}
	return nil
}

// ListOpen returns active open bounties, newest first.
func (r *repository) ListOpen(ctx context.Context, page, perPage int) ([]bountyModel.Bounty, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&bountyModel.Bounty{}).
		Where("status = ?", bountyModel.StatusOpen)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bounties []bountyModel.Bounty
	err := r.db.WithContext(ctx).
		Preload("Issue.Repo").
		Where("status = ?", bountyModel.StatusOpen).
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bounties).Error
	if err != nil {
		return nil, 0, err
	}
	if bounties == nil {
		bounties = []bountyModel.Bounty{}
	}

	return bounties, total, nil
}

// ListByOwner returns all bounties whose repo belongs to the given user.
func (r *repository) ListByOwner(ctx context.Context, userID int64) ([]bountyModel.Bounty, error) {
	var bounties []bountyModel.Bounty
	err := r.db.WithContext(ctx).
		Unscoped().
		Preload("Issue.Repo").
		Joins("JOIN issues ON issues.id = bounties.issue_id").
		Joins("JOIN repos ON repos.id = issues.repo_id").
		Where("repos.user_id = ?", userID).
		Order("bounties.created_at DESC").
		Find(&bounties).Error
	if err != nil {
		return nil, err
	}
	if bounties == nil {
		bounties = []bountyModel.Bounty{}
	}
	return bounties, nil
}

// CreateSubmission inserts a submission.
func (r *repository) CreateSubmission(ctx context.Context, submission *bountyModel.Submission) error {
	err := r.db.WithContext(ctx).Create(submission).Error
	if err != nil {
		if isDuplicateError(err) {
			return bountyModel.ErrSubmissionExists
		}
		return err
	}
	return nil
}

// GetSubmissions returns all submissions for a bounty, oldest first.
func (r *repository) GetSubmissions(ctx context.Context, bountyID int64) ([]bountyModel.Submission, error) {
	var submissions []bountyModel.Submission
	err := r.db.WithContext(ctx).
		Where("bounty_id = ?", bountyID).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	if submissions == nil {
		submissions = []bountyModel.Submission{}
	}
	return submissions, nil
}
