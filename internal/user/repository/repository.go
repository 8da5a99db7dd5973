// Package repository provides data access layer for the user module.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	userModel "github.com/gitcodegud/backend/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// GetByID finds a user by primary key.
	GetByID(ctx context.Context, userID int64) (*userModel.User, error)

	// GetByProviderID finds a user by OAuth provider identity.
	GetByProviderID(ctx context.Context, provider, providerID string) (*userModel.User, error)

	// UpsertFromOAuth creates or refreshes a user from an OAuth login.
	// Keyed on (provider, provider id); tokens are refreshed on every login.
	UpsertFromOAuth(ctx context.Context, user *userModel.User) (*userModel.User, error)

	// Search returns users whose nickname contains the given fragment.
	Search(ctx context.Context, nickname string, limit int) ([]userModel.User, int64, error)

	// Leaderboard returns users ordered by cached XP descending.
	Leaderboard(ctx context.Context, page, perPage int) ([]userModel.User, int64, error)

	// RecomputeXP refreshes the users.xp leaderboard cache from summed skill XP.
	RecomputeXP(ctx context.Context, userID int64) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new user repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds a user by primary key.
func (r *repository) GetByID(ctx context.Context, userID int64) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByProviderID finds a user by OAuth provider identity.
func (r *repository) GetByProviderID(ctx context.Context, provider, providerID string) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).
		Where("oauth_provider = ? AND oauth_provider_id = ?", provider, providerID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpsertFromOAuth creates or refreshes a user from an OAuth login.
func (r *repository) UpsertFromOAuth(ctx context.Context, user *userModel.User) (*userModel.User, error) {
	existing, err := r.GetByProviderID(ctx, user.OAuthProvider, user.OAuthProviderID)
	if err != nil && !errors.Is(err, userModel.ErrUserNotFound) {
		return nil, err
	}

	if existing == nil {
		if createErr := r.db.WithContext(ctx).Create(user).Error; createErr != nil {
			return nil, createErr
		}
		return user, nil
	}

	updates := map[string]interface{}{
		"name":                         user.Name,
		"nickname":                     user.Nickname,
		"oauth_provider_token":         user.OAuthProviderToken,
		"oauth_provider_refresh_token": user.OAuthProviderRefreshToken,
	}
	if user.Email != "" {
		updates["email"] = user.Email
	}

	if updateErr := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error; updateErr != nil {
		return nil, updateErr
	}

	return r.GetByID(ctx, existing.ID)
}

// Search returns users whose nickname contains the given fragment.
func (r *repository) Search(ctx context.Context, nickname string, limit int) ([]userModel.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&userModel.User{})
	if nickname != "" {
		query = query.Where("nickname LIKE ?", "%"+nickname+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []userModel.User
	if err := query.Order("nickname ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []userModel.User{}
	}

	return users, total, nil
}

// Leaderboard returns users ordered by cached XP descending.
func (r *repository) Leaderboard(ctx context.Context, page, perPage int) ([]userModel.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&userModel.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []userModel.User
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "xp"}, Desc: true}).
		Order("id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []userModel.User{}
	}

	return users, total, nil
}

// RecomputeXP refreshes the users.xp leaderboard cache from summed skill XP.
// The cache is display-only; the skill pivot rows stay the source of truth.
func (r *repository) RecomputeXP(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr(
			"(SELECT COALESCE(SUM(xp), 0) FROM user_skills WHERE user_skills.user_id = ?)", userID,
		)).Error
}
