// Package service provides business logic for the user module: profiles,
// leaderboard, search, and GitHub account linking.
package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/github"
	skillService "github.com/gitcodegud/backend/internal/skill/service"
	userModel "github.com/gitcodegud/backend/internal/user/model"
	userRepository "github.com/gitcodegud/backend/internal/user/repository"
)

// Service defines the interface for user business logic operations.
type Service interface {
	// Profile returns a user profile with aggregated skill and level data.
	Profile(ctx context.Context, userID int64) (*userModel.ProfileResponse, error)

	// Leaderboard returns a page of users ranked by cached XP.
	Leaderboard(ctx context.Context, page, perPage int) (*userModel.LeaderboardResponse, error)

	// Search returns users whose nickname contains the fragment.
	Search(ctx context.Context, nickname string, limit int) (*userModel.SearchUsersResponse, error)

	// LoginURL returns the GitHub authorization URL for the CSRF state.
	LoginURL(state string) string

	// HandleCallback exchanges the OAuth code and upserts the linked user.
	HandleCallback(ctx context.Context, code string) (*userModel.User, error)
}

type service struct {
	users  userRepository.Repository
	skills skillService.Service
	oauth  *github.OAuthProvider
	logger *zap.SugaredLogger
}

// New creates a new user service instance.
func New(
	users userRepository.Repository,
	skills skillService.Service,
	oauth *github.OAuthProvider,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		users:  users,
		skills: skills,
		oauth:  oauth,
		logger: logger,
	}
}

// Profile returns a user profile with aggregated skill and level data.
func (s *service) Profile(ctx context.Context, userID int64) (*userModel.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	skillProfile, err := s.skills.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills := make([]userModel.SkillEntry, 0, len(skillProfile.Skills))
	for _, row := range skillProfile.Skills {
		skills = append(skills, userModel.SkillEntry{
			SkillName: row.SkillName,
			Type:      row.Type,
			XP:        row.XP,
			Level:     row.Level,
		})
	}

	return &userModel.ProfileResponse{
		ID:       user.ID,
		Name:     user.Name,
		Nickname: user.Nickname,
		Email:    user.Email,
		Avatar:   user.Avatar(),
		TotalXP:  skillProfile.TotalXP,
		Level:    skillProfile.Level,
		Skills:   skills,
		Progress: skillProfile.Progress,
	}, nil
}

// Leaderboard returns a page of users ranked by cached XP.
func (s *service) Leaderboard(ctx context.Context, page, perPage int) (*userModel.LeaderboardResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := s.users.Leaderboard(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	resp := &userModel.LeaderboardResponse{
		Users:   make([]userModel.LeaderboardEntry, 0, len(users)),
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}
	for i, user := range users {
		resp.Users = append(resp.Users, userModel.LeaderboardEntry{
			Rank: (page-1)*perPage + i + 1,
			ID:   user.ID,
			Name: user.Name,
			XP:   user.XP,
		})
	}
	return resp, nil
}

// Search returns users whose nickname contains the fragment.
func (s *service) Search(ctx context.Context, nickname string, limit int) (*userModel.SearchUsersResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	users, total, err := s.users.Search(ctx, nickname, limit)
	if err != nil {
		return nil, err
	}

	resp := &userModel.SearchUsersResponse{
		Users: make([]userModel.SearchUserEntry, 0, len(users)),
		Total: total,
	}
	for _, user := range users {
		resp.Users = append(resp.Users, userModel.SearchUserEntry{
			ID:       user.ID,
			Nickname: user.Nickname,
			Name:     user.Name,
			Avatar:   user.Avatar(),
		})
	}
	return resp, nil
}

// LoginURL returns the GitHub authorization URL for the CSRF state.
func (s *service) LoginURL(state string) string {
	return s.oauth.AuthURL(state)
}

// HandleCallback exchanges the OAuth code and upserts the linked user.
func (s *service) HandleCallback(ctx context.Context, code string) (*userModel.User, error) {
	result, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.Warnw("oauth exchange failed", "error", err)
		return nil, userModel.ErrOAuthExchangeFailed
	}

	name := result.User.Name
	if name == "" {
		name = result.User.Login
	}

	user, err := s.users.UpsertFromOAuth(ctx, &userModel.User{
		Name:                      name,
		Nickname:                  result.User.Login,
		Email:                     result.User.Email,
		OAuthProvider:             "github",
		OAuthProviderID:           strconv.FormatInt(result.User.ID, 10),
		OAuthProviderToken:        result.AccessToken,
		OAuthProviderRefreshToken: result.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("user logged in via github", "user_id", user.ID, "login", result.User.Login)
	return user, nil
}
