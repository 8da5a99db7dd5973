// Package service provides business logic layer for the skill module.
package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/github"
	skillModel "github.com/gitcodegud/backend/internal/skill/model"
	skillRepository "github.com/gitcodegud/backend/internal/skill/repository"
	userRepository "github.com/gitcodegud/backend/internal/user/repository"
	"github.com/gitcodegud/backend/internal/xp"
)

// Service defines the interface for skill business logic operations.
type Service interface {
	// Profile aggregates a user's skill rows into a leveled profile.
	Profile(ctx context.Context, userID int64) (*skillModel.ProfileResponse, error)

	// SyncFromGitHub reconciles the user's skills with GitHub language statistics.
	SyncFromGitHub(ctx context.Context, userID int64) (*skillModel.SyncResponse, error)
}

type service struct {
	skills    skillRepository.Repository
	users     userRepository.Repository
	ghFactory github.ClientFactory
	logger    *zap.SugaredLogger
}

// New creates a new skill service instance.
func New(
	skills skillRepository.Repository,
	users userRepository.Repository,
	ghFactory github.ClientFactory,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		skills:    skills,
		users:     users,
		ghFactory: ghFactory,
		logger:    logger,
	}
}

// Profile aggregates a user's skill rows into a leveled profile.
// The overall level derives from summed per-skill XP; per-skill levels are
// read as stored, maintained by whichever process last wrote the pivot.
func (s *service) Profile(ctx context.Context, userID int64) (*skillModel.ProfileResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.skills.GetUserSkills(ctx, userID)
	if err != nil {
		s.logger.Errorw("failed to load user skills", "user_id", userID, "error", err)
		return nil, err
	}

	totalXP := 0
	for _, row := range rows {
		totalXP += row.XP
	}

	level := xp.LevelFor(totalXP)

	return &skillModel.ProfileResponse{
		UserID:   userID,
		TotalXP:  totalXP,
		Level:    level,
		Skills:   rows,
		Progress: xp.LevelProgress(totalXP, level),
	}, nil
}

// SyncFromGitHub reconciles the user's skills with GitHub language statistics.
// The sync only ever adds newly discovered skills; existing pivot rows are
// never touched. Best effort: partial progress is kept on failure.
func (s *service) SyncFromGitHub(ctx context.Context, userID int64) (*skillModel.SyncResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasValidToken() {
		s.logger.Debugw("skill sync rejected", "user_id", userID, "reason", "no token")
		return nil, skillModel.ErrNoToken
	}

	client := s.ghFactory.ForToken(user.OAuthProviderToken)

	repos, err := client.GetUserRepositories(ctx)
	if err != nil {
		s.logger.Warnw("skill sync failed to list repositories", "user_id", userID, "error", err)
		return nil, skillModel.ErrSyncFailed
	}

	languageBytes, scanned := s.foldLanguageStats(ctx, client, repos)
	if len(languageBytes) == 0 {
		s.logger.Warnw("skill sync found no language data", "user_id", userID, "repos", len(repos))
		return nil, skillModel.ErrSyncFailed
	}

	added, known, err := s.storeSkills(ctx, userID, languageBytes)
	if err != nil {
		s.logger.Errorw("skill sync failed to store skills", "user_id", userID, "error", err)
		return nil, skillModel.ErrSyncFailed
	}

	if err := s.users.RecomputeXP(ctx, userID); err != nil {
		s.logger.Warnw("failed to refresh leaderboard XP cache", "user_id", userID, "error", err)
	}

	s.logger.Infow("skill sync completed",
		"user_id", userID, "repos_scanned", scanned, "skills_added", added, "skills_known", known)

	return &skillModel.SyncResponse{
		Synced:       true,
		SkillsAdded:  added,
		SkillsKnown:  known,
		ReposScanned: scanned,
	}, nil
}

// foldLanguageStats merges per-repo language histograms into one byte total per
// language, skipping forks and archived repositories.
func (s *service) foldLanguageStats(
	ctx context.Context,
	client github.Client,
	repos []github.Repository,
) (map[string]int, int) {
	totals := make(map[string]int)
	scanned := 0

	for _, repo := range repos {
		if repo.Fork || repo.Archived {
			continue
		}
		scanned++

		for language, bytes := range client.GetRepositoryLanguages(ctx, repo.FullName) {
			totals[language] += bytes
		}
	}

	return totals, scanned
}

// storeSkills resolves catalog entries and seeds missing pivot rows at
// xp=1, level=1. Languages are processed in a stable order so concurrent
// syncs contend on rows in the same sequence.
func (s *service) storeSkills(ctx context.Context, userID int64, languageBytes map[string]int) (added, known int, err error) {
	languages := make([]string, 0, len(languageBytes))
	for language := range languageBytes {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	for _, language := range languages {
		skill, skillErr := s.skills.FirstOrCreateSkill(ctx, language, skillModel.SkillTypeFor(language))
		if skillErr != nil {
			return added, known, skillErr
		}

		created, pivotErr := s.skills.FirstOrCreateUserSkill(ctx, userID, skill.ID, 1, xp.LevelFor(1))
		if pivotErr != nil {
			return added, known, pivotErr
		}
		if created {
			added++
		} else {
			known++
		}
	}

	return added, known, nil
}
