// Package service provides business logic for the bounty module: creation
// with idempotent issue binding, the archive/restore lifecycle, submissions,
// and data export.
package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	bountyModel "github.com/gitcodegud/backend/internal/bounty/model"
	"github.com/gitcodegud/backend/internal/bounty/policy"
	"github.com/gitcodegud/backend/internal/bounty/repository"
	"github.com/gitcodegud/backend/internal/github"
	userModel "github.com/gitcodegud/backend/internal/user/model"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2000
)

// Service defines the interface for bounty business logic.
type Service interface {
	// Create validates the request, checks repository rights against GitHub,
	// and atomically binds a new bounty to the referenced issue.
	Create(ctx context.Context, user *userModel.User, req *bountyModel.CreateBountyRequest) (*bountyModel.BountyResponse, error)

	// Get returns a bounty. Archived bounties are visible to the owner only;
	// everyone else gets ErrBountyNotFound.
	Get(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error)

	// Update edits title, description, and reward of an active bounty.
	Update(ctx context.Context, user *userModel.User, bountyID int64, req *bountyModel.UpdateBountyRequest) (*bountyModel.BountyResponse, error)

	// Archive soft deletes a bounty; the issue binding survives.
	Archive(ctx context.Context, user *userModel.User, bountyID int64) error

	// Restore reactivates an archived bounty, the only path back to active.
	Restore(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error)

	// ListOpen returns a page of active open bounties, newest first.
	ListOpen(ctx context.Context, page, perPage int) (*bountyModel.ListBountiesResponse, error)

	// ListMine returns all bounties owned by the user, archived included.
	ListMine(ctx context.Context, user *userModel.User) ([]bountyModel.BountyResponse, error)

	// Submit records the user's claim of having completed the bounty.
	Submit(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.SubmissionResponse, error)

	// Export returns a bounty with all its submissions for the owner.
	Export(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.ExportResponse, error)
}

type service struct {
	bounties  repository.Repository
	policy    policy.Policy
	ghFactory github.ClientFactory
	logger    *zap.SugaredLogger
}

// New creates a new bounty service instance.
func New(bounties repository.Repository, pol policy.Policy, ghFactory github.ClientFactory, logger *zap.SugaredLogger) Service {
	return &service{
		bounties:  bounties,
		policy:    pol,
		ghFactory: ghFactory,
		logger:    logger,
	}
}

// Create validates the request and atomically binds a new bounty to the issue.
func (s *service) Create(ctx context.Context, user *userModel.User, req *bountyModel.CreateBountyRequest) (*bountyModel.BountyResponse, error) {
	repoRef, issueRef, err := validateCreateRequest(req)
	if err != nil {
		return nil, err
	}

	if !s.policy.CanCreateForRepository(ctx, user, req.RepoURL) {
		return nil, bountyModel.ErrForbidden
	}

	client := s.ghFactory.ForToken(user.OAuthProviderToken)
	if !client.IsIssueOpen(ctx, repoRef.FullName, issueRef.IssueNumber) {
		return nil, bountyModel.NewValidationError("issue_url", "issue does not exist or is not open")
	}

	// Best effort: a bounty without a language profile is still valid.
	languages := sortedLanguages(client.GetRepositoryLanguages(ctx, repoRef.FullName))

	var created *bountyModel.Bounty
	err = s.bounties.Transaction(ctx, func(tx repository.Repository) error {
		repo, txErr := tx.UpsertRepo(ctx, canonicalRepoURL(repoRef), repoRef.FullName, "", user.ID)
		if txErr != nil {
			return txErr
		}

		issue, txErr := tx.FirstOrCreateIssue(ctx, canonicalIssueURL(issueRef), repo.ID, "")
		if txErr != nil {
			return txErr
		}

		bound, txErr := tx.AnyBountyForIssue(ctx, issue.ID)
		if txErr != nil {
			return txErr
		}
		if bound {
			return bountyModel.ErrBountyExists
		}

		bounty := &bountyModel.Bounty{
			IssueID:     issue.ID,
			Title:       req.Title,
			Description: req.Description,
			RewardXP:    req.RewardXP,
			Status:      bountyModel.StatusOpen,
			Languages:   languages,
		}
		if txErr := tx.Create(ctx, bounty); txErr != nil {
			return txErr
		}

		created = bounty
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("bounty created",
		"bounty_id", created.ID, "user_id", user.ID, "issue_url", req.IssueURL)

	full, err := s.bounties.GetByID(ctx, created.ID, false)
	if err != nil {
		return nil, err
	}
	resp := bountyModel.NewBountyResponse(full)
	return &resp, nil
}

// Get returns a bounty visible to the user.
func (s *service) Get(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error) {
	bounty, err := s.bounties.GetByID(ctx, bountyID, true)
	if err != nil {
		return nil, err
	}

	// Archived bounties do not exist for anyone but the owner.
	if !s.policy.CanView(user, bounty) {
		return nil, bountyModel.ErrBountyNotFound
	}

	resp := bountyModel.NewBountyResponse(bounty)
	return &resp, nil
}

// Update edits title, description, and reward of an active bounty.
func (s *service) Update(ctx context.Context, user *userModel.User, bountyID int64, req *bountyModel.UpdateBountyRequest) (*bountyModel.BountyResponse, error) {
	if err := validateEditableFields(req.Title, req.Description, req.RewardXP); err != nil {
		return nil, err
	}

	bounty, err := s.bounties.GetByID(ctx, bountyID, true)
	if err != nil {
		return nil, err
	}
	// Archived bounties accept no edits; for update purposes they do not
	// exist, owner included. Restore is the only way back.
	if bounty.IsArchived() {
		return nil, bountyModel.ErrBountyNotFound
	}
	if !s.policy.CanUpdate(user, bounty) {
		return nil, bountyModel.ErrForbidden
	}

	if err := s.bounties.Update(ctx, bountyID, req.Title, req.Description, req.RewardXP); err != nil {
		return nil, err
	}

	updated, err := s.bounties.GetByID(ctx, bountyID, false)
	if err != nil {
		return nil, err
	}
	resp := bountyModel.NewBountyResponse(updated)
	return &resp, nil
}

// Archive soft deletes a bounty.
func (s *service) Archive(ctx context.Context, user *userModel.User, bountyID int64) error {
	bounty, err := s.bounties.GetByID(ctx, bountyID, true)
	if err != nil {
		return err
	}
	if bounty.IsArchived() {
		if !s.policy.CanView(user, bounty) {
			return bountyModel.ErrBountyNotFound
		}
		return bountyModel.ErrBountyArchived
	}
	if !s.policy.CanArchive(user, bounty) {
		return bountyModel.ErrForbidden
	}

	if err := s.bounties.Archive(ctx, bountyID); err != nil {
		return err
	}

	s.logger.Infow("bounty archived", "bounty_id", bountyID, "user_id", user.ID)
	return nil
}

// Restore reactivates an archived bounty.
func (s *service) Restore(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.BountyResponse, error) {
	bounty, err := s.bounties.GetByID(ctx, bountyID, true)
	if err != nil {
		return nil, err
	}
	if !bounty.IsArchived() {
		return nil, bountyModel.ErrBountyNotArchived
	}
	if !s.policy.CanRestore(user, bounty) {
		return nil, bountyModel.ErrBountyNotFound
	}

	if err := s.bounties.Restore(ctx, bountyID); err != nil {
		return nil, err
	}

	s.logger.Infow("bounty restored", "bounty_id", bountyID, "user_id", user.ID)

	restored, err := s.bounties.GetByID(ctx, bountyID, false)
	if err != nil {
		return nil, err
	}
	resp := bountyModel.NewBountyResponse(restored)
	return &resp, nil
}

// ListOpen returns a page of active open bounties.
func (s *service) ListOpen(ctx context.Context, page, perPage int) (*bountyModel.ListBountiesResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	bounties, total, err := s.bounties.ListOpen(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	resp := &bountyModel.ListBountiesResponse{
		Bounties: make([]bountyModel.BountyResponse, 0, len(bounties)),
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	}
	for i := range bounties {
		resp.Bounties = append(resp.Bounties, bountyModel.NewBountyResponse(&bounties[i]))
	}
	return resp, nil
}

// ListMine returns all bounties owned by the user, archived included.
func (s *service) ListMine(ctx context.Context, user *userModel.User) ([]bountyModel.BountyResponse, error) {
	bounties, err := s.bounties.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]bountyModel.BountyResponse, 0, len(bounties))
	for i := range bounties {
		responses = append(responses, bountyModel.NewBountyResponse(&bounties[i]))
	}
	return responses, nil
}

// Submit records the user's claim of having completed the bounty.
func (s *service) Submit(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.SubmissionResponse, error) {
	bounty, err := s.bounties.GetByID(ctx, bountyID, false)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanSubmit(user, bounty) {
		return nil, bountyModel.ErrForbidden
	}

	submission := &bountyModel.Submission{
		BountyID: bounty.ID,
		UserID:   user.ID,
		Status:   bountyModel.SubmissionPending,
	}
	if err := s.bounties.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Infow("submission created",
		"submission_id", submission.ID, "bounty_id", bountyID, "user_id", user.ID)

	return &bountyModel.SubmissionResponse{
		ID:        submission.ID,
		BountyID:  submission.BountyID,
		UserID:    submission.UserID,
		Status:    submission.Status,
		CreatedAt: submission.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Export returns a bounty with all its submissions for the owner.
func (s *service) Export(ctx context.Context, user *userModel.User, bountyID int64) (*bountyModel.ExportResponse, error) {
	bounty, err := s.bounties.GetByID(ctx, bountyID, true)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanExport(user, bounty) {
		return nil, bountyModel.ErrForbidden
	}

	submissions, err := s.bounties.GetSubmissions(ctx, bountyID)
	if err != nil {
		return nil, err
	}

	resp := &bountyModel.ExportResponse{
		Bounty:      bountyModel.NewBountyResponse(bounty),
		Submissions: make([]bountyModel.SubmissionResponse, 0, len(submissions)),
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	for _, sub := range submissions {
		resp.Submissions = append(resp.Submissions, bountyModel.SubmissionResponse{
			ID:        sub.ID,
			BountyID:  sub.BountyID,
			UserID:    sub.UserID,
			Status:    sub.Status,
			CreatedAt: sub.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// validateCreateRequest checks field bounds and resolves both URL references,
// ensuring the issue actually belongs to the referenced repository.
func validateCreateRequest(req *bountyModel.CreateBountyRequest) (*github.RepoRef, *github.IssueRef, error) {
	if err := validateEditableFields(req.Title, req.Description, req.RewardXP); err != nil {
		return nil, nil, err
	}

	repoRef := github.ParseRepoURL(req.RepoURL)
	if repoRef == nil {
		return nil, nil, bountyModel.NewValidationError("repo_url", "must be a valid GitHub repository URL")
	}

	issueRef := github.ParseIssueURL(req.IssueURL)
	if issueRef == nil {
		return nil, nil, bountyModel.NewValidationError("issue_url", "must be a valid GitHub issue URL")
	}

	if !strings.EqualFold(issueRef.RepoFullName, repoRef.FullName) {
		return nil, nil, bountyModel.NewValidationError("issue_url", "issue does not belong to the given repository")
	}

	return repoRef, issueRef, nil
}

// validateEditableFields checks the bounds shared by create and update.
func validateEditableFields(title, description string, rewardXP int) error {
	if strings.TrimSpace(title) == "" {
		return bountyModel.NewValidationError("title", "must not be empty")
	}
	if len(title) > maxTitleLength {
		return bountyModel.NewValidationError("title", "must be at most 255 characters")
	}
	if len(description) > maxDescriptionLength {
		return bountyModel.NewValidationError("description", "must be at most 2000 characters")
	}
	if rewardXP < bountyModel.MinRewardXP || rewardXP > bountyModel.MaxRewardXP {
		return bountyModel.NewValidationError("reward_xp", "must be between 1 and 1000")
	}
	return nil
}

// sortedLanguages orders a language byte histogram by volume, ties broken
// alphabetically, so the dominant language always comes first.
func sortedLanguages(stats map[string]int) []string {
	languages := make([]string, 0, len(stats))
	for name := range stats {
		languages = append(languages, name)
	}
	sort.Slice(languages, func(i, j int) bool {
		if stats[languages[i]] != stats[languages[j]] {
			return stats[languages[i]] > stats[languages[j]]
		}
		return languages[i] < languages[j]
	})
	return languages
}

// canonicalRepoURL normalizes a repository reference to its canonical URL form.
func canonicalRepoURL(ref *github.RepoRef) string {
	return "https://github.com/" + ref.FullName
}

// canonicalIssueURL normalizes an issue reference to its canonical URL form.
func canonicalIssueURL(ref *github.IssueRef) string {
	return "https://github.com/" + ref.RepoFullName + "/issues/" + strconv.Itoa(ref.IssueNumber)
}
