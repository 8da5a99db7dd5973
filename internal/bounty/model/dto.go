// Package model provides data transfer objects and domain models for the bounty module.
package model

import "time"

// CreateBountyRequest represents the request to create a bounty.
type CreateBountyRequest struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description"`
	RewardXP    int    `json:"reward_xp"   binding:"required"`
	RepoURL     string `json:"repo_url"    binding:"required"`
	IssueURL    string `json:"issue_url"   binding:"required"`
}

// UpdateBountyRequest represents the request to update a bounty.
// The issue binding and status are immutable through this operation.
type UpdateBountyRequest struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description" binding:"required"`
	RewardXP    int    `json:"reward_xp"   binding:"required"`
}

// RepoResponse is the repository block embedded in bounty responses.
type RepoResponse struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	GitID  string `json:"git_id"`
	UserID int64  `json:"user_id"`
}

// IssueResponse is the issue block embedded in bounty responses.
type IssueResponse struct {
	ID   int64         `json:"id"`
	URL  string        `json:"url"`
	Repo *RepoResponse `json:"repo,omitempty"`
}

// BountyResponse represents a bounty in API responses.
type BountyResponse struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	RewardXP    int            `json:"reward_xp"`
	Status      string         `json:"status"`
	Languages   []string       `json:"languages"`
	Archived    bool           `json:"archived"`
	CreatedAt   string         `json:"created_at"`
	ArchivedAt  string         `json:"archived_at,omitempty"`
	Issue       *IssueResponse `json:"issue,omitempty"`
}

// SubmissionResponse represents a submission in API responses.
type SubmissionResponse struct {
	ID        int64  `json:"id"`
	BountyID  int64  `json:"bounty_id"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ListBountiesResponse represents a page of open bounties.
type ListBountiesResponse struct {
	Bounties []BountyResponse `json:"bounties"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
	Total    int64            `json:"total"`
}

// ExportResponse carries a bounty with its submissions for data export.
type ExportResponse struct {
	Bounty      BountyResponse       `json:"bounty"`
	Submissions []SubmissionResponse `json:"submissions"`
	ExportedAt  string               `json:"exported_at"`
}

// NewBountyResponse builds a BountyResponse from a Bounty entity.
func NewBountyResponse(b *Bounty) BountyResponse {
	resp := BountyResponse{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		RewardXP:    b.RewardXP,
		Status:      b.Status,
		Languages:   b.Languages,
		Archived:    b.IsArchived(),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if resp.Languages == nil {
		resp.Languages = []string{}
	}
	if b.IsArchived() {
		resp.ArchivedAt = b.DeletedAt.Time.Format(time.RFC3339)
	}
	if b.Issue != nil {
		issue := &IssueResponse{ID: b.Issue.ID, URL: b.Issue.URL}
		if b.Issue.Repo != nil {
			issue.Repo = &RepoResponse{
				ID:     b.Issue.Repo.ID,
				URL:    b.Issue.Repo.URL,
				GitID:  b.Issue.Repo.GitID,
				UserID: b.Issue.Repo.UserID,
			}
		}
		resp.Issue = issue
	}
	return resp
}
