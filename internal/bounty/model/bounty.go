package model

import (
	"time"

	"gorm.io/gorm"
)

// Bounty statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Submission statuses.
const (
	SubmissionPending  = "pending"
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
)

// Reward bounds enforced on create and update.
const (
	MinRewardXP = 1
	MaxRewardXP = 1000
)

// Repo represents a GitHub repository claimed by a user.
// Matches the repos table schema; url uniquely identifies a row.
type Repo struct {
	ID          int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	UserID      int64     `gorm:"column:user_id;type:bigint;not null;index"                 json:"user_id"`
	URL         string    `gorm:"column:url;type:varchar(512);not null;uniqueIndex"         json:"url"`
	GitID       string    `gorm:"column:git_id;type:varchar(255);not null"                  json:"git_id"`
	Description string    `gorm:"column:description;type:text"                              json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Repo) TableName() string {
	return "repos"
}

// Issue represents a GitHub issue referenced by a bounty.
// Matches the issues table schema; (url, repo_id) is unique.
type Issue struct {
	ID          int64     `gorm:"primaryKey;column:id;type:bigserial"                                    json:"id"`
	RepoID      int64     `gorm:"column:repo_id;type:bigint;not null;uniqueIndex:idx_issues_url_repo"    json:"repo_id"`
	URL         string    `gorm:"column:url;type:varchar(512);not null;uniqueIndex:idx_issues_url_repo"  json:"url"`
	Name        string    `gorm:"column:name;type:varchar(255)"                                          json:"name"`
	Description string    `gorm:"column:description;type:text"                                           json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"              json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"              json:"updated_at"`

	Repo *Repo `gorm:"foreignKey:RepoID" json:"repo,omitempty"`
}

// TableName specifies the table name for GORM.
func (Issue) TableName() string {
	return "issues"
}

// Bounty represents an XP reward offer bound to exactly one GitHub issue.
// Matches the bounties table schema. The unique index on issue_id covers
// soft-deleted rows as well: an issue is bound to one bounty for the
// entity's lifetime, and restore is the only way back to an active state.
type Bounty struct {
	ID          int64          `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	IssueID     int64          `gorm:"column:issue_id;type:bigint;not null;uniqueIndex"          json:"issue_id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null"                   json:"title"`
	Description string         `gorm:"column:description;type:text"                              json:"description"`
	RewardXP    int            `gorm:"column:reward_xp;type:int;not null"                        json:"reward_xp"`
	Status      string         `gorm:"column:status;type:varchar(16);not null;default:open"      json:"status"`
	Languages   []string       `gorm:"column:languages;serializer:json"                          json:"languages"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;type:timestamptz;index"                  json:"deleted_at,omitempty"`

	Issue *Issue `gorm:"foreignKey:IssueID" json:"issue,omitempty"`
}

// TableName specifies the table name for GORM.
func (Bounty) TableName() string {
	return "bounties"
}

// IsArchived reports whether the bounty is soft deleted.
func (b *Bounty) IsArchived() bool {
	return b.DeletedAt.Valid
}

// OwnerID returns the owning repo's user id through the issue chain, or 0 when
// the chain is not loaded.
func (b *Bounty) OwnerID() int64 {
	if b.Issue == nil || b.Issue.Repo == nil {
		return 0
	}
	return b.Issue.Repo.UserID
}

// Submission represents a user's claim of having completed a bounty.
// Matches the submissions table schema; (bounty_id, user_id) is unique.
type Submission struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                                           json:"id"`
	BountyID  int64     `gorm:"column:bounty_id;type:bigint;not null;uniqueIndex:idx_submissions_bounty_user" json:"bounty_id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_submissions_bounty_user"   json:"user_id"`
	Status    string    `gorm:"column:status;type:varchar(16);not null;default:pending"                       json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                     json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                     json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Submission) TableName() string {
	return "submissions"
}
