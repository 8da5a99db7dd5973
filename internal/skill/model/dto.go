// Package model provides data transfer objects and domain models for the skill module.
package model

import "github.com/gitcodegud/backend/internal/xp"

// ProfileResponse represents a user's aggregated skill profile.
type ProfileResponse struct {
	UserID   int64          `json:"user_id"`
	TotalXP  int            `json:"total_xp"`
	Level    int            `json:"level"`
	Skills   []UserSkillRow `json:"skills"`
	Progress xp.Progress    `json:"progress"`
}

// SyncResponse represents the outcome of a GitHub skill sync.
type SyncResponse struct {
	Synced       bool `json:"synced"`
	SkillsAdded  int  `json:"skills_added"`
	SkillsKnown  int  `json:"skills_known"`
	ReposScanned int  `json:"repos_scanned"`
}
