// Package model provides data transfer objects and domain models for the user module.
package model

import "github.com/gitcodegud/backend/internal/xp"

// SkillEntry is one leveled skill in a user profile.
type SkillEntry struct {
	SkillName string `json:"skill_name"`
	Type      string `json:"type"`
	XP        int    `json:"xp"`
	Level     int    `json:"level"`
}

// ProfileResponse represents a user profile with aggregated XP data.
type ProfileResponse struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Nickname string       `json:"nickname"`
	Email    string       `json:"email"`
	Avatar   string       `json:"avatar,omitempty"`
	TotalXP  int          `json:"total_xp"`
	Level    int          `json:"level"`
	Skills   []SkillEntry `json:"skills"`
	Progress xp.Progress  `json:"progress"`
}

// LeaderboardEntry is one ranked row in the leaderboard.
type LeaderboardEntry struct {
	Rank int    `json:"rank"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
	XP   int    `json:"xp"`
}

// LeaderboardResponse represents a leaderboard page.
type LeaderboardResponse struct {
	Users   []LeaderboardEntry `json:"users"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
	Total   int64              `json:"total"`
}

// SearchUserEntry is one row in a user search result.
type SearchUserEntry struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

// SearchUsersResponse represents a user search result page.
type SearchUsersResponse struct {
	Users []SearchUserEntry `json:"users"`
	Total int64             `json:"total"`
}
