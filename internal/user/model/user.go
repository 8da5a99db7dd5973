package model

import (
	"fmt"
	"time"
)

// User represents a user entity in the system.
// Matches the users table schema.
type User struct {
	ID                        int64     `gorm:"primaryKey;column:id;type:bigserial"                         json:"id"`
	Name                      string    `gorm:"column:name;type:varchar(255);not null"                      json:"name"`
	Nickname                  string    `gorm:"column:nickname;type:varchar(255);index:idx_users_nickname"  json:"nickname"`
	Email                     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"         json:"email"`
	Description               string    `gorm:"column:description;type:text"                                json:"description"`
	OAuthProvider             string    `gorm:"column:oauth_provider;type:varchar(64)"                      json:"oauth_provider,omitempty"`
	OAuthProviderID           string    `gorm:"column:oauth_provider_id;type:varchar(255);index"            json:"-"`
	OAuthProviderToken        string    `gorm:"column:oauth_provider_token;type:text"                       json:"-"`
	OAuthProviderRefreshToken string    `gorm:"column:oauth_provider_refresh_token;type:text"               json:"-"`
	XP                        int       `gorm:"column:xp;type:bigint;not null;default:0;index:idx_users_xp" json:"xp"`
	CreatedAt                 time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"   json:"created_at"`
	UpdatedAt                 time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"   json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// Avatar returns the GitHub avatar URL for github-linked accounts, empty otherwise.
func (u *User) Avatar() string {
	if u.OAuthProvider != "github" || u.OAuthProviderID == "" {
		return ""
	}
	return fmt.Sprintf("https://avatars.githubusercontent.com/u/%s?v=4", u.OAuthProviderID)
}

// HasValidToken reports whether the user has a stored OAuth access token.
func (u *User) HasValidToken() bool {
	return u.OAuthProviderToken != ""
}
