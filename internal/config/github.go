package config

import (
	"fmt"
	"time"
)

// GitHubConfig holds GitHub OAuth and API configuration.
type GitHubConfig struct {
	// ClientID is the OAuth application client ID.
	ClientID string
	// ClientSecret is the OAuth application client secret.
	ClientSecret string
	// CallbackURL is the OAuth authorization callback URL.
	CallbackURL string
	// APIBaseURL is the GitHub REST API base URL.
	APIBaseURL string
	// APITimeout is the timeout for outbound GitHub API calls.
	APITimeout time.Duration
}

// LoadGitHubConfigFromEnv loads GitHub configuration from environment variables.
func LoadGitHubConfigFromEnv() GitHubConfig {
	return GitHubConfig{
		ClientID:     GetEnv("GITHUB_CLIENT_ID", ""),
		ClientSecret: GetEnv("GITHUB_CLIENT_SECRET", ""),
		CallbackURL:  GetEnv("GITHUB_CALLBACK_URL", "http://localhost:8080/auth/github/callback"),
		APIBaseURL:   GetEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
		APITimeout:   GetEnvDuration("GITHUB_API_TIMEOUT", 10*time.Second),
	}
}

// Validate validates GitHub configuration.
func (c GitHubConfig) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("GITHUB_API_BASE_URL must not be empty")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("GITHUB_API_TIMEOUT must be greater than 0")
	}
	return nil
}
