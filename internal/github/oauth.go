package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/gitcodegud/backend/internal/config"
)

// OAuthUser is the portion of the GitHub /user response needed to link an account.
type OAuthUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// OAuthResult carries the linked identity and the tokens to store.
type OAuthResult struct {
	User         OAuthUser
	AccessToken  string
	RefreshToken string
}

// OAuthProvider implements the GitHub authorization-code flow.
type OAuthProvider struct {
	config *oauth2.Config
}

// NewOAuthProvider creates an OAuthProvider from application configuration.
func NewOAuthProvider(cfg config.GitHubConfig) *OAuthProvider {
	return &OAuthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"read:user", "user:email", "repo"},
			Endpoint:     oauthgithub.Endpoint,
		},
	}
}

// AuthURL returns the GitHub authorization URL for the given CSRF state.
func (p *OAuthProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the GitHub user profile and tokens.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*OAuthResult, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github: exchanging OAuth code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("github: calling /user API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: /user API returned status %d", resp.StatusCode)
	}

	var user OAuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("github: decoding /user response: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("github: /user API returned an invalid user")
	}

	return &OAuthResult{
		User:         user,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}
