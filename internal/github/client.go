// Package github provides a thin client for the GitHub REST API and
// URL parsing helpers for repository and issue links.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/gitcodegud/backend/internal/config"
	"github.com/gitcodegud/backend/pkg/retry"
)

const (
	userAgent  = "GitCodeGud-App"
	apiVersion = "application/vnd.github.v3+json"
)

// Repository is the subset of the GitHub repository payload the service uses.
type Repository struct {
	FullName    string      `json:"full_name"`
	Fork        bool        `json:"fork"`
	Archived    bool        `json:"archived"`
	Permissions Permissions `json:"permissions"`
}

// Permissions holds the caller's access rights on a repository.
type Permissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

// Issue is the subset of the GitHub issue payload the service uses.
type Issue struct {
	Number int    `json:"number"`
	State  string `json:"state"`
	Title  string `json:"title"`
}

// Client defines the GitHub API operations consumed by the application.
type Client interface {
	// GetRepository fetches repository metadata including caller permissions.
	GetRepository(ctx context.Context, fullName string) (*Repository, error)

	// GetRepositoryLanguages fetches the language byte histogram for a repository.
	// Returns an empty map on any failure.
	GetRepositoryLanguages(ctx context.Context, fullName string) map[string]int

	// GetUserRepositories fetches repositories owned by the authenticated user.
	GetUserRepositories(ctx context.Context) ([]Repository, error)

	// IsIssueOpen reports whether the issue exists and is open.
	// Returns false on any failure.
	IsIssueOpen(ctx context.Context, fullName string, issueNumber int) bool
}

// ClientFactory builds token-scoped clients. Tokens are per user, so a fresh
// client is created for each acting user.
type ClientFactory interface {
	ForToken(token string) Client
}

type httpClientFactory struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClientFactory creates a ClientFactory backed by the GitHub REST API.
func NewClientFactory(cfg config.GitHubConfig, logger *zap.SugaredLogger) ClientFactory {
	return &httpClientFactory{
		baseURL:    cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: cfg.APITimeout},
		logger:     logger,
	}
}

func (f *httpClientFactory) ForToken(token string) Client {
	return &apiClient{
		baseURL:    f.baseURL,
		token:      token,
		httpClient: f.httpClient,
		logger:     f.logger,
		retryCfg:   retry.HTTPConfig(),
	}
}

type apiClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.SugaredLogger
	retryCfg   retry.Config
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *apiClient) get(ctx context.Context, path string, out interface{}) error {
	body, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if reqErr != nil {
			return nil, reqErr
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", apiVersion)
		req.Header.Set("User-Agent", userAgent)

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// Drain so the connection can be reused.
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, fmt.Errorf("github: GET %s returned status %d", path, resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("github: decoding GET %s response: %w", path, err)
	}
	return nil
}

// GetRepository fetches repository metadata including caller permissions.
func (c *apiClient) GetRepository(ctx context.Context, fullName string) (*Repository, error) {
	var repo Repository
	if err := c.get(ctx, "/repos/"+fullName, &repo); err != nil {
		return nil, fmt.Errorf("github: fetching repository %s: %w", fullName, err)
	}
	return &repo, nil
}

// GetRepositoryLanguages fetches the language byte histogram for a repository.
func (c *apiClient) GetRepositoryLanguages(ctx context.Context, fullName string) map[string]int {
	languages := map[string]int{}
	if err := c.get(ctx, "/repos/"+fullName+"/languages", &languages); err != nil {
		c.logger.Warnw("failed to fetch repository languages", "repo", fullName, "error", err)
		return map[string]int{}
	}
	return languages
}

// GetUserRepositories fetches repositories owned by the authenticated user.
func (c *apiClient) GetUserRepositories(ctx context.Context) ([]Repository, error) {
	params := url.Values{
		"type":     {"owner"},
		"sort":     {"updated"},
		"per_page": {"100"},
	}

	var repos []Repository
	if err := c.get(ctx, "/user/repos?"+params.Encode(), &repos); err != nil {
		return nil, fmt.Errorf("github: fetching user repositories: %w", err)
	}
	return repos, nil
}

// IsIssueOpen reports whether the issue exists and is open.
func (c *apiClient) IsIssueOpen(ctx context.Context, fullName string, issueNumber int) bool {
	var issue Issue
	path := fmt.Sprintf("/repos/%s/issues/%d", fullName, issueNumber)
	if err := c.get(ctx, path, &issue); err != nil {
		c.logger.Warnw("failed to fetch issue", "repo", fullName, "issue", issueNumber, "error", err)
		return false
	}
	return issue.State == "open"
}

// HasValidToken reports whether a stored OAuth token is usable.
func HasValidToken(token string) bool {
	return token != ""
}
