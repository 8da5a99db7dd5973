package github

import (
	"regexp"
	"strconv"
	"strings"
)

// RepoRef identifies a GitHub repository parsed from a URL.
type RepoRef struct {
	Owner    string
	Name     string
	FullName string
}

// IssueRef identifies a GitHub issue parsed from a URL.
type IssueRef struct {
	Owner        string
	Name         string
	IssueNumber  int
	RepoFullName string
}

var (
	repoURLPattern  = regexp.MustCompile(`(?i)^https?://github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?(?:/.*)?$`)
	issueURLPattern = regexp.MustCompile(`(?i)^https://github\.com/([^/]+)/([^/]+)/issues/(\d+)(?:/.*)?$`)
)

// ParseRepoURL extracts owner and repository name from a GitHub repository URL.
// Returns nil if the URL does not reference a GitHub repository.
func ParseRepoURL(url string) *RepoRef {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	matches := repoURLPattern.FindStringSubmatch(url)
	if matches == nil {
		return nil
	}

	owner := strings.TrimSpace(matches[1])
	name := strings.TrimSuffix(strings.TrimSpace(matches[2]), ".git")
	if owner == "" || name == "" {
		return nil
	}

	return &RepoRef{
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
	}
}

// ParseIssueURL extracts repository info and issue number from a GitHub issue URL.
// Returns nil if the URL does not reference a GitHub issue.
func ParseIssueURL(url string) *IssueRef {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	if !strings.HasPrefix(url, "http") {
		url = "https://" + url
	}

	matches := issueURLPattern.FindStringSubmatch(url)
	if matches == nil {
		return nil
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil {
		return nil
	}

	owner := strings.TrimSpace(matches[1])
	name := strings.TrimSpace(matches[2])

	return &IssueRef{
		Owner:        owner,
		Name:         name,
		IssueNumber:  number,
		RepoFullName: owner + "/" + name,
	}
}

// IsValidRepoURL reports whether url is a parseable GitHub repository URL.
func IsValidRepoURL(url string) bool {
	return ParseRepoURL(url) != nil
}

// IsValidIssueURL reports whether url is a parseable GitHub issue URL.
func IsValidIssueURL(url string) bool {
	return ParseIssueURL(url) != nil
}
