package model

import "errors"

var (
	// ErrSyncFailed indicates that the GitHub skill sync could not complete.
	ErrSyncFailed = errors.New("failed to sync skills from GitHub")
	// ErrNoToken indicates that the user has no usable GitHub token.
	ErrNoToken = errors.New("GitHub token not available")
)
