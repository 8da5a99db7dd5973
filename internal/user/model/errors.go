package model

import "errors"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthenticated indicates that no acting user could be resolved for the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrOAuthExchangeFailed indicates that the OAuth code exchange with GitHub failed.
	ErrOAuthExchangeFailed = errors.New("failed to complete GitHub authorization")
	// ErrInvalidOAuthState indicates that the OAuth callback state did not match.
	ErrInvalidOAuthState = errors.New("invalid OAuth state")
)
