package hubstaff

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors of the time-tracking API client
var (
	ErrConfiguration = goerr.New("hubstaff is not configured")
	ErrTokenRefresh  = goerr.New("failed to refresh hubstaff access token")
	ErrRemoteFetch   = goerr.New("failed to fetch from hubstaff")
)

// Context keys for error values
const (
	StatusKey = "status"
	BodyKey   = "body"
	URLKey    = "url"

	// TransientKey marks token refresh failures that may succeed on retry
	TransientKey = "transient"
)

// IsHardError reports failures that no retry or partial result can recover
// from: a missing configuration or a token that cannot be refreshed.
func IsHardError(err error) bool {
	return errors.Is(err, ErrTokenRefresh) || errors.Is(err, ErrConfiguration)
}
