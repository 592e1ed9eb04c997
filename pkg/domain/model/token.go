package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// AccessTokenID is the fixed key of the single stored Hubstaff token row
const AccessTokenID = "hubstaff"

// AccessToken is a bearer token for the time-tracking API together with the
// refresh token that renews it.
type AccessToken struct {
	AccessToken  string    `json:"access_token" firestore:"access_token" masq:"secret"`
	RefreshToken string    `json:"refresh_token" firestore:"refresh_token" masq:"secret"`
	ExpiresAt    time.Time `json:"expires_at" firestore:"expires_at"` // zero = unknown expiry
	UpdatedAt    time.Time `json:"updated_at" firestore:"updated_at"`
}

// ValidAt reports whether the access token can still be used at now, keeping
// buffer as a safety margin before the expiry.
func (t *AccessToken) ValidAt(now time.Time, buffer time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(t.ExpiresAt.Add(-buffer))
}

// Validate checks the token can be persisted
func (t *AccessToken) Validate() error {
	if t == nil {
		return goerr.New("access token is nil")
	}
	if t.AccessToken == "" && t.RefreshToken == "" {
		return goerr.New("access token or refresh token is required")
	}
	return nil
}
