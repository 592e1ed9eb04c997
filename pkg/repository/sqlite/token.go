package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type tokenRepository struct {
	db *sql.DB
}

func (r *tokenRepository) Get(ctx context.Context) (*model.AccessToken, error) {
	var (
		token                model.AccessToken
		expiresAt, updatedAt string
	)

	row := r.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, expires_at, updated_at FROM access_tokens WHERE id = ?`,
		model.AccessTokenID)
	if err := row.Scan(&token.AccessToken, &token.RefreshToken, &expiresAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "access token not found", goerr.V("id", model.AccessTokenID))
		}
		return nil, goerr.Wrap(err, "failed to get access token")
	}

	var err error
	if token.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	if token.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Put(ctx context.Context, token *model.AccessToken) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid access token")
	}

	updatedAt := token.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_tokens (id, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		model.AccessTokenID, token.AccessToken, token.RefreshToken,
		formatTime(token.ExpiresAt), formatTime(updatedAt))
	if err != nil {
		return goerr.Wrap(err, "failed to put access token")
	}
	return nil
}
