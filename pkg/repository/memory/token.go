package memory

import (
	"context"
	"sync"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type tokenRepository struct {
	mu    sync.RWMutex
	token *model.AccessToken
}

func newTokenRepository() *tokenRepository {
	return &tokenRepository{}
}

func (r *tokenRepository) Get(ctx context.Context) (*model.AccessToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.token == nil {
		return nil, goerr.Wrap(ErrNotFound, "access token not found", goerr.V("id", model.AccessTokenID))
	}

	tokenCopy := *r.token
	return &tokenCopy, nil
}

func (r *tokenRepository) Put(ctx context.Context, token *model.AccessToken) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid access token")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tokenCopy := *token
	r.token = &tokenCopy
	return nil
}
