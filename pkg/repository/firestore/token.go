package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tokensCollection = "tokens"

type tokenRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTokenRepository(client *firestore.Client) *tokenRepository {
	return &tokenRepository{client: client}
}

// tokenDoc is the Firestore persistence model
type tokenDoc struct {
	AccessToken  string    `firestore:"access_token"`
	RefreshToken string    `firestore:"refresh_token"`
	ExpiresAt    time.Time `firestore:"expires_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (r *tokenRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(collectionName(r.collectionPrefix, tokensCollection)).Doc(model.AccessTokenID)
}

func (r *tokenRepository) Get(ctx context.Context) (*model.AccessToken, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "access token not found", goerr.V("id", model.AccessTokenID))
		}
		return nil, goerr.Wrap(err, "failed to get access token from firestore")
	}

	var doc tokenDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal access token")
	}

	return &model.AccessToken{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		ExpiresAt:    doc.ExpiresAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (r *tokenRepository) Put(ctx context.Context, token *model.AccessToken) error {
	if err := token.Validate(); err != nil {
		return goerr.Wrap(err, "invalid access token")
	}

	doc := &tokenDoc{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.ExpiresAt,
		UpdatedAt:    token.UpdatedAt,
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	if _, err := r.doc().Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put access token to firestore")
	}
	return nil
}
