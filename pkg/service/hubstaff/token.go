package hubstaff

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTokenURL is the Hubstaff token endpoint
	DefaultTokenURL = "https://account.hubstaff.com/access_tokens"
	// DefaultExpiryBuffer is how long before expiry a token is treated as expired
	DefaultExpiryBuffer = 5 * time.Minute
	// DefaultRefreshRetries is the number of retries for transient refresh failures
	DefaultRefreshRetries = 2
	// DefaultRefreshBackoff is the first retry delay; it doubles on every retry
	DefaultRefreshBackoff = 500 * time.Millisecond
)

// AuthStyle selects how client credentials are sent on refresh
type AuthStyle string

const (
	// AuthStyleBasic sends client id and secret in an HTTP Basic header
	AuthStyleBasic AuthStyle = "basic"
	// AuthStyleParams sends a plain form body; client credentials are added only when set
	AuthStyleParams AuthStyle = "params"
)

func (s AuthStyle) oauth2() oauth2.AuthStyle {
	if s == AuthStyleBasic {
		return oauth2.AuthStyleInHeader
	}
	return oauth2.AuthStyleInParams
}

// TokenProvider returns valid access tokens, refreshing them through the
// refresh token when the cached one is about to expire. Refreshes are
// coalesced so concurrent callers share one exchange.
type TokenProvider struct {
	repo         interfaces.TokenRepository
	httpClient   *http.Client
	tokenURL     string
	clientID     string
	clientSecret string
	authStyle    AuthStyle
	buffer       time.Duration
	retries      int
	backoff      time.Duration

	mu       sync.RWMutex
	cached   *model.AccessToken
	seed     string // refresh token from configuration
	rejected string // access token refused by the API

	group singleflight.Group
}

var _ TokenSource = &TokenProvider{}

// TokenOption configures TokenProvider
type TokenOption func(*TokenProvider)

// WithTokenRepository persists refreshed tokens and reads tokens refreshed by other instances
func WithTokenRepository(repo interfaces.TokenRepository) TokenOption {
	return func(p *TokenProvider) {
		p.repo = repo
	}
}

// WithTokenURL overrides the token endpoint
func WithTokenURL(url string) TokenOption {
	return func(p *TokenProvider) {
		p.tokenURL = url
	}
}

// WithClientCredentials sets the OAuth client id and secret
func WithClientCredentials(id, secret string) TokenOption {
	return func(p *TokenProvider) {
		p.clientID = id
		p.clientSecret = secret
	}
}

// WithAuthStyle sets how client credentials are sent
func WithAuthStyle(style AuthStyle) TokenOption {
	return func(p *TokenProvider) {
		p.authStyle = style
	}
}

// WithRefreshToken seeds the refresh token used when none is stored
func WithRefreshToken(token string) TokenOption {
	return func(p *TokenProvider) {
		p.seed = token
	}
}

// WithStaticAccessToken seeds the cache with a token of unknown expiry
func WithStaticAccessToken(token string) TokenOption {
	return func(p *TokenProvider) {
		if token != "" {
			p.cached = &model.AccessToken{AccessToken: token}
		}
	}
}

// WithTokenHTTPClient sets the HTTP client used for the refresh exchange
func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(p *TokenProvider) {
		p.httpClient = c
	}
}

// WithExpiryBuffer sets the safety margin before expiry
func WithExpiryBuffer(d time.Duration) TokenOption {
	return func(p *TokenProvider) {
		p.buffer = d
	}
}

// WithRefreshRetry sets retry count and initial backoff for transient failures
func WithRefreshRetry(retries int, backoff time.Duration) TokenOption {
	return func(p *TokenProvider) {
		p.retries = retries
		p.backoff = backoff
	}
}

// NewTokenProvider creates a TokenProvider
func NewTokenProvider(opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		tokenURL:   DefaultTokenURL,
		authStyle:  AuthStyleParams,
		buffer:     DefaultExpiryBuffer,
		retries:    DefaultRefreshRetries,
		backoff:    DefaultRefreshBackoff,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Token returns a valid access token. A cached token is returned without any
// I/O; otherwise a single shared refresh runs.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if tok := p.validCached(); tok != "" {
		return tok, nil
	}

	// joined callers share the leader's refresh, so its cancellation must not fail them
	refreshCtx := context.WithoutCancel(ctx)
	v, err, shared := p.group.Do("token", func() (any, error) {
		return p.refresh(refreshCtx)
	})
	if err != nil {
		return "", err
	}
	if shared {
		logging.From(ctx).Debug("joined in-flight token refresh")
	}
	return v.(string), nil
}

// Invalidate drops token from the cache so the next call refreshes
func (p *TokenProvider) Invalidate(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.cached.AccessToken == token {
		if p.cached.RefreshToken != "" {
			p.seed = p.cached.RefreshToken
		}
		p.cached = nil
	}
	p.rejected = token
}

func (p *TokenProvider) validCached() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.cached.ValidAt(time.Now(), p.buffer) {
		return p.cached.AccessToken
	}
	return ""
}

func (p *TokenProvider) refresh(ctx context.Context) (string, error) {
	if tok := p.validCached(); tok != "" {
		return tok, nil
	}

	logger := logging.From(ctx)

	p.mu.RLock()
	refreshToken := p.seed
	if p.cached != nil && p.cached.RefreshToken != "" {
		refreshToken = p.cached.RefreshToken
	}
	rejected := p.rejected
	p.mu.RUnlock()

	if p.repo != nil {
		stored, err := p.repo.Get(ctx)
		switch {
		case err == nil:
			if stored.AccessToken != rejected && stored.ValidAt(time.Now(), p.buffer) {
				p.setCached(stored)
				logger.Debug("using stored access token", "expires_at", stored.ExpiresAt)
				return stored.AccessToken, nil
			}
			if stored.RefreshToken != "" {
				refreshToken = stored.RefreshToken
			}
		case errors.Is(err, interfaces.ErrNotFound):
		default:
			logger.Warn("failed to read stored access token", "error", err)
		}
	}

	if refreshToken == "" {
		return "", goerr.Wrap(ErrConfiguration, "no refresh token available")
	}

	token, err := p.exchangeWithRetry(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if p.repo != nil {
		if err := p.repo.Put(ctx, token); err != nil {
			logger.Error("failed to persist refreshed access token", "error", err)
		}
	}
	p.setCached(token)

	logger.Info("refreshed hubstaff access token", "expires_at", token.ExpiresAt)
	return token.AccessToken, nil
}

func (p *TokenProvider) setCached(token *model.AccessToken) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tokenCopy := *token
	p.cached = &tokenCopy
	if token.RefreshToken != "" {
		p.seed = token.RefreshToken
	}
}

func (p *TokenProvider) exchangeWithRetry(ctx context.Context, refreshToken string) (*model.AccessToken, error) {
	wait := p.backoff
	for attempt := 0; ; attempt++ {
		token, err := p.exchange(ctx, refreshToken)
		if err == nil {
			return token, nil
		}
		if attempt >= p.retries || !isTransient(err) || ctx.Err() != nil {
			return nil, err
		}

		logging.From(ctx).Warn("retrying token refresh", "attempt", attempt+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "token refresh canceled")
		case <-time.After(wait):
		}
		wait *= 2
	}
}

func (p *TokenProvider) exchange(ctx context.Context, refreshToken string) (*model.AccessToken, error) {
	cfg := &oauth2.Config{
		ClientID:     p.clientID,
		ClientSecret: p.clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.tokenURL,
			AuthStyle: p.authStyle.oauth2(),
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			code := rerr.Response.StatusCode
			return nil, goerr.Wrap(ErrTokenRefresh, "token endpoint returned an error",
				goerr.V(StatusKey, code),
				goerr.V(BodyKey, string(rerr.Body)),
				goerr.V(URLKey, p.tokenURL),
				goerr.V(TransientKey, code >= 500 || code == http.StatusTooManyRequests))
		}

		// only transport failures can succeed on retry; malformed responses cannot
		var uerr *url.Error
		return nil, goerr.Wrap(ErrTokenRefresh, err.Error(),
			goerr.V(URLKey, p.tokenURL),
			goerr.V(TransientKey, errors.As(err, &uerr)))
	}

	if tok.AccessToken == "" {
		return nil, goerr.Wrap(ErrTokenRefresh, "token endpoint returned no access token",
			goerr.V(URLKey, p.tokenURL),
			goerr.V(TransientKey, false))
	}

	expiresAt := tok.Expiry
	if expiresAt.IsZero() {
		expiresAt = jwtExpiry(tok.AccessToken)
	}

	newRefresh := tok.RefreshToken
	if newRefresh == "" {
		newRefresh = refreshToken
	}

	return &model.AccessToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: newRefresh,
		ExpiresAt:    expiresAt,
		UpdatedAt:    time.Now().UTC(),
	}, nil
}

// jwtExpiry reads the exp claim without verifying the signature.
// Opaque tokens yield a zero time.
func jwtExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// isTransient reports whether a refresh failure may succeed on retry.
// exchange tags every failure; untagged errors are permanent.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var gerr *goerr.Error
	if errors.As(err, &gerr) {
		if transient, ok := gerr.Values()[TransientKey].(bool); ok {
			return transient
		}
	}
	return false
}
