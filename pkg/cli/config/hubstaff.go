package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Hubstaff holds CLI flags for the time-tracking API
type Hubstaff struct {
	orgID        int64
	accessToken  string
	refreshToken string
	clientID     string
	clientSecret string
	authStyle    string
	tokenURL     string
	baseURL      string
	timeout      time.Duration
	failFast     bool
}

func (x *Hubstaff) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "hubstaff-org-id",
			Usage:       "Hubstaff organization ID",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_ORG_ID"),
			Destination: &x.orgID,
		},
		&cli.StringFlag{
			Name:        "hubstaff-access-token",
			Usage:       "Hubstaff access token used until it is rejected",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_ACCESS_TOKEN"),
			Destination: &x.accessToken,
		},
		&cli.StringFlag{
			Name:        "hubstaff-refresh-token",
			Usage:       "Hubstaff refresh token (personal access token)",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_REFRESH_TOKEN"),
			Destination: &x.refreshToken,
		},
		&cli.StringFlag{
			Name:        "hubstaff-client-id",
			Usage:       "Hubstaff OAuth client ID",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_CLIENT_ID"),
			Destination: &x.clientID,
		},
		&cli.StringFlag{
			Name:        "hubstaff-client-secret",
			Usage:       "Hubstaff OAuth client secret",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_CLIENT_SECRET"),
			Destination: &x.clientSecret,
		},
		&cli.StringFlag{
			Name:        "hubstaff-auth-style",
			Usage:       "How client credentials are sent on refresh (basic, params)",
			Category:    "Hubstaff",
			Value:       string(hubstaff.AuthStyleParams),
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_AUTH_STYLE"),
			Destination: &x.authStyle,
		},
		&cli.StringFlag{
			Name:        "hubstaff-token-url",
			Usage:       "Hubstaff token endpoint",
			Category:    "Hubstaff",
			Value:       hubstaff.DefaultTokenURL,
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_TOKEN_URL"),
			Destination: &x.tokenURL,
		},
		&cli.StringFlag{
			Name:        "hubstaff-base-url",
			Usage:       "Hubstaff API root",
			Category:    "Hubstaff",
			Value:       hubstaff.DefaultBaseURL,
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.DurationFlag{
			Name:        "hubstaff-timeout",
			Usage:       "Timeout of a single Hubstaff HTTP request",
			Category:    "Hubstaff",
			Value:       hubstaff.DefaultHTTPTimeout,
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.BoolFlag{
			Name:        "hubstaff-fail-fast",
			Usage:       "Fail the whole listing when one page fails instead of returning partial results",
			Category:    "Hubstaff",
			Sources:     cli.EnvVars("TEAMTRACKER_HUBSTAFF_FAIL_FAST"),
			Destination: &x.failFast,
		},
	}
}

func (x Hubstaff) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("org-id", x.orgID),
		slog.Int("access-token.len", len(x.accessToken)),
		slog.Int("refresh-token.len", len(x.refreshToken)),
		slog.Int("client-id.len", len(x.clientID)),
		slog.Int("client-secret.len", len(x.clientSecret)),
		slog.String("auth-style", x.authStyle),
		slog.String("base-url", x.baseURL),
	)
}

// IsConfigured reports whether an organization is set
func (x *Hubstaff) IsConfigured() bool {
	return x.orgID > 0
}

// Validate checks that the settings can produce a working client
func (x *Hubstaff) Validate() error {
	if x.orgID <= 0 {
		return goerr.Wrap(hubstaff.ErrConfiguration, "hubstaff-org-id is required")
	}
	if x.accessToken == "" && x.refreshToken == "" {
		return goerr.Wrap(hubstaff.ErrConfiguration, "hubstaff-access-token or hubstaff-refresh-token is required")
	}
	switch hubstaff.AuthStyle(x.authStyle) {
	case hubstaff.AuthStyleBasic:
		if x.clientID == "" || x.clientSecret == "" {
			return goerr.Wrap(hubstaff.ErrConfiguration, "basic auth style requires client id and secret")
		}
	case hubstaff.AuthStyleParams:
	default:
		return goerr.Wrap(hubstaff.ErrConfiguration, "invalid hubstaff-auth-style", goerr.V("auth_style", x.authStyle))
	}
	return nil
}

// Configure creates the Hubstaff service. Refreshed tokens are persisted to repo.
func (x *Hubstaff) Configure(repo interfaces.TokenRepository) (hubstaff.Service, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: x.timeout}

	tokens := hubstaff.NewTokenProvider(
		hubstaff.WithTokenRepository(repo),
		hubstaff.WithTokenURL(x.tokenURL),
		hubstaff.WithClientCredentials(x.clientID, x.clientSecret),
		hubstaff.WithAuthStyle(hubstaff.AuthStyle(x.authStyle)),
		hubstaff.WithRefreshToken(x.refreshToken),
		hubstaff.WithStaticAccessToken(x.accessToken),
		hubstaff.WithTokenHTTPClient(httpClient),
	)

	policy := hubstaff.StopAndReturnPartial
	if x.failFast {
		policy = hubstaff.FailFast
	}

	svc, err := hubstaff.New(x.orgID, tokens,
		hubstaff.WithBaseURL(x.baseURL),
		hubstaff.WithHTTPClient(httpClient),
		hubstaff.WithPageErrorPolicy(policy),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create hubstaff service")
	}
	return svc, nil
}
