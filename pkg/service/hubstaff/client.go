package hubstaff

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultBaseURL is the Hubstaff v2 API root
	DefaultBaseURL = "https://api.hubstaff.com/v2"
	// DefaultPageLimit is the page size requested from list endpoints
	DefaultPageLimit = 500
)

// client implements Service interface
type client struct {
	baseURL    string
	orgID      int64
	pageLimit  int
	httpClient *http.Client
	policy     PageErrorPolicy
	pager      *Pager

	// directory listings are cached as authoritative and never accept a partial result
	strict *Pager
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API root
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client for API calls
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithPageErrorPolicy sets how failed pages are handled
func WithPageErrorPolicy(policy PageErrorPolicy) Option {
	return func(c *client) {
		c.policy = policy
	}
}

// WithPageLimit sets the page_limit query parameter
func WithPageLimit(limit int) Option {
	return func(c *client) {
		c.pageLimit = limit
	}
}

// New creates a Hubstaff service for one organization
func New(orgID int64, tokens TokenSource, opts ...Option) (Service, error) {
	if orgID <= 0 {
		return nil, goerr.Wrap(ErrConfiguration, "organization id is required", goerr.V("org_id", orgID))
	}
	if tokens == nil {
		return nil, goerr.Wrap(ErrConfiguration, "token source is required")
	}

	c := &client{
		baseURL:   DefaultBaseURL,
		orgID:     orgID,
		pageLimit: DefaultPageLimit,
		policy:    StopAndReturnPartial,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.pager = NewPager(tokens, c.httpClient, c.policy)
	c.strict = NewPager(tokens, c.httpClient, FailFast)
	return c, nil
}

// endpoint builds a URL builder for path with fixed query values
func (c *client) endpoint(path string, query url.Values) func(cursor string) string {
	return func(cursor string) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = append([]string(nil), v...)
		}
		if c.pageLimit > 0 {
			q.Set("page_limit", strconv.Itoa(c.pageLimit))
		}
		if cursor != "" {
			q.Set("page_start_id", cursor)
		}
		return c.baseURL + path + "?" + q.Encode()
	}
}

func (c *client) orgPath(suffix string) string {
	return fmt.Sprintf("/organizations/%d%s", c.orgID, suffix)
}

// ListProjects retrieves every project of the organization. A failed page
// fails the listing regardless of the page error policy.
func (c *client) ListProjects(ctx context.Context) ([]*model.RemoteProject, error) {
	projects, err := FetchAll[*model.RemoteProject](ctx, c.strict, "projects", c.endpoint(c.orgPath("/projects"), nil))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects", goerr.V("org_id", c.orgID))
	}
	return projects, nil
}

// ListTeams retrieves every team of the organization
func (c *client) ListTeams(ctx context.Context) ([]*model.RemoteTeam, error) {
	teams, err := FetchAll[*model.RemoteTeam](ctx, c.strict, "teams", c.endpoint(c.orgPath("/teams"), nil))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list teams", goerr.V("org_id", c.orgID))
	}
	return teams, nil
}

// ListTeamMembers retrieves the memberships of one team
func (c *client) ListTeamMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error) {
	path := fmt.Sprintf("/teams/%d/members", teamID)
	members, err := FetchAll[*model.TeamMember](ctx, c.strict, "members", c.endpoint(path, nil))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list team members", goerr.V("team_id", teamID))
	}
	return members, nil
}

type orgMembership struct {
	UserID int64 `json:"user_id"`
}

type orgUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListOrganizationMembers retrieves members with users side-loaded per page
func (c *client) ListOrganizationMembers(ctx context.Context) ([]*model.OrganizationMember, error) {
	query := url.Values{"include": []string{"users"}}

	var result []*model.OrganizationMember
	err := c.strict.Each(ctx, c.endpoint(c.orgPath("/members"), query), func(pg Page) error {
		memberships, err := Decode[orgMembership](pg, "members")
		if err != nil {
			return err
		}
		users, err := Decode[orgUser](pg, "users")
		if err != nil {
			return err
		}

		byID := make(map[int64]orgUser, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for _, m := range memberships {
			u := byID[m.UserID]
			result = append(result, &model.OrganizationMember{
				UserID: m.UserID,
				Name:   u.Name,
				Email:  u.Email,
			})
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list organization members", goerr.V("org_id", c.orgID))
	}
	return result, nil
}

// ListDailyActivities retrieves daily activity records for one date window
func (c *client) ListDailyActivities(ctx context.Context, query ActivityQuery) ([]*model.DailyActivity, error) {
	if query.Start.IsZero() || query.Stop.IsZero() {
		return nil, goerr.New("activity query requires start and stop dates",
			goerr.V("start", query.Start), goerr.V("stop", query.Stop))
	}

	q := url.Values{}
	q.Set("date[start]", query.Start.String())
	q.Set("date[stop]", query.Stop.String())
	for _, id := range query.ProjectIDs {
		q.Add("project_ids[]", strconv.FormatInt(id, 10))
	}
	for _, id := range query.UserIDs {
		q.Add("user_ids[]", strconv.FormatInt(id, 10))
	}

	activities, err := FetchAll[*model.DailyActivity](ctx, c.pager, "daily_activities",
		c.endpoint(c.orgPath("/activities/daily"), q))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list daily activities",
			goerr.V("start", query.Start), goerr.V("stop", query.Stop))
	}
	return activities, nil
}
