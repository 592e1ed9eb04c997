package hubstaff

import (
	"context"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// Service provides read access to the Hubstaff v2 API
type Service interface {
	// ListProjects retrieves every project of the organization
	ListProjects(ctx context.Context) ([]*model.RemoteProject, error)

	// ListTeams retrieves every team of the organization
	ListTeams(ctx context.Context) ([]*model.RemoteTeam, error)

	// ListTeamMembers retrieves the memberships of one team
	ListTeamMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error)

	// ListOrganizationMembers retrieves organization members joined with their user names
	ListOrganizationMembers(ctx context.Context) ([]*model.OrganizationMember, error)

	// ListDailyActivities retrieves daily activity records for one date window.
	// The API limits the window length, so callers split long ranges.
	ListDailyActivities(ctx context.Context, query ActivityQuery) ([]*model.DailyActivity, error)
}

// ActivityQuery filters a daily activity listing. Start and Stop are inclusive.
type ActivityQuery struct {
	Start      types.Date
	Stop       types.Date
	ProjectIDs []int64
	UserIDs    []int64
}

// TokenSource supplies bearer tokens to the pager
type TokenSource interface {
	Token(ctx context.Context) (string, error)

	// Invalidate drops token if it is still the cached one
	Invalidate(token string)
}
