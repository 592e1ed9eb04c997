package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
)

// fakeHubstaff serves a fixed organization and records activity queries
type fakeHubstaff struct {
	projects    []*model.RemoteProject
	teams       []*model.RemoteTeam
	teamMembers map[int64][]*model.TeamMember
	orgMembers  []*model.OrganizationMember
	activities  []*model.DailyActivity
	listDelay   time.Duration
	listErr     error
	activityErr error

	projectCalls atomic.Int32

	mu      sync.Mutex
	queries []hubstaff.ActivityQuery
}

func (f *fakeHubstaff) ListProjects(ctx context.Context) ([]*model.RemoteProject, error) {
	f.projectCalls.Add(1)
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.projects, nil
}

func (f *fakeHubstaff) ListTeams(ctx context.Context) ([]*model.RemoteTeam, error) {
	return f.teams, nil
}

func (f *fakeHubstaff) ListTeamMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error) {
	return f.teamMembers[teamID], nil
}

func (f *fakeHubstaff) ListOrganizationMembers(ctx context.Context) ([]*model.OrganizationMember, error) {
	return f.orgMembers, nil
}

func (f *fakeHubstaff) ListDailyActivities(ctx context.Context, query hubstaff.ActivityQuery) ([]*model.DailyActivity, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.activityErr != nil {
		return nil, f.activityErr
	}

	projects := make(map[int64]bool)
	for _, id := range query.ProjectIDs {
		projects[id] = true
	}
	users := make(map[int64]bool)
	for _, id := range query.UserIDs {
		users[id] = true
	}

	var out []*model.DailyActivity
	for _, a := range f.activities {
		if a.Date.String() < query.Start.String() || a.Date.String() > query.Stop.String() {
			continue
		}
		if len(projects) > 0 && !projects[a.ProjectID] {
			continue
		}
		if len(users) > 0 && !users[a.UserID] {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeHubstaff) Queries() []hubstaff.ActivityQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]hubstaff.ActivityQuery(nil), f.queries...)
}

// fakeSlack records posted messages
type fakeSlack struct {
	mu       sync.Mutex
	channels []string
	texts    []string
	err      error
}

func (f *fakeSlack) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channelID)
	f.texts = append(f.texts, text)
	return "1700000000.000100", nil
}

// fixedClock returns 2026-02-11 10:00 in Asia/Kolkata
func fixedClock() time.Time {
	return time.Date(2026, 2, 11, 4, 30, 0, 0, time.UTC)
}

func newOrg() *fakeHubstaff {
	return &fakeHubstaff{
		projects: []*model.RemoteProject{
			{ID: 1, Name: "Acme / Website Redesign"},
			{ID: 2, Name: "Mobile App"},
			{ID: 3, Name: "Mobile App Backend"},
		},
		teams: []*model.RemoteTeam{
			{ID: 10, Name: "QA Team"},
			{ID: 11, Name: "Developers"},
		},
		teamMembers: map[int64][]*model.TeamMember{
			10: {{UserID: 100}},
			11: {{UserID: 200}},
		},
		orgMembers: []*model.OrganizationMember{
			{UserID: 100, Name: "Priya Sharma"},
			{UserID: 200, Name: "Rahul Verma"},
		},
	}
}
