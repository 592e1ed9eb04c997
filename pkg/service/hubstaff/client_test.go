package hubstaff_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) hubstaff.Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := hubstaff.New(77, &fakeTokens{tokens: []string{"tok"}},
		hubstaff.WithBaseURL(srv.URL),
		hubstaff.WithPageErrorPolicy(hubstaff.FailFast),
	)
	gt.NoError(t, err).Required()
	return svc
}

func TestNewRequiresOrganization(t *testing.T) {
	_, err := hubstaff.New(0, &fakeTokens{tokens: []string{"tok"}})
	gt.Error(t, err).Is(hubstaff.ErrConfiguration)
}

func TestListProjects(t *testing.T) {
	svc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/organizations/77/projects")
		gt.Value(t, r.URL.Query().Get("page_limit")).Equal("500")
		fmt.Fprint(w, `{"projects":[{"id":5,"name":"Acme / App","status":"active"}]}`)
	})

	projects, err := svc.ListProjects(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, projects).Length(1).Required()
	gt.Value(t, projects[0].ID).Equal(int64(5))
	gt.Value(t, projects[0].Status).Equal("active")
}

func TestListOrganizationMembersJoinsUsers(t *testing.T) {
	svc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/organizations/77/members")
		gt.Value(t, r.URL.Query().Get("include")).Equal("users")
		switch r.URL.Query().Get("page_start_id") {
		case "":
			fmt.Fprint(w, `{"members":[{"user_id":1},{"user_id":2}],"users":[{"id":2,"name":"Bob"},{"id":1,"name":"Alice","email":"a@example.com"}],"pagination":{"next_page_start_id":3}}`)
		default:
			fmt.Fprint(w, `{"members":[{"user_id":3}],"users":[{"id":3,"name":"Carol"}]}`)
		}
	})

	members, err := svc.ListOrganizationMembers(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, members).Length(3).Required()
	gt.Value(t, members[0].Name).Equal("Alice")
	gt.Value(t, members[0].Email).Equal("a@example.com")
	gt.Value(t, members[1].Name).Equal("Bob")
	gt.Value(t, members[2].UserID).Equal(int64(3))
}

func TestListDailyActivities(t *testing.T) {
	var query url.Values
	svc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/organizations/77/activities/daily")
		query = r.URL.Query()
		fmt.Fprint(w, `{"daily_activities":[{"id":9,"user_id":1,"project_id":5,"date":"2026-02-10","tracked":3600,"overall":1800,"keyboard":10}]}`)
	})

	activities, err := svc.ListDailyActivities(context.Background(), hubstaff.ActivityQuery{
		Start:      "2026-02-01",
		Stop:       "2026-02-10",
		ProjectIDs: []int64{5, 6},
		UserIDs:    []int64{1},
	})
	gt.NoError(t, err).Required()
	gt.Array(t, activities).Length(1).Required()
	gt.Value(t, activities[0].Date).Equal(types.Date("2026-02-10"))
	gt.Value(t, activities[0].Tracked).Equal(int64(3600))
	gt.Value(t, activities[0].Overall).Equal(int64(1800))

	gt.Value(t, query.Get("date[start]")).Equal("2026-02-01")
	gt.Value(t, query.Get("date[stop]")).Equal("2026-02-10")
	gt.Value(t, query["project_ids[]"]).Equal([]string{"5", "6"})
	gt.Value(t, query["user_ids[]"]).Equal([]string{"1"})
}

func TestListDailyActivitiesRequiresDates(t *testing.T) {
	svc := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := svc.ListDailyActivities(context.Background(), hubstaff.ActivityQuery{Start: "2026-02-01"})
	gt.Error(t, err)
}

// projectsWithFailingSecondPage serves one good page of projects and daily
// activities, then fails the next page of each
func projectsWithFailingSecondPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("page_start_id") != "" {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
		return
	}
	switch r.URL.Path {
	case "/organizations/77/projects":
		fmt.Fprint(w, `{"projects":[{"id":1,"name":"Mobile App"}],"pagination":{"next_page_start_id":2}}`)
	default:
		fmt.Fprint(w, `{"daily_activities":[{"user_id":1,"project_id":1,"date":"2026-02-10","tracked":60,"overall":30}],"pagination":{"next_page_start_id":2}}`)
	}
}

func TestDirectoryListingsRejectPartialPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(projectsWithFailingSecondPage))
	t.Cleanup(srv.Close)

	svc, err := hubstaff.New(77, &fakeTokens{tokens: []string{"tok"}},
		hubstaff.WithBaseURL(srv.URL),
		hubstaff.WithPageErrorPolicy(hubstaff.StopAndReturnPartial),
	)
	gt.NoError(t, err).Required()

	t.Run("project listing fails", func(t *testing.T) {
		projects, err := svc.ListProjects(context.Background())
		gt.Error(t, err).Is(hubstaff.ErrRemoteFetch)
		gt.Array(t, projects).Length(0)
	})

	t.Run("activity listing keeps the partial policy", func(t *testing.T) {
		dl := debuglog.New()
		ctx := debuglog.With(context.Background(), dl)

		activities, err := svc.ListDailyActivities(ctx, hubstaff.ActivityQuery{Start: "2026-02-10", Stop: "2026-02-10"})
		gt.NoError(t, err).Required()
		gt.Array(t, activities).Length(1)
		gt.Array(t, dl.Entries()).Length(1)
	})
}

func TestIsHardError(t *testing.T) {
	gt.Bool(t, hubstaff.IsHardError(goerr.Wrap(hubstaff.ErrTokenRefresh, "refresh"))).True()
	gt.Bool(t, hubstaff.IsHardError(goerr.Wrap(hubstaff.ErrConfiguration, "config"))).True()
	gt.Bool(t, hubstaff.IsHardError(goerr.Wrap(hubstaff.ErrRemoteFetch, "page"))).False()
	gt.Bool(t, hubstaff.IsHardError(nil)).False()
}
