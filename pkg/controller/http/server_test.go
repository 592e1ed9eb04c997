package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpctrl "github.com/abhiram98920/teamtracker/pkg/controller/http"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/repository/memory"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

type mockHubstaff struct {
	activities []*model.DailyActivity
	listErr    error
}

func (m *mockHubstaff) ListProjects(ctx context.Context) ([]*model.RemoteProject, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return []*model.RemoteProject{
		{ID: 1, Name: "Acme / Website Redesign"},
		{ID: 2, Name: "Mobile App"},
	}, nil
}

func (m *mockHubstaff) ListTeams(ctx context.Context) ([]*model.RemoteTeam, error) {
	return []*model.RemoteTeam{{ID: 10, Name: "QA"}}, nil
}

func (m *mockHubstaff) ListTeamMembers(ctx context.Context, teamID int64) ([]*model.TeamMember, error) {
	return []*model.TeamMember{{UserID: 100}}, nil
}

func (m *mockHubstaff) ListOrganizationMembers(ctx context.Context) ([]*model.OrganizationMember, error) {
	return []*model.OrganizationMember{{UserID: 100, Name: "Priya Sharma"}}, nil
}

func (m *mockHubstaff) ListDailyActivities(ctx context.Context, query hubstaff.ActivityQuery) ([]*model.DailyActivity, error) {
	return m.activities, nil
}

func clock() time.Time {
	return time.Date(2026, 2, 11, 4, 30, 0, 0, time.UTC)
}

func newServer(t *testing.T, withHubstaff bool) *httpctrl.Server {
	t.Helper()
	opts := []usecase.Option{
		usecase.WithClock(clock),
		usecase.WithSettings(usecase.Settings{HistoryDays: 5}),
	}
	if withHubstaff {
		opts = append(opts, usecase.WithHubstaff(&mockHubstaff{
			activities: []*model.DailyActivity{
				{UserID: 100, ProjectID: 1, Date: "2026-02-10", Tracked: 3600, Overall: 1800},
				{UserID: 100, ProjectID: 1, Date: "2026-02-11", Tracked: 7200, Overall: 7200},
			},
		}))
	}
	return httpctrl.New(usecase.New(memory.New(), opts...))
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type errorResponse struct {
	Error     string   `json:"error"`
	DebugLogs []string `json:"debug_logs"`
}

func TestHealth(t *testing.T) {
	w := doJSON(t, newServer(t, false), http.MethodGet, "/health", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains(`"ok"`)
}

func TestProjectActivity(t *testing.T) {
	type response struct {
		Results []struct {
			ProjectName string `json:"project_name"`
			Matched     bool   `json:"matched"`
			Activity    *struct {
				TotalTrackedDays           float64 `json:"total_tracked_days"`
				WeightedActivityPercentage int     `json:"weighted_activity_percentage"`
			} `json:"activity"`
		} `json:"results"`
		DebugLogs []string `json:"debug_logs"`
	}

	t.Run("aggregates and reports unmatched names", func(t *testing.T) {
		srv := newServer(t, true)
		w := doJSON(t, srv, http.MethodPost, "/api/hubstaff/project-activity", map[string]string{
			"project_names": "Website Redesign, Unknown",
		})
		gt.Number(t, w.Code).Equal(http.StatusOK)

		resp := decode[response](t, w)
		gt.Array(t, resp.Results).Length(2).Required()
		gt.Bool(t, resp.Results[0].Matched).True()
		gt.Value(t, resp.Results[0].Activity).NotNil().Required()
		gt.Number(t, resp.Results[0].Activity.WeightedActivityPercentage).Equal(83)
		gt.Number(t, resp.Results[0].Activity.TotalTrackedDays).Equal(0.375)
		gt.Bool(t, resp.Results[1].Matched).False()
		gt.Array(t, resp.DebugLogs).Length(1)
	})

	t.Run("no names is a bad request", func(t *testing.T) {
		w := doJSON(t, newServer(t, true), http.MethodPost, "/api/hubstaff/project-activity", map[string]string{
			"project_names": " , ",
		})
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)

		resp := decode[errorResponse](t, w)
		gt.String(t, resp.Error).Contains("invalid argument")
		gt.Value(t, resp.DebugLogs).NotNil()
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/hubstaff/project-activity", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		newServer(t, true).ServeHTTP(w, req)
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("hubstaff not configured is a server error", func(t *testing.T) {
		w := doJSON(t, newServer(t, false), http.MethodPost, "/api/hubstaff/project-activity", map[string]string{
			"project_names": "Mobile App",
		})
		gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
		resp := decode[errorResponse](t, w)
		gt.String(t, resp.Error).Contains("not configured")
	})
}

func TestQAReport(t *testing.T) {
	srv := newServer(t, true)

	w := doJSON(t, srv, http.MethodPut, "/api/tasks", map[string]string{
		"name":     "Regression suite",
		"assignee": "Priya Sharma",
		"status":   "In Progress",
		"end_date": "2026-02-10",
	})
	gt.Number(t, w.Code).Equal(http.StatusOK)

	type response struct {
		QAName           string `json:"qaName"`
		Date             string `json:"date"`
		FormattedText    string `json:"formattedText"`
		HubstaffActivity *struct {
			Hours float64 `json:"hours"`
		} `json:"hubstaffActivity"`
		Tasks     []map[string]any `json:"tasks"`
		DebugLogs []string         `json:"debug_logs"`
	}

	w = doJSON(t, srv, http.MethodPost, "/api/hubstaff/qa-report", map[string]any{
		"qaName": "Priya Sharma",
	})
	gt.Number(t, w.Code).Equal(http.StatusOK)

	resp := decode[response](t, w)
	gt.Value(t, resp.Date).Equal("2026-02-11")
	gt.Array(t, resp.Tasks).Length(1)
	gt.String(t, resp.FormattedText).Contains("*OVERDUE*")
	gt.Value(t, resp.HubstaffActivity).NotNil().Required()
	gt.Number(t, resp.HubstaffActivity.Hours).Equal(2)
	gt.Value(t, resp.DebugLogs).NotNil()
}

func TestCache(t *testing.T) {
	srv := newServer(t, false)

	w := doJSON(t, srv, http.MethodGet, "/api/hubstaff/cache", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains(`"UNINITIALIZED"`)

	w = doJSON(t, srv, http.MethodPost, "/api/hubstaff/cache/invalidate", nil)
	gt.Number(t, w.Code).Equal(http.StatusAccepted)
	gt.String(t, w.Body.String()).Contains(`"refreshing":false`)
}

func TestProjects(t *testing.T) {
	srv := newServer(t, false)

	w := doJSON(t, srv, http.MethodPut, "/api/projects", map[string]any{"name": "Mobile App", "allotted_days": 12})
	gt.Number(t, w.Code).Equal(http.StatusOK)

	w = doJSON(t, srv, http.MethodPut, "/api/projects", map[string]any{"name": "", "allotted_days": 1})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodGet, "/api/projects", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Projects []*model.Project `json:"projects"`
	}](t, w)
	gt.Array(t, resp.Projects).Length(1).Required()
	gt.Number(t, resp.Projects[0].AllottedDays).Equal(12)
}

func TestTasks(t *testing.T) {
	srv := newServer(t, false)

	w := doJSON(t, srv, http.MethodPut, "/api/tasks", map[string]string{"name": "Smoke", "assignee": "Rahul"})
	gt.Number(t, w.Code).Equal(http.StatusOK)
	created := decode[model.Task](t, w)

	w = doJSON(t, srv, http.MethodGet, "/api/tasks?assignee=rahul", nil)
	resp := decode[struct {
		Tasks []*model.Task `json:"tasks"`
	}](t, w)
	gt.Array(t, resp.Tasks).Length(1)

	w = doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.ID.String(), nil)
	gt.Number(t, w.Code).Equal(http.StatusNoContent)

	w = doJSON(t, srv, http.MethodDelete, "/api/tasks/"+created.ID.String(), nil)
	gt.Number(t, w.Code).Equal(http.StatusNotFound)
}

func TestLeaves(t *testing.T) {
	srv := newServer(t, true)

	w := doJSON(t, srv, http.MethodPost, "/api/leaves", map[string]string{"name": "Priya", "reason": "sick"})
	gt.Number(t, w.Code).Equal(http.StatusCreated)

	w = doJSON(t, srv, http.MethodPost, "/api/leaves", map[string]string{"name": "Zq"})
	gt.Number(t, w.Code).Equal(http.StatusBadRequest)

	w = doJSON(t, srv, http.MethodGet, "/api/leaves", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Date   string         `json:"date"`
		Leaves []*model.Leave `json:"leaves"`
	}](t, w)
	gt.Value(t, resp.Date).Equal("2026-02-11")
	gt.Array(t, resp.Leaves).Length(1).Required()
	gt.Value(t, resp.Leaves[0].MemberKey).Equal("100")
}

func TestHubstaffTokenFailure(t *testing.T) {
	svc := &mockHubstaff{listErr: goerr.Wrap(hubstaff.ErrTokenRefresh, "refresh token rejected")}
	srv := httpctrl.New(usecase.New(memory.New(),
		usecase.WithHubstaff(svc),
		usecase.WithClock(clock),
		usecase.WithSettings(usecase.Settings{HistoryDays: 5}),
	))

	testCases := []struct {
		name string
		path string
		body map[string]string
	}{
		{name: "qa report", path: "/api/hubstaff/qa-report", body: map[string]string{"qaName": "Priya Sharma"}},
		{name: "project activity", path: "/api/hubstaff/project-activity", body: map[string]string{"project_names": "Mobile App"}},
		{name: "leave", path: "/api/leaves", body: map[string]string{"name": "Priya Sharma"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, srv, http.MethodPost, tc.path, tc.body)
			gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
			gt.String(t, w.Body.String()).Contains(`"debug_logs":[`)

			resp := decode[errorResponse](t, w)
			gt.String(t, resp.Error).Contains("refresh token rejected")
			gt.Value(t, resp.DebugLogs).NotNil()
		})
	}

	w := doJSON(t, srv, http.MethodGet, "/api/leaves", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	resp := decode[struct {
		Leaves []*model.Leave `json:"leaves"`
	}](t, w)
	gt.Array(t, resp.Leaves).Length(0)
}
