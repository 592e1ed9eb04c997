package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/service/matcher"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ReportUseCase builds daily status reports
type ReportUseCase struct {
	uc *UseCases
}

// PersonActivity is one person's tracked time on a single day
type PersonActivity struct {
	UserID             int64              `json:"user_id"`
	Name               string             `json:"name"`
	Team               types.TeamCategory `json:"team"`
	TrackedSeconds     int64              `json:"tracked_seconds"`
	Hours              float64            `json:"hours"`
	ActivityPercentage int                `json:"activity_percentage"`
	Projects           []*ProjectTime     `json:"projects"`
}

// ProjectTime is time tracked on one remote project
type ProjectTime struct {
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
}

// QAReport is the daily report of one person
type QAReport struct {
	QAName           string          `json:"qaName"`
	Date             types.Date      `json:"date"`
	HubstaffActivity *PersonActivity `json:"hubstaffActivity"`
	Tasks            []*model.Task   `json:"tasks"`
	Summary          ReportSummary   `json:"summary"`
	FormattedText    string          `json:"formattedText"`
	Posted           bool            `json:"posted"`
}

// QAReport assembles the report of qaName for date (today when zero). Remote
// fetch failures, unmatched names and Slack delivery failures are soft and
// recorded in the request debug log. Task loading errors are returned, and so
// are token or configuration failures of the time-tracking side.
func (r *ReportUseCase) QAReport(ctx context.Context, date types.Date, qaName string, post bool) (*QAReport, error) {
	uc := r.uc
	qaName = strings.TrimSpace(qaName)
	if qaName == "" {
		return nil, goerr.Wrap(ErrInvalidArgument, "qa name is required")
	}
	if date.IsZero() {
		date = uc.Today()
	} else if _, err := types.ParseDate(date.String()); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "invalid report date", goerr.V(DateKey, date))
	}

	tasks, err := uc.repo.Task().ListByAssignee(ctx, qaName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V(PersonNameKey, qaName))
	}

	report := &QAReport{
		QAName:        qaName,
		Date:          date,
		Tasks:         tasks,
		Summary:       SummarizeTasks(date, tasks),
		FormattedText: FormatStatusReport(qaName, date, tasks),
	}

	activity, err := r.personActivity(ctx, qaName, date)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build person activity", goerr.V(PersonNameKey, qaName))
	}
	report.HubstaffActivity = activity

	if post {
		report.Posted = r.post(ctx, report.FormattedText)
	}

	return report, nil
}

// personActivity returns nil without error when the activity is unavailable
// for a recoverable reason
func (r *ReportUseCase) personActivity(ctx context.Context, name string, date types.Date) (*PersonActivity, error) {
	uc := r.uc
	logger := logging.From(ctx)

	if uc.hubstaff == nil {
		debuglog.Add(ctx, "hubstaff is not configured; activity skipped")
		return nil, nil
	}

	dir, err := uc.Directory.Get(ctx)
	if err != nil {
		if hubstaff.IsHardError(err) {
			return nil, err
		}
		logger.Warn("failed to load directory for report", "error", err)
		debuglog.Add(ctx, "failed to load hubstaff directory: %v", err)
		return nil, nil
	}

	m := matcher.MatchPerson(name, dir.MemberList(), func(mi *model.MemberIdentity) string { return mi.DisplayName })
	switch m.Kind {
	case model.MatchKindAmbiguous:
		var names []string
		for _, c := range m.Candidates {
			names = append(names, c.DisplayName)
		}
		logger.Warn("ambiguous person match", "name", name, "candidates", names)
		debuglog.Add(ctx, "person %q is ambiguous (%s): %s", name, m.Step, strings.Join(names, ", "))
		return nil, nil
	case model.MatchKindNotFound:
		debuglog.Add(ctx, "person %q not found in hubstaff", name)
		return nil, nil
	}

	records, err := uc.hubstaff.ListDailyActivities(ctx, hubstaff.ActivityQuery{
		Start:   date,
		Stop:    date,
		UserIDs: []int64{m.Entity.RemoteUserID},
	})
	if err != nil {
		if hubstaff.IsHardError(err) {
			return nil, err
		}
		logger.Warn("failed to fetch person activity", "error", err)
		debuglog.Add(ctx, "failed to fetch activity of %q: %v", name, err)
		return nil, nil
	}

	return summarizePerson(m.Entity, date, records, dir), nil
}

func summarizePerson(member *model.MemberIdentity, date types.Date, records []*model.DailyActivity, dir *model.Directory) *PersonActivity {
	pa := &PersonActivity{
		UserID:   member.RemoteUserID,
		Name:     member.DisplayName,
		Team:     member.Team,
		Projects: []*ProjectTime{},
	}

	names := make(map[int64]string, len(dir.Projects))
	for _, p := range dir.Projects {
		names[p.ID] = p.Name
	}

	perProject := make(map[int64]int64)
	var weighted float64
	for _, rec := range records {
		if rec.UserID != member.RemoteUserID || rec.Date != date || rec.Tracked <= 0 {
			continue
		}
		pa.TrackedSeconds += rec.Tracked
		weighted += float64(rec.ActivityPercentage()) * float64(rec.Tracked)
		perProject[rec.ProjectID] += rec.Tracked
	}

	pa.Hours = float64(pa.TrackedSeconds) / 3600
	if pa.TrackedSeconds > 0 {
		pa.ActivityPercentage = model.RoundPercentage(weighted / float64(pa.TrackedSeconds))
	}

	for id, secs := range perProject {
		pa.Projects = append(pa.Projects, &ProjectTime{
			ProjectID: id,
			Name:      names[id],
			Hours:     float64(secs) / 3600,
		})
	}
	sort.Slice(pa.Projects, func(i, j int) bool {
		if pa.Projects[i].Hours != pa.Projects[j].Hours {
			return pa.Projects[i].Hours > pa.Projects[j].Hours
		}
		return pa.Projects[i].ProjectID < pa.Projects[j].ProjectID
	})
	return pa
}

func (r *ReportUseCase) post(ctx context.Context, text string) bool {
	uc := r.uc
	if uc.slack == nil || uc.settings.SlackChannelID == "" {
		debuglog.Add(ctx, "slack is not configured; report not posted")
		return false
	}

	ts, err := uc.slack.PostMessage(ctx, uc.settings.SlackChannelID, text)
	if err != nil {
		logging.From(ctx).Error("failed to post report to slack", "error", err)
		debuglog.Add(ctx, "failed to post report to slack: %v", err)
		return false
	}

	logging.From(ctx).Info("posted report to slack", "channel", uc.settings.SlackChannelID, "ts", ts)
	return true
}
