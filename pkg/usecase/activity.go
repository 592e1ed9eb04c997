package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/service/hubstaff"
	"github.com/abhiram98920/teamtracker/pkg/service/matcher"
	"github.com/abhiram98920/teamtracker/pkg/utils/debuglog"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

// ActivityUseCase aggregates remote activity for local projects
type ActivityUseCase struct {
	uc *UseCases
}

// ProjectActivity is the activity of one local project
type ProjectActivity struct {
	ProjectName       string                 `json:"project_name"`
	Matched           bool                   `json:"matched"`
	MatchStep         string                 `json:"match_step,omitempty"`
	RemoteProjectID   int64                  `json:"remote_project_id,omitempty"`
	RemoteProjectName string                 `json:"remote_project_name,omitempty"`
	Candidates        []string               `json:"candidates,omitempty"`
	DuplicateOf       string                 `json:"duplicate_of,omitempty"`
	Activity          *model.AggregateResult `json:"activity,omitempty"`
	AllottedDays      *float64               `json:"allotted_days,omitempty"`
	DeviationDays     *float64               `json:"deviation_days,omitempty"`
}

// ParseProjectNames splits a comma separated list, dropping blanks
func ParseProjectNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// ProjectActivity matches each local project name to a remote project,
// fetches its activity over the history window and aggregates it. Unmatched
// names are reported in the result and in the request debug log.
func (a *ActivityUseCase) ProjectActivity(ctx context.Context, names []string) ([]*ProjectActivity, error) {
	uc := a.uc
	if len(names) == 0 {
		return nil, goerr.Wrap(ErrInvalidArgument, "at least one project name is required")
	}
	if uc.hubstaff == nil {
		return nil, goerr.Wrap(ErrHubstaffNotConfigured, "project activity is unavailable")
	}

	logger := logging.From(ctx)

	dir, err := uc.Directory.Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load directory")
	}

	results := make([]*ProjectActivity, 0, len(names))
	index := make(map[int64]string)
	var ids []int64

	for _, name := range names {
		pa := &ProjectActivity{ProjectName: name}
		results = append(results, pa)

		m := matcher.MatchProject(name, dir.Projects, func(p *model.RemoteProject) string { return p.Name })
		switch m.Kind {
		case model.MatchKindMatched:
			pa.Matched = true
			pa.MatchStep = m.Step
			pa.RemoteProjectID = m.Entity.ID
			pa.RemoteProjectName = m.Entity.Name
			if owner, dup := index[m.Entity.ID]; dup {
				pa.DuplicateOf = owner
				debuglog.Add(ctx, "project %q resolves to the same remote project as %q; sharing its activity", name, owner)
				continue
			}
			index[m.Entity.ID] = name
			ids = append(ids, m.Entity.ID)

		case model.MatchKindAmbiguous:
			for _, c := range m.Candidates {
				pa.Candidates = append(pa.Candidates, c.Name)
			}
			logger.Warn("ambiguous project match", "project", name, "candidates", pa.Candidates)
			debuglog.Add(ctx, "project %q is ambiguous (%s): %s", name, m.Step, strings.Join(pa.Candidates, ", "))

		default:
			debuglog.Add(ctx, "project %q not found in hubstaff", name)
		}
	}

	if len(ids) > 0 {
		records, err := a.fetchActivities(ctx, ids)
		if err != nil {
			return nil, err
		}

		aggregates := Aggregate(records, index, dir)
		for _, pa := range results {
			if !pa.Matched {
				continue
			}
			key := pa.ProjectName
			if pa.DuplicateOf != "" {
				key = pa.DuplicateOf
			}
			if agg, ok := aggregates[key]; ok {
				pa.Activity = agg
			} else {
				pa.Activity = EmptyAggregate()
			}
		}
	}

	for _, pa := range results {
		a.attachBudget(ctx, pa)
	}

	return results, nil
}

// fetchActivities walks date chunks most recent first and, inside each,
// project id chunks in order
func (a *ActivityUseCase) fetchActivities(ctx context.Context, ids []int64) ([]*model.DailyActivity, error) {
	s := a.uc.settings
	dates := DateChunks(a.uc.Today(), s.HistoryDays, s.ChunkDays)
	idChunks := chunkIDs(ids, s.ProjectChunkSize)

	limit := rate.Inf
	if s.ChunkDelay > 0 {
		limit = rate.Every(s.ChunkDelay)
	}
	limiter := rate.NewLimiter(limit, 1)

	logger := logging.From(ctx)
	started := time.Now()

	var records []*model.DailyActivity
	for _, dr := range dates {
		for _, chunk := range idChunks {
			if err := limiter.Wait(ctx); err != nil {
				return nil, goerr.Wrap(err, "activity fetch interrupted")
			}

			list, err := a.uc.hubstaff.ListDailyActivities(ctx, hubstaff.ActivityQuery{
				Start:      dr.Start,
				Stop:       dr.Stop,
				ProjectIDs: chunk,
			})
			if err != nil {
				return nil, goerr.Wrap(err, "failed to fetch daily activities",
					goerr.V("start", dr.Start), goerr.V("stop", dr.Stop))
			}
			records = append(records, list...)
		}
	}

	logger.Info("fetched daily activities",
		"records", len(records),
		"date_chunks", len(dates),
		"project_chunks", len(idChunks),
		"duration", time.Since(started))
	return records, nil
}

func (a *ActivityUseCase) attachBudget(ctx context.Context, pa *ProjectActivity) {
	project, err := a.uc.repo.Project().Get(ctx, pa.ProjectName)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Warn("failed to load local project", "project", pa.ProjectName, "error", err)
			debuglog.Add(ctx, "failed to load local project %q: %v", pa.ProjectName, err)
		}
		return
	}

	allotted := project.AllottedDays
	pa.AllottedDays = &allotted
	if pa.Activity != nil {
		dev := model.Deviation(allotted, pa.Activity.TotalTrackedDays)
		pa.DeviationDays = &dev
	}
}
