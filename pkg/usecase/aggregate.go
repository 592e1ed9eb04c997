package usecase

import (
	"sort"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

type memberAcc struct {
	tracked  int64
	weighted float64
}

type projectAcc struct {
	tracked  int64
	weighted float64
	teams    map[types.TeamCategory]int64
	members  map[int64]*memberAcc
}

// Aggregate folds daily activity records into per-project results keyed by
// local project name. projectIndex maps remote project ids to local names;
// records of other projects are dropped. Users missing from dir count as
// team Unknown.
func Aggregate(records []*model.DailyActivity, projectIndex map[int64]string, dir *model.Directory) map[string]*model.AggregateResult {
	accs := make(map[string]*projectAcc)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		name, ok := projectIndex[rec.ProjectID]
		if !ok || rec.Tracked <= 0 {
			continue
		}

		acc, ok := accs[name]
		if !ok {
			acc = &projectAcc{
				teams:   make(map[types.TeamCategory]int64),
				members: make(map[int64]*memberAcc),
			}
			accs[name] = acc
		}

		weighted := float64(rec.ActivityPercentage()) * float64(rec.Tracked)
		acc.tracked += rec.Tracked
		acc.weighted += weighted
		acc.teams[dir.TeamOf(rec.UserID)] += rec.Tracked

		m, ok := acc.members[rec.UserID]
		if !ok {
			m = &memberAcc{}
			acc.members[rec.UserID] = m
		}
		m.tracked += rec.Tracked
		m.weighted += weighted
	}

	results := make(map[string]*model.AggregateResult, len(accs))
	for name, acc := range accs {
		results[name] = acc.result(dir)
	}
	return results
}

func (acc *projectAcc) result(dir *model.Directory) *model.AggregateResult {
	r := &model.AggregateResult{
		TotalTrackedSeconds: acc.tracked,
		TotalTrackedDays:    float64(acc.tracked) / model.SecondsPerDay,
		PerTeamDays:         make(map[types.TeamCategory]float64, len(acc.teams)),
		Members:             make([]*model.MemberStat, 0, len(acc.members)),
	}
	if acc.tracked > 0 {
		r.WeightedActivityPercentage = model.RoundPercentage(acc.weighted / float64(acc.tracked))
	}

	for team, secs := range acc.teams {
		r.PerTeamDays[team] = float64(secs) / model.SecondsPerDay
	}

	for userID, m := range acc.members {
		hours := float64(m.tracked) / 3600
		stat := &model.MemberStat{
			UserID: userID,
			Name:   dir.NameOf(userID),
			Team:   dir.TeamOf(userID),
			Hours:  hours,
			Days:   hours / model.WorkHoursPerDay,
		}
		if m.tracked > 0 {
			stat.ActivityPercentage = model.RoundPercentage(m.weighted / float64(m.tracked))
		}
		r.Members = append(r.Members, stat)
	}

	sort.Slice(r.Members, func(i, j int) bool {
		if r.Members[i].Hours != r.Members[j].Hours {
			return r.Members[i].Hours > r.Members[j].Hours
		}
		return r.Members[i].UserID < r.Members[j].UserID
	})
	return r
}

// EmptyAggregate is the result of a matched project without activity
func EmptyAggregate() *model.AggregateResult {
	return &model.AggregateResult{
		PerTeamDays: map[types.TeamCategory]float64{},
		Members:     []*model.MemberStat{},
	}
}
