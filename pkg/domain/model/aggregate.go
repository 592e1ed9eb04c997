package model

import (
	"math"
	"sort"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

const (
	// WorkHoursPerDay converts tracked hours into day-equivalents
	WorkHoursPerDay = 8
	// SecondsPerDay is one day-equivalent in seconds
	SecondsPerDay = 3600 * WorkHoursPerDay
)

// AggregateResult is the activity of one local project, derived on every request
type AggregateResult struct {
	TotalTrackedSeconds        int64                          `json:"total_tracked_seconds"`
	TotalTrackedDays           float64                        `json:"total_tracked_days"`
	WeightedActivityPercentage int                            `json:"weighted_activity_percentage"`
	PerTeamDays                map[types.TeamCategory]float64 `json:"per_team_days"`
	Members                    []*MemberStat                  `json:"members"`
}

// MemberStat is the contribution of one remote user to a project
type MemberStat struct {
	UserID             int64              `json:"user_id"`
	Name               string             `json:"name"`
	Team               types.TeamCategory `json:"team"`
	Hours              float64            `json:"hours"`
	Days               float64            `json:"days"`
	ActivityPercentage int                `json:"activity_percentage"`
}

// Deviation returns allotted minus actual days. Positive is under budget.
func Deviation(allottedDays, actualDays float64) float64 {
	return allottedDays - actualDays
}

// roundHalfUp rounds like Math.round for non-negative inputs
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RoundPercentage is exported for the aggregator
func RoundPercentage(v float64) int {
	return roundHalfUp(v)
}

func sortMembers(list []*MemberIdentity) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].RemoteUserID < list[j].RemoteUserID
	})
}
