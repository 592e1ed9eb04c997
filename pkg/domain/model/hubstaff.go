package model

import (
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// RemoteProject is a read-only mirror of a Hubstaff project
type RemoteProject struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// RemoteTeam is a Hubstaff team
type RemoteTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeamMember is one entry of a Hubstaff team membership listing
type TeamMember struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// OrganizationMember is a Hubstaff organization member joined with its user record
type OrganizationMember struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// DailyActivity is the per user, project and day activity record.
// Overall (active seconds) never exceeds Tracked.
type DailyActivity struct {
	UserID    int64      `json:"user_id"`
	ProjectID int64      `json:"project_id"`
	Date      types.Date `json:"date"`
	Tracked   int64      `json:"tracked"`
	Overall   int64      `json:"overall"`
}

// ActivityPercentage returns round(overall/tracked*100) clamped to [0,100],
// or 0 when nothing was tracked.
func (a *DailyActivity) ActivityPercentage() int {
	if a.Tracked <= 0 {
		return 0
	}
	pct := roundHalfUp(float64(a.Overall) / float64(a.Tracked) * 100)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
