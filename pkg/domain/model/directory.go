package model

import (
	"fmt"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// MemberIdentity is a remote user resolved to a display name and team category.
// Shadow identities stand in for people that could not be matched.
type MemberIdentity struct {
	RemoteUserID int64              `json:"remote_user_id"`
	DisplayName  string             `json:"display_name"`
	Team         types.TeamCategory `json:"team"`
	Shadow       bool               `json:"shadow"`
	ShadowID     string             `json:"shadow_id,omitempty"`
}

// Key returns a stable identifier: the shadow id or the remote user id
func (m *MemberIdentity) Key() string {
	if m.Shadow {
		return m.ShadowID
	}
	return fmt.Sprintf("%d", m.RemoteUserID)
}

// Directory is the cached view of the remote organization: projects and the
// user to team/name mapping.
type Directory struct {
	Projects          []*RemoteProject
	Members           map[int64]*MemberIdentity
	ProjectsFetchedAt time.Time
	MembersFetchedAt  time.Time
}

// TeamOf returns the team category of a remote user, or Unknown
func (d *Directory) TeamOf(userID int64) types.TeamCategory {
	if d != nil {
		if m, ok := d.Members[userID]; ok && m.Team != "" {
			return m.Team
		}
	}
	return types.TeamCategoryUnknown
}

// NameOf returns the display name of a remote user, or a placeholder
func (d *Directory) NameOf(userID int64) string {
	if d != nil {
		if m, ok := d.Members[userID]; ok && m.DisplayName != "" {
			return m.DisplayName
		}
	}
	return fmt.Sprintf("User %d", userID)
}

// MemberList returns members as a slice sorted by remote user id
func (d *Directory) MemberList() []*MemberIdentity {
	if d == nil {
		return nil
	}
	list := make([]*MemberIdentity, 0, len(d.Members))
	for _, m := range d.Members {
		list = append(list, m)
	}
	sortMembers(list)
	return list
}
