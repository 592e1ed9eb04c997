package model

import (
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// LeaveID is a unique identifier of a leave record
type LeaveID string

// NewLeaveID returns a random LeaveID
func NewLeaveID() LeaveID {
	return LeaveID(uuid.New().String())
}

// Leave is one day of absence for a member. MemberKey is the remote user id,
// or the shadow id when the person could not be matched.
type Leave struct {
	ID         LeaveID    `json:"id"`
	MemberKey  string     `json:"member_key"`
	MemberName string     `json:"member_name"`
	Shadow     bool       `json:"shadow"`
	Date       types.Date `json:"date"`
	Reason     string     `json:"reason"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Validate checks if the leave can be stored
func (l *Leave) Validate() error {
	if l.ID == "" {
		return goerr.New("leave ID is required")
	}
	if l.MemberKey == "" {
		return goerr.New("leave member key is required", goerr.V("id", l.ID))
	}
	if _, err := types.ParseDate(l.Date.String()); err != nil {
		return goerr.Wrap(err, "invalid leave date", goerr.V("id", l.ID))
	}
	return nil
}
