package model

import (
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TaskID is a unique identifier of a local task
type TaskID string

// NewTaskID returns a random TaskID
func NewTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// String returns the string representation of TaskID
func (id TaskID) String() string {
	return string(id)
}

// Task is a locally tracked unit of work assigned to one person
type Task struct {
	ID            TaskID           `json:"id"`
	Name          string           `json:"name"`
	ProjectName   string           `json:"project_name"`
	Assignee      string           `json:"assignee"`
	Status        types.TaskStatus `json:"status"`
	StartDate     types.Date       `json:"start_date,omitempty"`
	EndDate       types.Date       `json:"end_date,omitempty"`
	CompletedDate types.Date       `json:"completed_date,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Validate checks if the task can be stored
func (t *Task) Validate() error {
	if t.ID == "" {
		return goerr.New("task ID is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return goerr.New("task name is required", goerr.V("id", t.ID))
	}
	if !t.Status.IsValid() {
		return goerr.New("invalid task status", goerr.V("id", t.ID), goerr.V("status", t.Status))
	}
	for _, d := range []types.Date{t.StartDate, t.EndDate, t.CompletedDate} {
		if d.IsZero() {
			continue
		}
		if _, err := types.ParseDate(d.String()); err != nil {
			return goerr.Wrap(err, "invalid task date", goerr.V("id", t.ID))
		}
	}
	return nil
}

// IsOverdueOn reports whether the task is past its end date on the given day.
// Equal dates are not overdue.
func (t *Task) IsOverdueOn(date types.Date) bool {
	if t.Status == types.TaskStatusCompleted || t.EndDate.IsZero() {
		return false
	}
	return date.After(t.EndDate)
}
