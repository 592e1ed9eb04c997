package usecase

import (
	"fmt"
	"strings"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
)

// ReportSummary counts tasks of a status report
type ReportSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Rejected  int `json:"rejected"`
	Overdue   int `json:"overdue"`
}

// SummarizeTasks counts tasks as of date. Completed counts only tasks
// completed on that date.
func SummarizeTasks(date types.Date, tasks []*model.Task) ReportSummary {
	s := ReportSummary{Total: len(tasks)}
	for _, t := range tasks {
		switch {
		case t.Status == types.TaskStatusCompleted:
			if t.CompletedDate == date {
				s.Completed++
			}
		case t.Status == types.TaskStatusRejected:
			s.Rejected++
		default:
			s.Active++
		}
		if t.IsOverdueOn(date) {
			s.Overdue++
		}
	}
	return s
}

// FormatStatusReport renders the daily status report of one person as Slack
// flavored markdown. Output depends only on the arguments.
func FormatStatusReport(personName string, date types.Date, tasks []*model.Task) string {
	var active, completed []*model.Task
	for _, t := range tasks {
		switch {
		case t.Status == types.TaskStatusCompleted:
			if t.CompletedDate == date {
				completed = append(completed, t)
			}
		case t.Status == types.TaskStatusRejected:
		default:
			active = append(active, t)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Status Report: %s* (%s)\n\n", personName, date)

	fmt.Fprintf(&b, "*Active Tasks* (%d)\n", len(active))
	if len(active) == 0 {
		b.WriteString("_None_\n")
	}
	for _, t := range active {
		b.WriteString("• " + taskLine(t))
		if !t.EndDate.IsZero() {
			fmt.Fprintf(&b, ", due %s", t.EndDate)
		}
		if t.IsOverdueOn(date) {
			b.WriteString(" *OVERDUE*")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n*Completed Today* (%d)\n", len(completed))
	if len(completed) == 0 {
		b.WriteString("_None_\n")
	}
	for _, t := range completed {
		b.WriteString("• " + taskLine(t) + "\n")
	}

	s := SummarizeTasks(date, tasks)
	b.WriteString("\n*Summary*\n")
	fmt.Fprintf(&b, "Total: %d | Active: %d | Completed: %d | Rejected: %d | Overdue: %d\n",
		s.Total, s.Active, s.Completed, s.Rejected, s.Overdue)

	return b.String()
}

func taskLine(t *model.Task) string {
	line := t.Name
	if t.ProjectName != "" {
		line += " [" + t.ProjectName + "]"
	}
	return line + " - " + t.Status.String()
}
