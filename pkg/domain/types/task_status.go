package types

import "fmt"

// TaskStatus represents the workflow status of a local task
type TaskStatus string

const (
	TaskStatusYetToStart TaskStatus = "Yet to Start"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusOnHold     TaskStatus = "On Hold"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusRejected   TaskStatus = "Rejected"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusYetToStart,
		TaskStatusInProgress,
		TaskStatusOnHold,
		TaskStatusCompleted,
		TaskStatusRejected,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusYetToStart,
		TaskStatusInProgress,
		TaskStatusOnHold,
		TaskStatusCompleted,
		TaskStatusRejected:
		return true
	default:
		return false
	}
}

// IsClosed reports whether the task left the active workflow
func (s TaskStatus) IsClosed() bool {
	return s == TaskStatusCompleted || s == TaskStatusRejected
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
