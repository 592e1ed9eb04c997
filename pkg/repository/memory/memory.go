package memory

import (
	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory keeps every record in process memory. Used for development and tests.
type Memory struct {
	token   *tokenRepository
	project *projectRepository
	task    *taskRepository
	leave   *leaveRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		token:   newTokenRepository(),
		project: newProjectRepository(),
		task:    newTaskRepository(),
		leave:   newLeaveRepository(),
	}
}

func (m *Memory) Token() interfaces.TokenRepository {
	return m.token
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Leave() interfaces.LeaveRepository {
	return m.leave
}

func (m *Memory) Close() error {
	return nil
}
