package interfaces

import (
	"context"

	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned by every backend when a record does not exist
var ErrNotFound = goerr.New("not found")

// Repository defines the interface for data persistence
type Repository interface {
	Token() TokenRepository
	Project() ProjectRepository
	Task() TaskRepository
	Leave() LeaveRepository

	Close() error
}

// TokenRepository keeps the single time-tracking API token row.
// Concurrent writers race and the last write wins.
type TokenRepository interface {
	// Get returns the stored token or ErrNotFound
	Get(ctx context.Context) (*model.AccessToken, error)
	Put(ctx context.Context, token *model.AccessToken) error
}

// ProjectRepository stores local projects keyed by case-insensitive name
type ProjectRepository interface {
	Get(ctx context.Context, name string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Put(ctx context.Context, project *model.Project) error
}

// TaskRepository stores local tasks
type TaskRepository interface {
	Get(ctx context.Context, id model.TaskID) (*model.Task, error)
	List(ctx context.Context) ([]*model.Task, error)

	// ListByAssignee matches the assignee case-insensitively
	ListByAssignee(ctx context.Context, assignee string) ([]*model.Task, error)
	Put(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id model.TaskID) error
}

// LeaveRepository stores leave records
type LeaveRepository interface {
	Put(ctx context.Context, leave *model.Leave) error
	ListByDate(ctx context.Context, date types.Date) ([]*model.Leave, error)
	ListByMember(ctx context.Context, memberKey string) ([]*model.Leave, error)
}
