package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client  *firestore.Client
	token   *tokenRepository
	project *projectRepository
	task    *taskRepository
	leave   *leaveRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.token.collectionPrefix = prefix
		f.project.collectionPrefix = prefix
		f.task.collectionPrefix = prefix
		f.leave.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:  client,
		token:   newTokenRepository(client),
		project: newProjectRepository(client),
		task:    newTaskRepository(client),
		leave:   newLeaveRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Token() interfaces.TokenRepository {
	return f.token
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Leave() interfaces.LeaveRepository {
	return f.leave
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// TasksCollection returns the name of the task collection under prefix
func TasksCollection(prefix string) string {
	return collectionName(prefix, tasksCollection)
}

// LeavesCollection returns the name of the leave collection under prefix
func LeavesCollection(prefix string) string {
	return collectionName(prefix, leavesCollection)
}
