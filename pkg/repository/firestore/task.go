package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const tasksCollection = "tasks"

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

// taskDoc is the Firestore persistence model. AssigneeKey backs ListByAssignee.
type taskDoc struct {
	ID            string    `firestore:"id"`
	Name          string    `firestore:"name"`
	ProjectName   string    `firestore:"project_name"`
	Assignee      string    `firestore:"assignee"`
	AssigneeKey   string    `firestore:"assignee_key"`
	Status        string    `firestore:"status"`
	StartDate     string    `firestore:"start_date"`
	EndDate       string    `firestore:"end_date"`
	CompletedDate string    `firestore:"completed_date"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (r *taskRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, tasksCollection))
}

func taskToDoc(t *model.Task) *taskDoc {
	return &taskDoc{
		ID:            t.ID.String(),
		Name:          t.Name,
		ProjectName:   t.ProjectName,
		Assignee:      t.Assignee,
		AssigneeKey:   interfaces.AssigneeKey(t.Assignee),
		Status:        t.Status.String(),
		StartDate:     t.StartDate.String(),
		EndDate:       t.EndDate.String(),
		CompletedDate: t.CompletedDate.String(),
		UpdatedAt:     t.UpdatedAt,
	}
}

func taskFromDoc(doc *taskDoc) *model.Task {
	return &model.Task{
		ID:            model.TaskID(doc.ID),
		Name:          doc.Name,
		ProjectName:   doc.ProjectName,
		Assignee:      doc.Assignee,
		Status:        types.TaskStatus(doc.Status),
		StartDate:     types.Date(doc.StartDate),
		EndDate:       types.Date(doc.EndDate),
		CompletedDate: types.Date(doc.CompletedDate),
		UpdatedAt:     doc.UpdatedAt,
	}
}

func (r *taskRepository) Get(ctx context.Context, id model.TaskID) (*model.Task, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var doc taskDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("id", id))
	}
	return taskFromDoc(&doc), nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	return r.query(r.collection().OrderBy("end_date", firestore.Asc).Documents(ctx))
}

func (r *taskRepository) ListByAssignee(ctx context.Context, assignee string) ([]*model.Task, error) {
	q := r.collection().
		Where("assignee_key", "==", interfaces.AssigneeKey(assignee)).
		OrderBy("end_date", firestore.Asc)
	return r.query(q.Documents(ctx))
}

func (r *taskRepository) query(iter *firestore.DocumentIterator) ([]*model.Task, error) {
	defer iter.Stop()

	tasks := make([]*model.Task, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var doc taskDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("docID", snap.Ref.ID))
		}
		tasks = append(tasks, taskFromDoc(&doc))
	}

	// empty end dates sort first in Firestore; move them last
	dated := make([]*model.Task, 0, len(tasks))
	var undated []*model.Task
	for _, t := range tasks {
		if t.EndDate.IsZero() {
			undated = append(undated, t)
		} else {
			dated = append(dated, t)
		}
	}
	return append(dated, undated...), nil
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	if err := task.Validate(); err != nil {
		return goerr.Wrap(err, "invalid task")
	}

	doc := taskToDoc(task)
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put task", goerr.V("id", task.ID))
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id model.TaskID) error {
	ref := r.collection().Doc(id.String())
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}
	return nil
}
