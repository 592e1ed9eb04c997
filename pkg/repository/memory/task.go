package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[model.TaskID]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[model.TaskID]*model.Task),
	}
}

func (r *taskRepository) Get(ctx context.Context, id model.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	taskCopy := *task
	return &taskCopy, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	return r.filter(func(*model.Task) bool { return true }), nil
}

func (r *taskRepository) ListByAssignee(ctx context.Context, assignee string) ([]*model.Task, error) {
	key := interfaces.AssigneeKey(assignee)
	return r.filter(func(t *model.Task) bool {
		return interfaces.AssigneeKey(t.Assignee) == key
	}), nil
}

func (r *taskRepository) filter(match func(*model.Task) bool) []*model.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*model.Task, 0)
	for _, t := range r.tasks {
		if !match(t) {
			continue
		}
		taskCopy := *t
		tasks = append(tasks, &taskCopy)
	}

	sortTasks(tasks)
	return tasks
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	if err := task.Validate(); err != nil {
		return goerr.Wrap(err, "invalid task")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taskCopy := *task
	if taskCopy.UpdatedAt.IsZero() {
		taskCopy.UpdatedAt = time.Now().UTC()
	}
	r.tasks[task.ID] = &taskCopy
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	delete(r.tasks, id)
	return nil
}

// sortTasks orders by end date then name; tasks without an end date go last
func sortTasks(tasks []*model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.EndDate != b.EndDate {
			if a.EndDate.IsZero() {
				return false
			}
			if b.EndDate.IsZero() {
				return true
			}
			return a.EndDate < b.EndDate
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
