package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TaskUseCase manages local tasks
type TaskUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

// Put creates a task when ID is empty, otherwise replaces it. A Completed task
// without a completion date is stamped with its end date when known.
func (uc *TaskUseCase) Put(ctx context.Context, task *model.Task) (*model.Task, error) {
	if task == nil {
		return nil, goerr.Wrap(ErrInvalidArgument, "task is required")
	}

	t := *task
	t.Name = strings.TrimSpace(t.Name)
	t.Assignee = strings.TrimSpace(t.Assignee)
	if t.ID == "" {
		t.ID = model.NewTaskID()
	}
	if t.Status == "" {
		t.Status = types.TaskStatusYetToStart
	}
	if parsed, err := types.ParseTaskStatus(t.Status.String()); err == nil {
		t.Status = parsed
	}
	if t.Status == types.TaskStatusCompleted && t.CompletedDate.IsZero() {
		t.CompletedDate = t.EndDate
	}
	if t.Status != types.TaskStatusCompleted {
		t.CompletedDate = ""
	}
	t.UpdatedAt = uc.clock().UTC()

	if err := t.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, err.Error(), goerr.V("task_id", t.ID))
	}

	if err := uc.repo.Task().Put(ctx, &t); err != nil {
		return nil, goerr.Wrap(err, "failed to store task", goerr.V("task_id", t.ID))
	}
	return uc.repo.Task().Get(ctx, t.ID)
}

// List returns all tasks, or those of assignee when set
func (uc *TaskUseCase) List(ctx context.Context, assignee string) ([]*model.Task, error) {
	var (
		tasks []*model.Task
		err   error
	)
	if strings.TrimSpace(assignee) == "" {
		tasks, err = uc.repo.Task().List(ctx)
	} else {
		tasks, err = uc.repo.Task().ListByAssignee(ctx, assignee)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return tasks, nil
}

// Delete removes a task
func (uc *TaskUseCase) Delete(ctx context.Context, id model.TaskID) error {
	if id == "" {
		return goerr.Wrap(ErrInvalidArgument, "task id is required")
	}
	if err := uc.repo.Task().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("task_id", id))
	}
	return nil
}
