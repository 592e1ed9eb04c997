package repository_test

import (
	"context"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func newTask(name, assignee string, status types.TaskStatus, end types.Date) *model.Task {
	return &model.Task{
		ID:          model.NewTaskID(),
		Name:        name,
		ProjectName: "Acme",
		Assignee:    assignee,
		Status:      status,
		EndDate:     end,
	}
}

func runTaskRepositoryTest(t *testing.T, newRepo repoFactory) {
	t.Run("Put and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		task := newTask("Login page", "Jane Doe", types.TaskStatusCompleted, "2026-02-10")
		task.StartDate = "2026-02-01"
		task.CompletedDate = "2026-02-09"
		gt.NoError(t, repo.Task().Put(ctx, task)).Required()

		got, err := repo.Task().Get(ctx, task.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("Login page")
		gt.Value(t, got.Assignee).Equal("Jane Doe")
		gt.Value(t, got.Status).Equal(types.TaskStatusCompleted)
		gt.Value(t, got.StartDate).Equal(types.Date("2026-02-01"))
		gt.Value(t, got.EndDate).Equal(types.Date("2026-02-10"))
		gt.Value(t, got.CompletedDate).Equal(types.Date("2026-02-09"))
	})

	t.Run("ListByAssignee ignores case and spacing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Task().Put(ctx, newTask("b", "Jane Doe", types.TaskStatusInProgress, "2026-02-12"))).Required()
		gt.NoError(t, repo.Task().Put(ctx, newTask("a", "jane  doe", types.TaskStatusYetToStart, "2026-02-11"))).Required()
		gt.NoError(t, repo.Task().Put(ctx, newTask("c", "JANE DOE", types.TaskStatusOnHold, ""))).Required()
		gt.NoError(t, repo.Task().Put(ctx, newTask("other", "John Roe", types.TaskStatusInProgress, "2026-02-01"))).Required()

		tasks, err := repo.Task().ListByAssignee(ctx, "Jane Doe")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(3).Required()
		gt.Value(t, tasks[0].Name).Equal("a")
		gt.Value(t, tasks[1].Name).Equal("b")
		gt.Value(t, tasks[2].Name).Equal("c")

		all, err := repo.Task().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(4)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		task := newTask("x", "Jane", types.TaskStatusInProgress, "")
		gt.NoError(t, repo.Task().Put(ctx, task)).Required()
		gt.NoError(t, repo.Task().Delete(ctx, task.ID)).Required()

		_, err := repo.Task().Get(ctx, task.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
		gt.Error(t, repo.Task().Delete(ctx, task.ID)).Is(interfaces.ErrNotFound)
	})

	t.Run("Put rejects invalid status and dates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.Error(t, repo.Task().Put(ctx, newTask("x", "Jane", types.TaskStatus("Done"), "")))
		gt.Error(t, repo.Task().Put(ctx, newTask("x", "Jane", types.TaskStatusInProgress, "10/02/2026")))
	})
}

func TestTaskRepository(t *testing.T) {
	runAllBackends(t, runTaskRepositoryTest)
}
