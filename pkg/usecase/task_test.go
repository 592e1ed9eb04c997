package usecase_test

import (
	"context"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/abhiram98920/teamtracker/pkg/repository/memory"
	"github.com/abhiram98920/teamtracker/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestTaskUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), usecase.WithClock(fixedClock))

	created, err := uc.Task.Put(ctx, &model.Task{
		Name:     " Regression suite ",
		Assignee: "Priya Sharma",
		EndDate:  "2026-02-10",
	})
	gt.NoError(t, err).Required()
	gt.String(t, created.ID.String()).NotEqual("")
	gt.Value(t, created.Name).Equal("Regression suite")
	gt.Value(t, created.Status).Equal(types.TaskStatusYetToStart)
	gt.Value(t, created.UpdatedAt).Equal(fixedClock().UTC())

	t.Run("completing stamps the completion date", func(t *testing.T) {
		update := *created
		update.Status = types.TaskStatusCompleted
		done, err := uc.Task.Put(ctx, &update)
		gt.NoError(t, err).Required()
		gt.Value(t, done.ID).Equal(created.ID)
		gt.Value(t, done.CompletedDate).Equal(types.Date("2026-02-10"))
	})

	t.Run("list by assignee", func(t *testing.T) {
		_, err := uc.Task.Put(ctx, &model.Task{Name: "Other", Assignee: "Rahul Verma"})
		gt.NoError(t, err).Required()

		tasks, err := uc.Task.List(ctx, "PRIYA  sharma")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)

		all, err := uc.Task.List(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := uc.Task.Put(ctx, &model.Task{Name: "Bad", Status: "Done"})
		gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	})

	t.Run("delete", func(t *testing.T) {
		gt.NoError(t, uc.Task.Delete(ctx, created.ID)).Required()
		_, err := memoryGet(ctx, uc, created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		gt.Error(t, uc.Task.Delete(ctx, "")).Is(usecase.ErrInvalidArgument)
	})
}

func memoryGet(ctx context.Context, uc *usecase.UseCases, id model.TaskID) (*model.Task, error) {
	tasks, err := uc.Task.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func TestProjectUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), usecase.WithClock(fixedClock))

	p, err := uc.Project.Put(ctx, "Website Redesign", 12.5)
	gt.NoError(t, err).Required()
	gt.Number(t, p.AllottedDays).Equal(12.5)

	_, err = uc.Project.Put(ctx, "website redesign ", 10)
	gt.NoError(t, err).Required()

	list, err := uc.Project.List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, list).Length(1).Required()
	gt.Number(t, list[0].AllottedDays).Equal(10)

	_, err = uc.Project.Put(ctx, "", 1)
	gt.Error(t, err).Is(usecase.ErrInvalidArgument)
	_, err = uc.Project.Put(ctx, "Negative", -1)
	gt.Error(t, err).Is(usecase.ErrInvalidArgument)
}
