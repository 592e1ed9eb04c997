package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/abhiram98920/teamtracker/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	db *sql.DB
}

const (
	taskColumns = `id, name, project_name, assignee, status, start_date, end_date, completed_date, updated_at`
	// undated tasks last, then end date and name
	taskOrder = ` ORDER BY end_date = '', end_date, name, id`
)

func (r *taskRepository) Get(ctx context.Context, id model.TaskID) (*model.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())

	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}
	return t, nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks`+taskOrder)
}

func (r *taskRepository) ListByAssignee(ctx context.Context, assignee string) ([]*model.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE assignee_key = ?`+taskOrder,
		interfaces.AssigneeKey(assignee))
}

func (r *taskRepository) query(ctx context.Context, q string, args ...any) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query tasks")
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan task")
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate tasks")
	}
	return tasks, nil
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	if err := task.Validate(); err != nil {
		return goerr.Wrap(err, "invalid task")
	}

	updatedAt := task.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, project_name, assignee, assignee_key, status, start_date, end_date, completed_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			project_name = excluded.project_name,
			assignee = excluded.assignee,
			assignee_key = excluded.assignee_key,
			status = excluded.status,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			completed_date = excluded.completed_date,
			updated_at = excluded.updated_at`,
		task.ID.String(), task.Name, task.ProjectName, task.Assignee, interfaces.AssigneeKey(task.Assignee),
		task.Status.String(), task.StartDate.String(), task.EndDate.String(), task.CompletedDate.String(),
		formatTime(updatedAt))
	if err != nil {
		return goerr.Wrap(err, "failed to put task", goerr.V("id", task.ID))
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id model.TaskID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to get affected rows", goerr.V("id", id))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	return nil
}

func scanTask(s scanner) (*model.Task, error) {
	var (
		t                                 model.Task
		id, status                        string
		startDate, endDate, completedDate string
		updatedAt                         string
	)
	if err := s.Scan(&id, &t.Name, &t.ProjectName, &t.Assignee, &status,
		&startDate, &endDate, &completedDate, &updatedAt); err != nil {
		return nil, err
	}

	ts, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	t.ID = model.TaskID(id)
	t.Status = types.TaskStatus(status)
	t.StartDate = types.Date(startDate)
	t.EndDate = types.Date(endDate)
	t.CompletedDate = types.Date(completedDate)
	t.UpdatedAt = ts
	return &t, nil
}
