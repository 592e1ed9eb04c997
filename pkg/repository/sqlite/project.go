package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type projectRepository struct {
	db *sql.DB
}

func (r *projectRepository) Get(ctx context.Context, name string) (*model.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, allotted_days, updated_at FROM projects WHERE name_key = ?`,
		interfaces.ProjectKey(name))

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("name", name))
	}
	return p, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, allotted_days, updated_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	defer rows.Close()

	projects := make([]*model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan project")
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate projects")
	}
	return projects, nil
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	if err := project.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project")
	}

	updatedAt := project.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (name_key, name, allotted_days, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name_key) DO UPDATE SET
			name = excluded.name,
			allotted_days = excluded.allotted_days,
			updated_at = excluded.updated_at`,
		interfaces.ProjectKey(project.Name), project.Name, project.AllottedDays, formatTime(updatedAt))
	if err != nil {
		return goerr.Wrap(err, "failed to put project", goerr.V("name", project.Name))
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*model.Project, error) {
	var (
		p         model.Project
		updatedAt string
	)
	if err := s.Scan(&p.Name, &p.AllottedDays, &updatedAt); err != nil {
		return nil, err
	}

	t, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt = t
	return &p, nil
}
