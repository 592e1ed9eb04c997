package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ProjectUseCase manages local projects
type ProjectUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

// Put creates or updates a project by name
func (uc *ProjectUseCase) Put(ctx context.Context, name string, allottedDays float64) (*model.Project, error) {
	project := &model.Project{
		Name:         strings.TrimSpace(name),
		AllottedDays: allottedDays,
		UpdatedAt:    uc.clock().UTC(),
	}
	if err := project.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidArgument, err.Error(), goerr.V(ProjectNameKey, name))
	}

	if err := uc.repo.Project().Put(ctx, project); err != nil {
		return nil, goerr.Wrap(err, "failed to store project", goerr.V(ProjectNameKey, name))
	}
	return uc.repo.Project().Get(ctx, project.Name)
}

// List returns every project sorted by name
func (uc *ProjectUseCase) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	return projects, nil
}
