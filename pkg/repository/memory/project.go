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

type projectRepository struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[string]*model.Project),
	}
}

func (r *projectRepository) Get(ctx context.Context, name string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[interfaces.ProjectKey(name)]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("name", name))
	}

	projectCopy := *project
	return &projectCopy, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projectCopy := *p
		projects = append(projects, &projectCopy)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}

func (r *projectRepository) Put(ctx context.Context, project *model.Project) error {
	if err := project.Validate(); err != nil {
		return goerr.Wrap(err, "invalid project")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	projectCopy := *project
	if projectCopy.UpdatedAt.IsZero() {
		projectCopy.UpdatedAt = time.Now().UTC()
	}
	r.projects[interfaces.ProjectKey(project.Name)] = &projectCopy
	return nil
}
