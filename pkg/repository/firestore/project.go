package firestore

import (
	"context"
	"net/url"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/abhiram98920/teamtracker/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const projectsCollection = "projects"

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

type projectDoc struct {
	Name         string    `firestore:"name"`
	AllottedDays float64   `firestore:"allotted_days"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (r *projectRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, projectsCollection))
}

// docID escapes the key since project names may contain "/"
func (r *projectRepository) docID(name string) string {
	return url.PathEscape(interfaces.ProjectKey(name))
}

func (r *projectRepository) Get(ctx context.Context, name string) (*model.Project, error) {
	snap, err := r.collection().Doc(r.docID(name)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("name", name))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("name", name))
	}

	var doc projectDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("name", name))
	}
	return projectFromDoc(&doc), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var doc projectDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("docID", snap.Ref.ID))
		}
		projects = append(projects, projectFromDoc(&doc))
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

	doc := &projectDoc{
		Name:         project.Name,
		AllottedDays: project.AllottedDays,
		UpdatedAt:    project.UpdatedAt,
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(r.docID(project.Name)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put project", goerr.V("name", project.Name))
	}
	return nil
}

func projectFromDoc(doc *projectDoc) *model.Project {
	return &model.Project{
		Name:         doc.Name,
		AllottedDays: doc.AllottedDays,
		UpdatedAt:    doc.UpdatedAt,
	}
}
