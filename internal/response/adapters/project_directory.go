package adapters

import (
	"context"
	"errors"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/project/models"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/response/service"
	id "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/sentinel"
)

// ProjectStore is the subset of the project store the directory reads.
type ProjectStore interface {
	FindProject(ctx context.Context, projectID id.ProjectID) (*models.Project, error)
	FindRepresentative(ctx context.Context, representativeID id.RepresentativeID) (*models.Representative, error)
	FindRepresentativeByUser(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*models.Representative, error)
	ListRepresentatives(ctx context.Context, projectID id.ProjectID) ([]*models.Representative, error)
}

// ProjectDirectory implements service.ProjectDirectory over the project store,
// keeping the response module unaware of how projects are persisted.
type ProjectDirectory struct {
	projects ProjectStore
}

// NewProjectDirectory creates a new project directory adapter.
func NewProjectDirectory(projects ProjectStore) service.ProjectDirectory {
	return &ProjectDirectory{projects: projects}
}

// IsOwner reports false for unknown projects.
func (d *ProjectDirectory) IsOwner(ctx context.Context, userID id.UserID, projectID id.ProjectID) (bool, error) {
	project, err := d.projects.FindProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return project.IsOwnedBy(userID), nil
}

func (d *ProjectDirectory) RepresentativeOf(ctx context.Context, userID id.UserID, projectID id.ProjectID) (*models.Representative, error) {
	return d.projects.FindRepresentativeByUser(ctx, userID, projectID)
}

func (d *ProjectDirectory) FindRepresentative(ctx context.Context, representativeID id.RepresentativeID) (*models.Representative, error) {
	return d.projects.FindRepresentative(ctx, representativeID)
}

func (d *ProjectDirectory) ListRepresentatives(ctx context.Context, projectID id.ProjectID) ([]*models.Representative, error) {
	return d.projects.ListRepresentatives(ctx, projectID)
}
