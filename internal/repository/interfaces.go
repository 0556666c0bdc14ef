package repository

import (
	"context"
	"errors"

	"github.com/mlefebvre/girder/internal/domain"
)

// ErrNotFound is wrapped by repo lookups when no row matches; callers
// distinguish missing records from storage failures via errors.Is.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type WbsItemRepo interface {
	Create(ctx context.Context, w *domain.WbsItem) error
	GetByID(ctx context.Context, id string) (*domain.WbsItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WbsItem, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.WbsItem, error)
	ListTopLevel(ctx context.Context, projectID string) ([]*domain.WbsItem, error)
	Update(ctx context.Context, w *domain.WbsItem) error
	Delete(ctx context.Context, id string) error
}

type DependencyRepo interface {
	Create(ctx context.Context, d *domain.Dependency) error
	GetByID(ctx context.Context, id string) (*domain.Dependency, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error)
	ListPredecessors(ctx context.Context, successorID string) ([]domain.Dependency, error)
	ListSuccessors(ctx context.Context, predecessorID string) ([]domain.Dependency, error)
	Delete(ctx context.Context, id string) error
}
