package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mlefebvre/girder/internal/db"
	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/wbs"
)

type dependencyService struct {
	deps     repository.DependencyRepo
	items    repository.WbsItemRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewDependencyService(deps repository.DependencyRepo, items repository.WbsItemRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DependencyService {
	return &dependencyService{
		deps:     deps,
		items:    items,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dependencyService) Create(ctx context.Context, d *domain.Dependency) (created *domain.Dependency, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "dependency-create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"type": string(d.Type)},
		})
	}()

	if d.Type == "" {
		d.Type = domain.DepFinishToStart
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWbsItemRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)

		pred, err := lookupEndpoint(ctx, txItems, d.PredecessorID)
		if err != nil {
			return err
		}
		succ, err := lookupEndpoint(ctx, txItems, d.SuccessorID)
		if err != nil {
			return err
		}
		if err := wbs.CheckDependency(d, pred, succ); err != nil {
			return err
		}

		d.ID = uuid.New().String()
		d.CreatedAt = time.Now().UTC()
		return txDeps.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// lookupEndpoint resolves a dependency endpoint, returning nil (not an
// error) when the item does not exist so CheckDependency can report it
// as the rule violation it is.
func lookupEndpoint(ctx context.Context, items repository.WbsItemRepo, id string) (*domain.WbsItem, error) {
	item, err := items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (s *dependencyService) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	return s.deps.ListByProject(ctx, projectID)
}

func (s *dependencyService) Delete(ctx context.Context, id string) error {
	return s.deps.Delete(ctx, id)
}
