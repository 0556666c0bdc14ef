package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/scheduler"
	"github.com/mlefebvre/girder/internal/wbs"
)

type scheduleService struct {
	projects repository.ProjectRepo
	items    repository.WbsItemRepo
	deps     repository.DependencyRepo
	observer UseCaseObserver
}

func NewScheduleService(projects repository.ProjectRepo, items repository.WbsItemRepo, deps repository.DependencyRepo, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{
		projects: projects,
		items:    items,
		deps:     deps,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) FinalizeSchedule(ctx context.Context, projectID string) (result *FinalizeResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() {
		if result != nil {
			fields["updated"] = result.UpdatedCount
			fields["errors"] = result.ErrorCount
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "finalize-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &wbs.RuleError{Code: wbs.CodeNotFound, Message: "Project not found"}
		}
		return nil, err
	}

	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	deps, err := s.deps.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	changed, err := scheduler.Propagate(items, deps)
	if err != nil {
		return nil, err
	}

	// Each write stands alone: one failed update is recorded and the
	// rest of the batch proceeds.
	result = &FinalizeResult{}
	now := time.Now().UTC()
	for _, item := range changed {
		item.UpdatedAt = now
		if updateErr := s.items.Update(ctx, item); updateErr != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors,
				fmt.Sprintf("updating %s (%s): %v", item.Code, item.ID, updateErr))
			continue
		}
		result.UpdatedCount++
	}
	return result, nil
}
