package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mlefebvre/girder/internal/db"
	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/wbs"
)

type wbsService struct {
	items    repository.WbsItemRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWbsService(items repository.WbsItemRepo, projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) WbsService {
	return &wbsService{
		items:    items,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *wbsService) Create(ctx context.Context, candidate *domain.WbsItem) (created *domain.WbsItem, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "wbs-create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": candidate.ProjectID, "type": string(candidate.Type)},
		})
	}()

	if !domain.ValidWbsItemTypes[string(candidate.Type)] {
		return nil, &wbs.RuleError{
			Code:    wbs.CodeTypeHierarchy,
			Message: fmt.Sprintf("Unknown WBS item type %q", candidate.Type),
		}
	}

	// The whole admission check runs against a snapshot taken inside
	// the same transaction as the insert, so concurrent sibling
	// mutations cannot slip between validation and write.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		if _, err := txProjects.GetByID(ctx, candidate.ProjectID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &wbs.RuleError{Code: wbs.CodeNotFound, Message: "Project not found"}
			}
			return err
		}

		all, err := txItems.ListByProject(ctx, candidate.ProjectID)
		if err != nil {
			return err
		}
		tree := wbs.NewTree(all)

		if err := wbs.CheckCreate(candidate, tree); err != nil {
			return err
		}

		candidate.ID = uuid.New().String()
		assignPlacement(candidate, tree, all)
		now := time.Now().UTC()
		candidate.CreatedAt = now
		candidate.UpdatedAt = now

		return txItems.Create(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// assignPlacement computes code, level and the top-level flag from the
// candidate's position: top-level codes are "1", "2", ...; child codes
// extend the parent's code by the next sibling ordinal. The ordinal is
// one past the highest surviving sibling's, not the sibling count, so
// codes freed by deletes are never reissued to a later create.
func assignPlacement(candidate *domain.WbsItem, tree *wbs.Tree, all []*domain.WbsItem) {
	if candidate.ParentID == nil {
		candidate.IsTopLevel = true
		candidate.Level = 1
		high := 0
		for _, it := range all {
			if it.ParentID == nil {
				if n := codeOrdinal(it.Code); n > high {
					high = n
				}
			}
		}
		candidate.Code = strconv.Itoa(high + 1)
		return
	}
	parent := tree.Get(*candidate.ParentID)
	candidate.IsTopLevel = false
	candidate.Level = parent.Level + 1
	high := 0
	for _, sib := range tree.Children(parent.ID) {
		if n := codeOrdinal(sib.Code); n > high {
			high = n
		}
	}
	candidate.Code = fmt.Sprintf("%s.%d", parent.Code, high+1)
}

// codeOrdinal returns the last segment of a dotted WBS code as an
// integer, or 0 when it does not parse.
func codeOrdinal(code string) int {
	if i := strings.LastIndex(code, "."); i >= 0 {
		code = code[i+1:]
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return 0
	}
	return n
}

func (s *wbsService) Update(ctx context.Context, id string, patch WbsItemPatch) (updated *domain.WbsItem, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "wbs-update",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"wbs_item_id": id},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		existing, err := txItems.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &wbs.RuleError{Code: wbs.CodeNotFound, Message: "WBS item not found"}
			}
			return err
		}

		all, err := txItems.ListByProject(ctx, existing.ProjectID)
		if err != nil {
			return err
		}
		tree := wbs.NewTree(all)

		next := applyPatch(existing, patch)
		if err := wbs.CheckUpdate(existing, next, tree); err != nil {
			return err
		}

		next.UpdatedAt = time.Now().UTC()
		if err := txItems.Update(ctx, next); err != nil {
			return err
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyPatch produces the item as it would look after the patch. Nil
// patch fields keep the existing values; planned dates keep duration
// in sync.
func applyPatch(existing *domain.WbsItem, patch WbsItemPatch) *domain.WbsItem {
	next := *existing
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Type != nil {
		next.Type = *patch.Type
	}
	next.BudgetedCost = domain.DecimalFromPtrWithDefault(existing.BudgetedCost, patch.BudgetedCost)
	next.ActualCost = domain.DecimalFromPtrWithDefault(existing.ActualCost, patch.ActualCost)
	next.PercentComplete = domain.DecimalFromPtrWithDefault(existing.PercentComplete, patch.PercentComplete)
	if patch.StartDate != nil {
		next.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		next.EndDate = patch.EndDate
	}
	if patch.ActualStartDate != nil {
		next.ActualStartDate = patch.ActualStartDate
	}
	if patch.ActualEndDate != nil {
		next.ActualEndDate = patch.ActualEndDate
	}
	if next.HasSchedule() {
		dur := next.SpanDays()
		next.Duration = &dur
	}
	return &next
}

func (s *wbsService) GetByID(ctx context.Context, id string) (*domain.WbsItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *wbsService) ListByProject(ctx context.Context, projectID string) ([]*domain.WbsItem, error) {
	return s.items.ListByProject(ctx, projectID)
}

func (s *wbsService) Delete(ctx context.Context, id string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		existing, err := txItems.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &wbs.RuleError{Code: wbs.CodeNotFound, Message: "WBS item not found"}
			}
			return err
		}

		all, err := txItems.ListByProject(ctx, existing.ProjectID)
		if err != nil {
			return err
		}
		if err := wbs.CheckDelete(existing, wbs.NewTree(all)); err != nil {
			return err
		}
		return txItems.Delete(ctx, id)
	})
}

func (s *wbsService) Progress(ctx context.Context, id string) (*ProgressReport, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &wbs.RuleError{Code: wbs.CodeNotFound, Message: "WBS item not found"}
		}
		return nil, err
	}

	all, err := s.items.ListByProject(ctx, item.ProjectID)
	if err != nil {
		return nil, err
	}
	tree := wbs.NewTree(all)

	return &ProgressReport{
		ItemID:          id,
		PercentComplete: wbs.RollupPercent(tree, id),
		ActualCost:      wbs.RollupActualCost(tree, id),
		BudgetedCost:    item.BudgetedCost,
	}, nil
}
