package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mlefebvre/girder/internal/db"
	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/wbs"
)

// defaultCategory describes one of the summary items seeded for every
// new project, with its share of the project budget in percent.
type defaultCategory struct {
	name  string
	code  string
	share int64
}

var defaultCategories = []defaultCategory{
	{name: "Engineering & Design", code: "1", share: 5},
	{name: "Procurement & Construction", code: "2", share: 85},
	{name: "Testing & Commissioning", code: "3", share: 10},
}

// budgetAbsorberName is the seeded category that soaks up project
// budget changes (and any rounding remainder of the initial split).
const budgetAbsorberName = "Procurement & Construction"

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": p.Name},
		})
	}()

	if err = p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		if err := txProjects.Create(ctx, p); err != nil {
			return err
		}
		for _, item := range seedTopLevelItems(p) {
			if err := txItems.Create(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// seedTopLevelItems builds the default Summary items for a new
// project. Shares are exact percentages; the absorber category takes
// whatever remains so the three budgets always sum to the project
// budget.
func seedTopLevelItems(p *domain.Project) []*domain.WbsItem {
	now := time.Now().UTC()
	hundred := decimal.NewFromInt(100)

	remaining := p.Budget
	items := make([]*domain.WbsItem, 0, len(defaultCategories))
	for _, cat := range defaultCategories {
		if cat.name != budgetAbsorberName {
			amount := p.Budget.Mul(decimal.NewFromInt(cat.share)).Div(hundred).Round(2)
			remaining = remaining.Sub(amount)
		}
	}
	for _, cat := range defaultCategories {
		amount := p.Budget.Mul(decimal.NewFromInt(cat.share)).Div(hundred).Round(2)
		if cat.name == budgetAbsorberName {
			amount = remaining
		}
		items = append(items, &domain.WbsItem{
			ID:              uuid.New().String(),
			ProjectID:       p.ID,
			Name:            cat.name,
			Level:           1,
			Code:            cat.code,
			Type:            domain.TypeSummary,
			BudgetedCost:    amount,
			ActualCost:      decimal.Zero,
			PercentComplete: decimal.Zero,
			IsTopLevel:      true,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return items
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) UpdateBudget(ctx context.Context, id string, budget decimal.Decimal) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "project-update-budget",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project_id": id},
		})
	}()

	if budget.IsNegative() {
		return &wbs.RuleError{Code: wbs.CodeBudgetContainment, Message: "Project budget must not be negative"}
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txItems := repository.NewSQLiteWbsItemRepo(tx)

		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}

		items, err := txItems.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		absorber, ok := pristineDefaultTree(items)
		if !ok {
			return &wbs.RuleError{
				Code:    wbs.CodeBudgetContainment,
				Message: "Project budget can only be changed before the WBS is customized",
			}
		}

		delta := budget.Sub(p.Budget)
		newAbsorberBudget := absorber.BudgetedCost.Add(delta)
		if newAbsorberBudget.IsNegative() {
			return &wbs.RuleError{
				Code:    wbs.CodeBudgetContainment,
				Message: "Budget reduction exceeds the 'Procurement & Construction' allocation",
			}
		}

		now := time.Now().UTC()
		absorber.BudgetedCost = newAbsorberBudget
		absorber.UpdatedAt = now
		if err := txItems.Update(ctx, absorber); err != nil {
			return err
		}

		p.Budget = budget
		p.UpdatedAt = now
		return txProjects.Update(ctx, p)
	})
}

// pristineDefaultTree reports whether items are exactly the three
// seeded top-level summaries and returns the absorber item.
func pristineDefaultTree(items []*domain.WbsItem) (*domain.WbsItem, bool) {
	if len(items) != len(defaultCategories) {
		return nil, false
	}
	byName := make(map[string]*domain.WbsItem, len(items))
	for _, it := range items {
		if !it.IsTopLevel || it.Type != domain.TypeSummary {
			return nil, false
		}
		byName[it.Name] = it
	}
	for _, cat := range defaultCategories {
		if byName[cat.name] == nil {
			return nil, false
		}
	}
	return byName[budgetAbsorberName], true
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}
