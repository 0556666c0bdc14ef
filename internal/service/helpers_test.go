package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/repository"
	"github.com/mlefebvre/girder/internal/testutil"
	"github.com/mlefebvre/girder/internal/wbs"
)

// svcHarness bundles the fully wired services over one in-memory db.
type svcHarness struct {
	Projects ProjectService
	Wbs      WbsService
	Deps     DependencyService
	Schedule ScheduleService
}

func newHarness(t *testing.T) *svcHarness {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projRepo := repository.NewSQLiteProjectRepo(database)
	itemRepo := repository.NewSQLiteWbsItemRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)

	return &svcHarness{
		Projects: NewProjectService(projRepo, uow),
		Wbs:      NewWbsService(itemRepo, projRepo, uow),
		Deps:     NewDependencyService(depRepo, itemRepo, uow),
		Schedule: NewScheduleService(projRepo, itemRepo, depRepo),
	}
}

// mustCreateProject creates a project with the given budget and
// returns it along with its three seeded top-level items, keyed by name.
func mustCreateProject(t *testing.T, h *svcHarness, budget int64) (*domain.Project, map[string]*domain.WbsItem) {
	t.Helper()
	ctx := context.Background()

	proj := testutil.NewTestProject("Test Project", testutil.WithBudget(budget))
	require.NoError(t, h.Projects.Create(ctx, proj))

	items, err := h.Wbs.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	byName := make(map[string]*domain.WbsItem, len(items))
	for _, it := range items {
		byName[it.Name] = it
	}
	return proj, byName
}

// mustCreateActivity places an activity with the given dates under the
// given work package.
func mustCreateActivity(t *testing.T, h *svcHarness, wp *domain.WbsItem, name string, start, end time.Time) *domain.WbsItem {
	t.Helper()
	parentID := wp.ID
	created, err := h.Wbs.Create(context.Background(), &domain.WbsItem{
		ProjectID: wp.ProjectID,
		ParentID:  &parentID,
		Name:      name,
		Type:      domain.TypeActivity,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	return created
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func requireRuleCode(t *testing.T, err error, code wbs.RuleCode) {
	t.Helper()
	require.Error(t, err)
	re, ok := wbs.AsRuleError(err)
	require.True(t, ok, "expected RuleError, got %v", err)
	require.Equal(t, code, re.Code)
}
