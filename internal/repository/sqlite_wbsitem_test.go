package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/testutil"
)

// wbsTestSetup creates a project and returns repos ready for use.
func wbsTestSetup(t *testing.T) (*sql.DB, *SQLiteWbsItemRepo, *domain.Project) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	projRepo := NewSQLiteProjectRepo(db)
	wbsRepo := NewSQLiteWbsItemRepo(db)

	proj := testutil.NewTestProject("WbsTest")
	require.NoError(t, projRepo.Create(ctx, proj))
	return db, wbsRepo, proj
}

func TestWbsItemRepo_CreateAndGet(t *testing.T) {
	_, repo, proj := wbsTestSetup(t)
	ctx := context.Background()

	item := testutil.NewTestWbsItem(proj.ID, "Procurement & Construction", domain.TypeSummary,
		testutil.WithItemBudget(85000),
		testutil.WithCode("2"),
	)
	item.Description = "Main construction scope"
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Procurement & Construction", got.Name)
	assert.Equal(t, "2", got.Code)
	assert.Equal(t, domain.TypeSummary, got.Type)
	assert.True(t, got.BudgetedCost.Equal(decimal.NewFromInt(85000)))
	assert.True(t, got.IsTopLevel)
	assert.Nil(t, got.ParentID)
	assert.Nil(t, got.StartDate)
}

func TestWbsItemRepo_ActivityDates(t *testing.T) {
	_, repo, proj := wbsTestSetup(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	act := testutil.NewTestWbsItem(proj.ID, "Pour foundation", domain.TypeActivity,
		testutil.WithDates(start, end),
		testutil.WithCode("1.1.1"),
	)
	require.NoError(t, repo.Create(ctx, act))

	got, err := repo.GetByID(ctx, act.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.True(t, got.StartDate.Equal(start))
	assert.True(t, got.EndDate.Equal(end))
	require.NotNil(t, got.Duration)
	assert.Equal(t, 5, *got.Duration)
}

func TestWbsItemRepo_ListChildrenAndTopLevel(t *testing.T) {
	_, repo, proj := wbsTestSetup(t)
	ctx := context.Background()

	root := testutil.NewTestWbsItem(proj.ID, "Engineering", domain.TypeSummary, testutil.WithCode("1"))
	require.NoError(t, repo.Create(ctx, root))

	wp := testutil.NewTestWbsItem(proj.ID, "Design package", domain.TypeWorkPackage,
		testutil.WithParent(root), testutil.WithCode("1.1"))
	require.NoError(t, repo.Create(ctx, wp))

	act := testutil.NewTestWbsItem(proj.ID, "Draft drawings", domain.TypeActivity,
		testutil.WithParent(wp), testutil.WithCode("1.1.1"))
	require.NoError(t, repo.Create(ctx, act))

	top, err := repo.ListTopLevel(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, root.ID, top[0].ID)

	children, err := repo.ListChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, wp.ID, children[0].ID)

	all, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Ordered by code.
	assert.Equal(t, []string{"1", "1.1", "1.1.1"}, []string{all[0].Code, all[1].Code, all[2].Code})
}

func TestWbsItemRepo_Update(t *testing.T) {
	_, repo, proj := wbsTestSetup(t)
	ctx := context.Background()

	item := testutil.NewTestWbsItem(proj.ID, "Commissioning", domain.TypeSummary,
		testutil.WithItemBudget(10000))
	require.NoError(t, repo.Create(ctx, item))

	item.BudgetedCost = decimal.NewFromInt(12000)
	item.PercentComplete = decimal.NewFromInt(40)
	require.NoError(t, repo.Update(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.BudgetedCost.Equal(decimal.NewFromInt(12000)))
	assert.True(t, got.PercentComplete.Equal(decimal.NewFromInt(40)))
}

func TestWbsItemRepo_CodeUniquePerProject(t *testing.T) {
	_, repo, proj := wbsTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWbsItem(proj.ID, "A", domain.TypeSummary, testutil.WithCode("1"))))
	err := repo.Create(ctx, testutil.NewTestWbsItem(proj.ID, "B", domain.TypeSummary, testutil.WithCode("1")))
	assert.Error(t, err, "duplicate code within one project should be rejected")
}
