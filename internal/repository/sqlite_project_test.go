package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlefebvre/girder/internal/domain"
	"github.com/mlefebvre/girder/internal/testutil"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	proj := testutil.NewTestProject("Harbor Bridge Retrofit",
		testutil.WithBudget(2500000),
		testutil.WithProjectDates(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), end),
	)
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.Name, got.Name)
	assert.True(t, got.Budget.Equal(decimal.NewFromInt(2500000)))
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, domain.ProjectActive, got.Status)
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
}

func TestProjectRepo_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Alpha")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Beta")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Depot")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Budget = decimal.NewFromInt(750000)
	proj.Status = domain.ProjectOnHold
	require.NoError(t, repo.Update(ctx, proj))

	got, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.True(t, got.Budget.Equal(decimal.NewFromInt(750000)))
	assert.Equal(t, domain.ProjectOnHold, got.Status)
}

func TestProjectRepo_DeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	projRepo := NewSQLiteProjectRepo(db)
	wbsRepo := NewSQLiteWbsItemRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, projRepo.Create(ctx, proj))
	item := testutil.NewTestWbsItem(proj.ID, "General", domain.TypeSummary)
	require.NoError(t, wbsRepo.Create(ctx, item))

	require.NoError(t, projRepo.Delete(ctx, proj.ID))

	_, err := wbsRepo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound, "wbs items should cascade with project deletion")
}
