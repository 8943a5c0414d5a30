package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/testutil"
)

func setupMemberMembershipRepo(t *testing.T) (*MemberMembershipRepository, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := NewMemberMembershipRepository(db)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return repo, db, cleanup
}

func TestMemberMembershipRepository_DecrementRemaining_StopsAtZero(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 2)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithTrainings(2, 2))

	for i := 0; i < 2; i++ {
		rows, err := repo.DecrementRemaining(mm.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	}

	// Third decrement hits an empty balance and changes nothing
	rows, err := repo.DecrementRemaining(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	reloaded, err := repo.FindByID(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, *reloaded.RemainingTrainings)
}

func TestMemberMembershipRepository_IncrementRemaining_CapsAtTotal(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 3)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithTrainings(3, 2))

	rows, err := repo.IncrementRemaining(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.IncrementRemaining(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	reloaded, err := repo.FindByID(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, *reloaded.RemainingTrainings)
}

func TestMemberMembershipRepository_IncrementRemaining_NullTotal(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID)

	rows, err := repo.IncrementRemaining(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestMemberMembershipRepository_FindLatestActive_IgnoresSoftDeleted(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	today := model.StartOfDay(time.Now())
	end := today.AddDate(0, 1, 0)
	older := testutil.TestMemberMembership(t, db, member.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -2, 0), &end))
	newer := testutil.TestMemberMembership(t, db, member.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &end))

	_, err := repo.SoftDelete(newer.ID)
	require.NoError(t, err)

	items, err := repo.FindLatestActive([]int64{member.ID}, today)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, older.ID, items[0].ID)
}

func TestMemberMembershipRepository_FindLatestActive_FutureStartExcluded(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	today := model.StartOfDay(time.Now())
	end := today.AddDate(0, 2, 0)
	testutil.TestMemberMembership(t, db, member.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, 0, 7), &end))

	items, err := repo.FindLatestActive([]int64{member.ID}, today)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemberMembershipRepository_FindExpired(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	timePlan := testutil.TestTimePlan(t, db)
	trainingPlan := testutil.TestTrainingPlan(t, db, 8)

	today := model.StartOfDay(time.Now())
	pastEnd := today.AddDate(0, 0, -1)
	futureEnd := today.AddDate(0, 1, 0)

	dateExpired := testutil.TestMemberMembership(t, db, member.ID, timePlan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &pastEnd))
	depleted := testutil.TestMemberMembership(t, db, member.ID, trainingPlan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &futureEnd),
		testutil.WithTrainings(8, 0))
	// Active on both axes
	testutil.TestMemberMembership(t, db, member.ID, trainingPlan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &futureEnd),
		testutil.WithTrainings(8, 5))
	// Time-based with a future end has no balance to deplete
	testutil.TestMemberMembership(t, db, member.ID, timePlan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &futureEnd))

	items, err := repo.FindExpired(today)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, dateExpired.ID, items[0].ID)
	assert.Equal(t, depleted.ID, items[1].ID)
	require.NotNil(t, items[0].Member)
	assert.Equal(t, member.ID, items[0].Member.ID)
}

func TestMemberMembershipRepository_FindExpiringInMonth_Boundaries(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	firstOfNext := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	a := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &firstOfMonth))
	b := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &lastOfMonth))
	testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &firstOfNext))

	items, err := repo.FindExpiringInMonth(2026, time.August)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
}

func TestMemberMembershipRepository_RestoreBringsRowBack(t *testing.T) {
	repo, db, cleanup := setupMemberMembershipRepo(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID)

	rows, err := repo.SoftDelete(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = repo.FindByID(mm.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.FindAllIncludingDeleted()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	rows, err = repo.Restore(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	found, err := repo.FindByID(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, mm.ID, found.ID)
}
