package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/repository"
	"github.com/bmarinov/gym_go_server/internal/testutil"
)

func setupLedgerService(t *testing.T) (*LedgerService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mmRepo := repository.NewMemberMembershipRepository(db)
	planRepo := repository.NewMembershipRepository(db)
	logRepo := repository.NewTrainingLogRepository(db)

	svc := NewLedgerService(mmRepo, planRepo, logRepo)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, cleanup
}

func TestLedgerService_Create_SnapshotsPlanTrainings(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 10)

	mm, err := svc.Create(&dto.CreateMemberMembershipRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2026-01-01",
		EndDate:      "2026-02-01",
	})
	require.NoError(t, err)
	require.NotNil(t, mm.TotalTrainings)
	require.NotNil(t, mm.RemainingTrainings)
	assert.Equal(t, 10, *mm.TotalTrainings)
	assert.Equal(t, 10, *mm.RemainingTrainings)
}

func TestLedgerService_Create_SnapshotSurvivesPlanEdit(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 10)

	mm, err := svc.Create(&dto.CreateMemberMembershipRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2026-01-01",
	})
	require.NoError(t, err)

	// Changing the plan afterwards must not touch the purchase
	err = db.Model(&model.Membership{}).Where("id = ?", plan.ID).Update("trainings", 20).Error
	require.NoError(t, err)

	reloaded, err := svc.Get(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, *reloaded.TotalTrainings)
	assert.Equal(t, 10, *reloaded.RemainingTrainings)
}

func TestLedgerService_Create_TimePlanHasNoCounters(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	mm, err := svc.Create(&dto.CreateMemberMembershipRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "2026-01-01",
		EndDate:      "2026-02-01",
	})
	require.NoError(t, err)
	assert.Nil(t, mm.TotalTrainings)
	assert.Nil(t, mm.RemainingTrainings)
}

func TestLedgerService_Create_InvalidDate(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	_, err := svc.Create(&dto.CreateMemberMembershipRequest{
		MemberID:     member.ID,
		MembershipID: plan.ID,
		StartDate:    "01/01/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestLedgerService_SubtractThenAdd_RoundTrip(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 2)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithTrainings(2, 2))

	subResult, err := svc.SubtractTraining(mm.ID)
	require.NoError(t, err)
	require.True(t, subResult.Success)
	assert.Equal(t, 1, *subResult.RemainingTrainings)
	assert.Equal(t, 2, *subResult.TotalTrainings)

	addResult, err := svc.AddTraining(mm.ID)
	require.NoError(t, err)
	require.True(t, addResult.Success)
	assert.Equal(t, 2, *addResult.RemainingTrainings)

	// Both movements leave an audit entry, newest first
	logs, err := svc.GetTrainingLogs(mm.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, model.TrainingActionAdd, logs[0].Action)
	assert.Equal(t, model.TrainingActionSubtract, logs[1].Action)
}

func TestLedgerService_Subtract_ZeroBalance(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 5)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithTrainings(5, 0))

	result, err := svc.SubtractTraining(mm.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "No trainings remaining", result.Error)

	// A refused subtract leaves no audit entry
	logs, err := svc.GetTrainingLogs(mm.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLedgerService_Add_FullBalance(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTrainingPlan(t, db, 5)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithTrainings(5, 5))

	result, err := svc.AddTraining(mm.ID)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Cannot exceed total trainings", result.Error)

	logs, err := svc.GetTrainingLogs(mm.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestLedgerService_Subtract_UntrackedMembership(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID)

	result, err := svc.SubtractTraining(mm.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Trainings not tracked for this membership", result.Message)

	addResult, err := svc.AddTraining(mm.ID)
	require.NoError(t, err)
	assert.False(t, addResult.Success)
	assert.Equal(t, "Trainings not tracked for this membership", addResult.Error)
}

func TestLedgerService_Subtract_MissingMembership(t *testing.T) {
	svc, _, cleanup := setupLedgerService(t)
	defer cleanup()

	result, err := svc.SubtractTraining(9999)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Member membership not found", result.Error)
}

func TestLedgerService_LatestActive_PicksNewestStart(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	today := model.StartOfDay(time.Now())
	oldEnd := today.AddDate(0, 2, 0)
	newEnd := today.AddDate(0, 3, 0)
	testutil.TestMemberMembership(t, db, member.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -2, 0), &oldEnd))
	newer := testutil.TestMemberMembership(t, db, member.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), &newEnd))

	items, err := svc.GetLatestActiveMemberships([]int64{member.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, newer.ID, items[0].ID)
}

func TestLedgerService_LatestActive_OmitsInactiveMembers(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	active := testutil.TestMember(t, db)
	lapsed := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	today := model.StartOfDay(time.Now())
	pastEnd := today.AddDate(0, 0, -5)
	testutil.TestMemberMembership(t, db, lapsed.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -2, 0), &pastEnd))

	// Open-ended membership counts as active
	testutil.TestMemberMembership(t, db, active.ID, plan.ID,
		testutil.WithDates(today.AddDate(0, -1, 0), nil))

	items, err := svc.GetLatestActiveMemberships([]int64{active.ID, lapsed.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, active.ID, items[0].MemberID)
}

func TestLedgerService_LatestActive_TieReturnsBoth(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	today := model.StartOfDay(time.Now())
	start := today.AddDate(0, -1, 0)
	end := today.AddDate(0, 1, 0)
	first := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &end))
	second := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &end))

	items, err := svc.GetLatestActiveMemberships([]int64{member.ID})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestLedgerService_LatestActive_EmptyInput(t *testing.T) {
	svc, _, cleanup := setupLedgerService(t)
	defer cleanup()

	items, err := svc.GetLatestActiveMemberships(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLedgerService_ExpirationsByMonth(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)

	inMonth := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	target := testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &inMonth))
	testutil.TestMemberMembership(t, db, member.ID, plan.ID, testutil.WithDates(start, &nextMonth))

	items, err := svc.GetExpirationsByMonth(2026, 8)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, target.ID, items[0].ID)
	require.NotNil(t, items[0].Member)
	assert.Equal(t, member.ID, items[0].Member.ID)
}

func TestLedgerService_ExpirationsByMonth_InvalidMonth(t *testing.T) {
	svc, _, cleanup := setupLedgerService(t)
	defer cleanup()

	_, err := svc.GetExpirationsByMonth(2026, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = svc.GetExpirationsByMonth(2026, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestLedgerService_Update_ClearsEndDate(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID)

	empty := ""
	updated, err := svc.Update(mm.ID, &dto.UpdateMemberMembershipRequest{EndDate: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.EndDate)
}

func TestLedgerService_SoftDeleteAndRestore(t *testing.T) {
	svc, db, cleanup := setupLedgerService(t)
	defer cleanup()

	member := testutil.TestMember(t, db)
	plan := testutil.TestTimePlan(t, db)
	mm := testutil.TestMemberMembership(t, db, member.ID, plan.ID)

	result, err := svc.SoftDelete(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RowsAffected)

	_, err = svc.Get(mm.ID)
	assert.ErrorIs(t, err, ErrMemberMembershipNotFound)

	restored, err := svc.Restore(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), restored.RowsAffected)

	back, err := svc.Get(mm.ID)
	require.NoError(t, err)
	assert.Equal(t, mm.ID, back.ID)
}
