package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/repository"
	"github.com/bmarinov/gym_go_server/internal/testutil"
)

func setupMembershipService(t *testing.T) (*MembershipService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	svc := NewMembershipService(repository.NewMembershipRepository(db))

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return svc, db, cleanup
}

func intPtr(n int) *int {
	return &n
}

func TestMembershipService_Create_TrainingPlanNeedsCount(t *testing.T) {
	svc, _, cleanup := setupMembershipService(t)
	defer cleanup()

	_, err := svc.Create(&dto.CreateMembershipRequest{
		Name: "8 trainings",
		Days: 30,
		Type: model.PlanTypeTraining,
	})
	assert.ErrorIs(t, err, ErrPlanTrainingsRequired)

	_, err = svc.Create(&dto.CreateMembershipRequest{
		Name:      "8 trainings",
		Days:      30,
		Type:      model.PlanTypeTraining,
		Trainings: intPtr(0),
	})
	assert.ErrorIs(t, err, ErrPlanTrainingsRequired)

	plan, err := svc.Create(&dto.CreateMembershipRequest{
		Name:      "8 trainings",
		Days:      30,
		Type:      model.PlanTypeTraining,
		Trainings: intPtr(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, *plan.Trainings)
}

func TestMembershipService_Create_TimePlanRejectsCount(t *testing.T) {
	svc, _, cleanup := setupMembershipService(t)
	defer cleanup()

	_, err := svc.Create(&dto.CreateMembershipRequest{
		Name:      "Monthly",
		Days:      30,
		Type:      model.PlanTypeTime,
		Trainings: intPtr(8),
	})
	assert.ErrorIs(t, err, ErrPlanTrainingsNotAllowed)
}

func TestMembershipService_Update_SwitchToTimeDropsCount(t *testing.T) {
	svc, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestTrainingPlan(t, db, 8)

	timeType := model.PlanTypeTime
	updated, err := svc.Update(plan.ID, &dto.UpdateMembershipRequest{Type: &timeType})
	require.NoError(t, err)
	assert.Equal(t, model.PlanTypeTime, updated.Type)
	assert.Nil(t, updated.Trainings)
}

func TestMembershipService_Update_SwitchToTrainingNeedsCount(t *testing.T) {
	svc, db, cleanup := setupMembershipService(t)
	defer cleanup()

	plan := testutil.TestTimePlan(t, db)

	trainingType := model.PlanTypeTraining
	_, err := svc.Update(plan.ID, &dto.UpdateMembershipRequest{Type: &trainingType})
	assert.ErrorIs(t, err, ErrPlanTrainingsRequired)

	updated, err := svc.Update(plan.ID, &dto.UpdateMembershipRequest{
		Type:      &trainingType,
		Trainings: intPtr(12),
	})
	require.NoError(t, err)
	assert.Equal(t, model.PlanTypeTraining, updated.Type)
	assert.Equal(t, 12, *updated.Trainings)
}

func TestMembershipService_Update_NotFound(t *testing.T) {
	svc, _, cleanup := setupMembershipService(t)
	defer cleanup()

	name := "ghost"
	_, err := svc.Update(9999, &dto.UpdateMembershipRequest{Name: &name})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
