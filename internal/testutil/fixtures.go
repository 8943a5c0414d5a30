package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
)

// TestMember creates a member row.
func TestMember(t *testing.T, db *gorm.DB, opts ...func(*model.Member)) *model.Member {
	t.Helper()

	member := &model.Member{
		FirstName: "Ivan",
		LastName:  fmt.Sprintf("Petrov%d", time.Now().UnixNano()%10000),
	}

	for _, opt := range opts {
		opt(member)
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return member
}

// WithName sets the member's name.
func WithName(first, last string) func(*model.Member) {
	return func(m *model.Member) {
		m.FirstName = first
		m.LastName = last
	}
}

// TestTrainingPlan creates a training-based membership plan.
func TestTrainingPlan(t *testing.T, db *gorm.DB, trainings int, opts ...func(*model.Membership)) *model.Membership {
	t.Helper()

	plan := &model.Membership{
		Name:      fmt.Sprintf("Plan %d trainings", trainings),
		Days:      30,
		Type:      model.PlanTypeTraining,
		Trainings: &trainings,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// TestTimePlan creates a time-based membership plan.
func TestTimePlan(t *testing.T, db *gorm.DB, opts ...func(*model.Membership)) *model.Membership {
	t.Helper()

	plan := &model.Membership{
		Name: "Monthly",
		Days: 30,
		Type: model.PlanTypeTime,
	}

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithDays sets the plan duration.
func WithDays(days int) func(*model.Membership) {
	return func(p *model.Membership) {
		p.Days = days
	}
}

// TestMemberMembership creates a purchase row directly, bypassing the
// snapshot logic in the ledger service.
func TestMemberMembership(t *testing.T, db *gorm.DB, memberID, membershipID int64, opts ...func(*model.MemberMembership)) *model.MemberMembership {
	t.Helper()

	start := model.StartOfDay(time.Now())
	end := start.AddDate(0, 1, 0)
	mm := &model.MemberMembership{
		MemberID:     memberID,
		MembershipID: membershipID,
		StartDate:    start,
		EndDate:      &end,
	}

	for _, opt := range opts {
		opt(mm)
	}

	if err := db.Create(mm).Error; err != nil {
		t.Fatalf("Failed to create test member membership: %v", err)
	}

	return mm
}

// WithDates sets the purchase date range. A nil end makes it open-ended.
func WithDates(start time.Time, end *time.Time) func(*model.MemberMembership) {
	return func(mm *model.MemberMembership) {
		mm.StartDate = start
		mm.EndDate = end
	}
}

// WithTrainings sets the session counters.
func WithTrainings(total, remaining int) func(*model.MemberMembership) {
	return func(mm *model.MemberMembership) {
		mm.TotalTrainings = &total
		mm.RemainingTrainings = &remaining
	}
}
