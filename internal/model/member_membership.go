package model

import (
	"time"

	"gorm.io/gorm"
)

// MemberMembership is one purchase of a plan by a member. TotalTrainings and
// RemainingTrainings are copied from the plan at creation time and are not
// affected by later plan edits. Both are null for time-based plans.
type MemberMembership struct {
	ID                 int64          `gorm:"primaryKey" json:"id"`
	MemberID           int64          `gorm:"column:member_id;not null;index" json:"memberId"`
	MembershipID       int64          `gorm:"column:membership_id;not null;index" json:"membershipId"`
	StartDate          time.Time      `gorm:"column:start_date;not null" json:"startDate"`
	EndDate            *time.Time     `gorm:"column:end_date;index" json:"endDate"`
	TotalTrainings     *int           `gorm:"column:total_trainings" json:"totalTrainings"`
	RemainingTrainings *int           `gorm:"column:remaining_trainings" json:"remainingTrainings"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Member       *Member       `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Membership   *Membership   `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
	Notification *Notification `gorm:"foreignKey:MemberMembershipID" json:"notification,omitempty"`
}

func (MemberMembership) TableName() string {
	return "member_memberships"
}
