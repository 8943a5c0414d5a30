package model

import (
	"time"
)

// Training log actions.
const (
	TrainingActionSubtract = "subtract"
	TrainingActionAdd      = "add"
)

// TrainingLog is an append-only audit entry, written on every change to a
// membership's remaining session balance.
type TrainingLog struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	MemberMembershipID int64     `gorm:"column:member_membership_id;not null;index" json:"memberMembershipId"`
	UsedAt             time.Time `gorm:"column:used_at;not null" json:"usedAt"`
	Action             string    `gorm:"size:20;not null;default:subtract" json:"action"` // subtract, add
	CreatedAt          time.Time `json:"createdAt"`
}

func (TrainingLog) TableName() string {
	return "training_logs"
}
