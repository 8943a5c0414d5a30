package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan types. A "time" plan grants a date range only, a "training" plan also
// carries a session count that gets snapshotted onto each purchase.
const (
	PlanTypeTime     = "time"
	PlanTypeTraining = "training"
)

// Membership is a purchasable plan template.
type Membership struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Days        int            `gorm:"not null" json:"days"`
	Type        string         `gorm:"size:20;not null;default:time" json:"type"` // time, training
	Trainings   *int           `json:"trainings"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Membership) TableName() string {
	return "memberships"
}
