package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification is a user-facing alert for an expired or depleted membership.
// At most one non-deleted notification may exist per member membership; the
// partial unique index backing that lives in the database package.
type Notification struct {
	ID                 int64          `gorm:"primaryKey" json:"id"`
	Message            string         `gorm:"type:text;not null" json:"message"`
	IsRead             bool           `gorm:"not null;default:false" json:"isRead"`
	MemberMembershipID int64          `gorm:"column:member_membership_id;not null;index" json:"memberMembershipId"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
