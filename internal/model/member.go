package model

import (
	"time"

	"gorm.io/gorm"
)

type Member struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	FirstName   string         `gorm:"size:100;not null" json:"firstName"`
	LastName    string         `gorm:"size:100;not null" json:"lastName"`
	Nickname    *string        `gorm:"size:100" json:"nickname,omitempty"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (Member) TableName() string {
	return "members"
}
