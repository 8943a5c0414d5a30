package repository

import (
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
)

type TrainingLogRepository struct {
	db *gorm.DB
}

func NewTrainingLogRepository(db *gorm.DB) *TrainingLogRepository {
	return &TrainingLogRepository{db: db}
}

func (r *TrainingLogRepository) Create(log *model.TrainingLog) error {
	return r.db.Create(log).Error
}

// FindByMemberMembership returns the audit trail, most recent first.
func (r *TrainingLogRepository) FindByMemberMembership(memberMembershipID int64) ([]*model.TrainingLog, error) {
	var logs []*model.TrainingLog
	err := r.db.Where("member_membership_id = ?", memberMembershipID).
		Order("used_at DESC, id DESC").Find(&logs).Error
	return logs, err
}

func (r *TrainingLogRepository) CountByMemberMembership(memberMembershipID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.TrainingLog{}).
		Where("member_membership_id = ?", memberMembershipID).Count(&count).Error
	return count, err
}
