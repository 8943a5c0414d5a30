package repository

import (
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(plan *model.Membership) error {
	return r.db.Create(plan).Error
}

func (r *MembershipRepository) FindAll() ([]*model.Membership, error) {
	var plans []*model.Membership
	err := r.db.Order("id ASC").Find(&plans).Error
	return plans, err
}

func (r *MembershipRepository) FindAllIncludingDeleted() ([]*model.Membership, error) {
	var plans []*model.Membership
	err := r.db.Unscoped().Order("id ASC").Find(&plans).Error
	return plans, err
}

func (r *MembershipRepository) FindByID(id int64) (*model.Membership, error) {
	var plan model.Membership
	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *MembershipRepository) UpdateFields(id int64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.Membership{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *MembershipRepository) SoftDelete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&model.Membership{})
	return res.RowsAffected, res.Error
}

func (r *MembershipRepository) Restore(id int64) (int64, error) {
	res := r.db.Unscoped().Model(&model.Membership{}).Where("id = ?", id).Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func (r *MembershipRepository) HardDelete(id int64) (int64, error) {
	res := r.db.Unscoped().Where("id = ?", id).Delete(&model.Membership{})
	return res.RowsAffected, res.Error
}
