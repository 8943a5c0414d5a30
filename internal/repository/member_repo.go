package repository

import (
	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(member *model.Member) error {
	return r.db.Create(member).Error
}

// FindAll returns all members that are not soft deleted.
func (r *MemberRepository) FindAll() ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Order("id ASC").Find(&members).Error
	return members, err
}

// FindAllIncludingDeleted returns every member, soft deleted ones included.
func (r *MemberRepository) FindAllIncludingDeleted() ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Unscoped().Order("id ASC").Find(&members).Error
	return members, err
}

func (r *MemberRepository) FindByID(id int64) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) UpdateFields(id int64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.Member{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

// SoftDelete marks the member as deleted. Rows remain for restore.
func (r *MemberRepository) SoftDelete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&model.Member{})
	return res.RowsAffected, res.Error
}

// Restore clears the deleted marker on a soft-deleted member.
func (r *MemberRepository) Restore(id int64) (int64, error) {
	res := r.db.Unscoped().Model(&model.Member{}).Where("id = ?", id).Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

// HardDelete removes the row permanently.
func (r *MemberRepository) HardDelete(id int64) (int64, error) {
	res := r.db.Unscoped().Where("id = ?", id).Delete(&model.Member{})
	return res.RowsAffected, res.Error
}
