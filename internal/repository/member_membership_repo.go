package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/internal/model"
)

type MemberMembershipRepository struct {
	db *gorm.DB
}

func NewMemberMembershipRepository(db *gorm.DB) *MemberMembershipRepository {
	return &MemberMembershipRepository{db: db}
}

func (r *MemberMembershipRepository) Create(mm *model.MemberMembership) error {
	return r.db.Create(mm).Error
}

// FindAll returns non-deleted memberships with member and plan embedded.
func (r *MemberMembershipRepository) FindAll() ([]*model.MemberMembership, error) {
	var items []*model.MemberMembership
	err := r.db.Preload("Member").Preload("Membership").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *MemberMembershipRepository) FindAllIncludingDeleted() ([]*model.MemberMembership, error) {
	var items []*model.MemberMembership
	err := r.db.Unscoped().Preload("Member").Preload("Membership").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *MemberMembershipRepository) FindByID(id int64) (*model.MemberMembership, error) {
	var mm model.MemberMembership
	err := r.db.Where("id = ?", id).First(&mm).Error
	if err != nil {
		return nil, err
	}
	return &mm, nil
}

func (r *MemberMembershipRepository) FindByMember(memberID int64) ([]*model.MemberMembership, error) {
	var items []*model.MemberMembership
	err := r.db.Where("member_id = ?", memberID).
		Preload("Membership").Order("start_date DESC").Find(&items).Error
	return items, err
}

func (r *MemberMembershipRepository) UpdateFields(id int64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.MemberMembership{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *MemberMembershipRepository) SoftDelete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&model.MemberMembership{})
	return res.RowsAffected, res.Error
}

func (r *MemberMembershipRepository) Restore(id int64) (int64, error) {
	res := r.db.Unscoped().Model(&model.MemberMembership{}).Where("id = ?", id).Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func (r *MemberMembershipRepository) HardDelete(id int64) (int64, error) {
	res := r.db.Unscoped().Where("id = ?", id).Delete(&model.MemberMembership{})
	return res.RowsAffected, res.Error
}

// DecrementRemaining takes one session off the balance as a single
// conditional update, so two racing calls can never both consume the last
// session. Returns the number of rows changed: 0 means the balance was
// already empty.
func (r *MemberMembershipRepository) DecrementRemaining(id int64) (int64, error) {
	res := r.db.Model(&model.MemberMembership{}).
		Where("id = ? AND remaining_trainings > 0", id).
		Update("remaining_trainings", gorm.Expr("remaining_trainings - 1"))
	return res.RowsAffected, res.Error
}

// IncrementRemaining gives one session back, capped at the total. Returns 0
// rows when the balance is already full.
func (r *MemberMembershipRepository) IncrementRemaining(id int64) (int64, error) {
	res := r.db.Model(&model.MemberMembership{}).
		Where("id = ? AND total_trainings IS NOT NULL AND remaining_trainings < total_trainings", id).
		Update("remaining_trainings", gorm.Expr("remaining_trainings + 1"))
	return res.RowsAffected, res.Error
}

// FindLatestActive returns, per requested member, the currently active
// membership with the newest start date. Memberships sharing that exact
// start date are all returned. An open-ended membership (null end date)
// counts as active.
func (r *MemberMembershipRepository) FindLatestActive(memberIDs []int64, today time.Time) ([]*model.MemberMembership, error) {
	if len(memberIDs) == 0 {
		return []*model.MemberMembership{}, nil
	}

	var items []*model.MemberMembership
	err := r.db.Raw(`
		SELECT mm.* FROM member_memberships mm
		WHERE mm.deleted_at IS NULL
		  AND mm.member_id IN ?
		  AND mm.start_date <= ?
		  AND (mm.end_date IS NULL OR mm.end_date >= ?)
		  AND mm.start_date = (
			SELECT MAX(m2.start_date) FROM member_memberships m2
			WHERE m2.member_id = mm.member_id
			  AND m2.deleted_at IS NULL
			  AND m2.start_date <= ?
			  AND (m2.end_date IS NULL OR m2.end_date >= ?)
		  )
		ORDER BY mm.member_id ASC, mm.id ASC`,
		memberIDs, today, today, today, today).Scan(&items).Error
	return items, err
}

// FindExpiringInMonth returns non-deleted memberships whose end date falls
// inside the given calendar month, member embedded, soonest first.
func (r *MemberMembershipRepository) FindExpiringInMonth(year int, month time.Month) ([]*model.MemberMembership, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var items []*model.MemberMembership
	err := r.db.Where("end_date >= ? AND end_date < ?", first, next).
		Preload("Member").Order("end_date ASC").Find(&items).Error
	return items, err
}

// FindExpired returns non-deleted memberships that are past their end date
// or have a depleted training balance, with member and any live notification
// embedded. Used by the notification scan.
func (r *MemberMembershipRepository) FindExpired(today time.Time) ([]*model.MemberMembership, error) {
	var items []*model.MemberMembership
	err := r.db.Where("end_date < ? OR (remaining_trainings = 0 AND total_trainings IS NOT NULL)", today).
		Preload("Member").Preload("Notification").Order("id ASC").Find(&items).Error
	return items, err
}
