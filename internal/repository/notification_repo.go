package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bmarinov/gym_go_server/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

// CreateIfAbsent inserts the notification unless the membership already has
// a live one. The partial unique index makes the insert conflict-tolerant on
// sqlite; the return value reports whether a row was actually written.
func (r *NotificationRepository) CreateIfAbsent(n *model.Notification) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExistsForMembership reports whether a live notification exists for the
// membership.
func (r *NotificationRepository) ExistsForMembership(memberMembershipID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("member_membership_id = ?", memberMembershipID).Count(&count).Error
	return count > 0, err
}

func (r *NotificationRepository) FindAll() ([]*model.Notification, error) {
	var items []*model.Notification
	err := r.db.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *NotificationRepository) FindByID(id int64) (*model.Notification, error) {
	var n model.Notification
	err := r.db.Where("id = ?", id).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// FindUnread returns unread, non-deleted notifications, newest first.
func (r *NotificationRepository) FindUnread() ([]*model.Notification, error) {
	var items []*model.Notification
	err := r.db.Where("is_read = ?", false).Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *NotificationRepository) FindByMemberMembership(memberMembershipID int64) ([]*model.Notification, error) {
	var items []*model.Notification
	err := r.db.Where("member_membership_id = ?", memberMembershipID).
		Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *NotificationRepository) MarkAsRead(id int64) (int64, error) {
	res := r.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	return res.RowsAffected, res.Error
}

// MarkAllAsRead marks every unread notification as read, optionally scoped
// to one member membership.
func (r *NotificationRepository) MarkAllAsRead(memberMembershipID *int64) (int64, error) {
	q := r.db.Model(&model.Notification{}).Where("is_read = ?", false)
	if memberMembershipID != nil {
		q = q.Where("member_membership_id = ?", *memberMembershipID)
	}
	res := q.Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) SoftDelete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Restore(id int64) (int64, error) {
	res := r.db.Unscoped().Model(&model.Notification{}).Where("id = ?", id).Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) HardDelete(id int64) (int64, error) {
	res := r.db.Unscoped().Where("id = ?", id).Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}
