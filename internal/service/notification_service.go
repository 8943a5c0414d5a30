package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/pkg/email"
	"github.com/bmarinov/gym_go_server/internal/pkg/i18n"
	"github.com/bmarinov/gym_go_server/internal/pkg/ws"
	"github.com/bmarinov/gym_go_server/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService scans for expired or depleted memberships and maintains
// the resulting alerts. A membership gets at most one live notification no
// matter how many scans run.
type NotificationService struct {
	notifRepo *repository.NotificationRepository
	mmRepo    *repository.MemberMembershipRepository
	hub       *ws.Hub
	mailer    *email.Service
	emailCfg  *config.EmailConfig
}

func NewNotificationService(
	notifRepo *repository.NotificationRepository,
	mmRepo *repository.MemberMembershipRepository,
	hub *ws.Hub,
	mailer *email.Service,
	emailCfg *config.EmailConfig,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		mmRepo:    mmRepo,
		hub:       hub,
		mailer:    mailer,
		emailCfg:  emailCfg,
	}
}

// CheckExpiredMembershipsAndCreateNotifications runs one expiration pass:
// find every membership past its end date or out of sessions, create a
// notification for each one that has none yet, then push the new alerts over
// the websocket hub and the optional email digest. Idempotent: a second pass
// over the same state creates nothing.
func (s *NotificationService) CheckExpiredMembershipsAndCreateNotifications() (*dto.ExpiryCheckResult, error) {
	today := model.StartOfDay(time.Now())

	expired, err := s.mmRepo.FindExpired(today)
	if err != nil {
		return nil, err
	}

	result := &dto.ExpiryCheckResult{TotalExpired: len(expired)}
	var messages []string

	for _, mm := range expired {
		if mm.Notification != nil {
			continue
		}
		if mm.Member == nil {
			// Member row gone, nothing to name the alert after
			continue
		}

		// Second guard for drivers without the partial unique index
		exists, err := s.notifRepo.ExistsForMembership(mm.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		msg := s.buildMessage(mm)
		n := &model.Notification{
			Message:            msg,
			MemberMembershipID: mm.ID,
		}
		created, err := s.notifRepo.CreateIfAbsent(n)
		if err != nil {
			return nil, err
		}
		if !created {
			continue
		}

		result.NotificationsCreated++
		messages = append(messages, msg)

		if err := s.hub.Broadcast(&ws.Message{Type: ws.EventNotificationCreated, Data: n}); err != nil {
			log.Printf("Failed to broadcast notification: %v", err)
		}
	}

	if err := s.hub.Broadcast(&ws.Message{Type: ws.EventExpiryCheckDone, Data: result}); err != nil {
		log.Printf("Failed to broadcast check result: %v", err)
	}

	if s.mailer != nil && s.mailer.Enabled() && len(messages) > 0 {
		if err := s.mailer.SendExpiryDigest(s.emailCfg.Digest, messages); err != nil {
			log.Printf("Failed to send expiry digest: %v", err)
		}
	}

	return result, nil
}

// buildMessage picks the alert text. A depleted session balance wins over a
// past end date when both hold.
func (s *NotificationService) buildMessage(mm *model.MemberMembership) string {
	depleted := mm.TotalTrainings != nil &&
		mm.RemainingTrainings != nil && *mm.RemainingTrainings == 0
	if depleted {
		return i18n.T("notification.trainings_depleted", mm.Member.FirstName, mm.Member.LastName)
	}
	return i18n.T("notification.membership_expired", mm.Member.FirstName, mm.Member.LastName)
}

func (s *NotificationService) FindAll() ([]*model.Notification, error) {
	return s.notifRepo.FindAll()
}

func (s *NotificationService) FindUnread() ([]*model.Notification, error) {
	return s.notifRepo.FindUnread()
}

func (s *NotificationService) FindByMemberMembership(memberMembershipID int64) ([]*model.Notification, error) {
	return s.notifRepo.FindByMemberMembership(memberMembershipID)
}

func (s *NotificationService) Get(id int64) (*model.Notification, error) {
	n, err := s.notifRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) MarkAsRead(id int64) (*dto.UpdateResult, error) {
	rows, err := s.notifRepo.MarkAsRead(id)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotificationNotFound
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

// MarkAllAsRead marks unread notifications as read, optionally scoped to one
// member membership.
func (s *NotificationService) MarkAllAsRead(memberMembershipID *int64) (*dto.UpdateResult, error) {
	rows, err := s.notifRepo.MarkAllAsRead(memberMembershipID)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *NotificationService) SoftDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.notifRepo.SoftDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *NotificationService) Restore(id int64) (*dto.UpdateResult, error) {
	rows, err := s.notifRepo.Restore(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}

func (s *NotificationService) HardDelete(id int64) (*dto.UpdateResult, error) {
	rows, err := s.notifRepo.HardDelete(id)
	if err != nil {
		return nil, err
	}
	return &dto.UpdateResult{RowsAffected: rows}, nil
}
