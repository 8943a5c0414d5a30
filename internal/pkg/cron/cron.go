package cron

import (
	"context"
	"log"
	"time"

	"github.com/bmarinov/gym_go_server/internal/service"
)

// Service drives the scheduled work: the daily expiration scan shortly after
// midnight, and optional periodic cloud backups.
type Service struct {
	notificationService *service.NotificationService
	backupService       *service.BackupService
	dailyCheck          bool
	backupInterval      time.Duration
	stopChan            chan struct{}
}

func NewService(
	notificationService *service.NotificationService,
	backupService *service.BackupService,
	dailyCheck bool,
	backupInterval time.Duration,
) *Service {
	return &Service{
		notificationService: notificationService,
		backupService:       backupService,
		dailyCheck:          dailyCheck,
		backupInterval:      backupInterval,
		stopChan:            make(chan struct{}),
	}
}

// Start launches the background loops.
func (s *Service) Start() {
	if s.dailyCheck {
		go s.runDailyExpiryCheck()
	}
	if s.backupService != nil && s.backupInterval > 0 {
		go s.runAutoBackup()
	}
	log.Println("Cron service started (daily expiry check + auto backup)")
}

// Stop stops the background loops.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyExpiryCheck fires the expiration scan just after local midnight,
// then every 24 hours. Expiration compares calendar days, so running right
// after the date changes catches memberships that ended yesterday.
func (s *Service) runDailyExpiryCheck() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 5, 0, 0, now.Location())
	timer := time.NewTimer(next.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.runExpiryCheck()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) runExpiryCheck() {
	log.Println("Starting expiry check...")
	result, err := s.notificationService.CheckExpiredMembershipsAndCreateNotifications()
	if err != nil {
		log.Printf("Expiry check failed: %v", err)
		return
	}
	log.Printf("Expiry check completed: expired=%d, created=%d",
		result.TotalExpired, result.NotificationsCreated)
}

func (s *Service) runAutoBackup() {
	ticker := time.NewTicker(s.backupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if _, err := s.backupService.RunBackup(context.Background()); err != nil {
				log.Printf("Auto backup failed: %v", err)
			}
		}
	}
}

// RunNow triggers the expiry check immediately (startup scan, manual trigger).
func (s *Service) RunNow() error {
	_, err := s.notificationService.CheckExpiredMembershipsAndCreateNotifications()
	return err
}
