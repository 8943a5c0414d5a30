package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/pkg/drive"
	"github.com/bmarinov/gym_go_server/internal/pkg/oss"
	"github.com/bmarinov/gym_go_server/internal/pkg/ws"
)

var (
	ErrBackupUnsupported     = errors.New("backups require the sqlite driver")
	ErrDriveNotConfigured    = errors.New("drive client credentials not configured")
	ErrDriveNotAuthenticated = errors.New("drive authentication required")
)

// BackupService snapshots the sqlite database and ships the snapshot to the
// configured cloud provider. Snapshots are taken with VACUUM INTO, which
// produces a consistent copy without closing the live connection.
type BackupService struct {
	db     *gorm.DB
	cfg    *config.BackupConfig
	driver string

	drive     *drive.Client
	ossClient *oss.Client
	hub       *ws.Hub

	mu            sync.Mutex
	lastBackupAt  time.Time
	lastBackupRef string
}

func NewBackupService(
	db *gorm.DB,
	cfg *config.BackupConfig,
	driver string,
	driveClient *drive.Client,
	ossClient *oss.Client,
	hub *ws.Hub,
) *BackupService {
	return &BackupService{
		db:        db,
		cfg:       cfg,
		driver:    driver,
		drive:     driveClient,
		ossClient: ossClient,
		hub:       hub,
	}
}

// Status reports provider, authentication state and the last completed run.
func (s *BackupService) Status() *dto.BackupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := &dto.BackupStatus{
		Provider:      s.cfg.Provider,
		LastBackupRef: s.lastBackupRef,
	}
	if !s.lastBackupAt.IsZero() {
		status.LastBackupAt = s.lastBackupAt.Format(time.RFC3339)
	}
	switch s.cfg.Provider {
	case "drive":
		status.Authenticated = s.drive != nil && s.drive.IsAuthenticated()
	case "oss":
		status.Authenticated = s.ossClient != nil
	}
	return status
}

// Authenticate starts the Drive OAuth flow and returns the URL the operator
// must open in a browser. Only meaningful for the drive provider.
func (s *BackupService) Authenticate(ctx context.Context) (string, error) {
	if s.drive == nil {
		return "", ErrDriveNotConfigured
	}
	return s.drive.BeginAuth(ctx)
}

// RunBackup snapshots the database into the local backup directory and
// uploads the snapshot when a cloud provider is configured. With no provider
// the local snapshot is the result.
func (s *BackupService) RunBackup(ctx context.Context) (*dto.BackupRunResult, error) {
	if s.driver != "sqlite" {
		return nil, ErrBackupUnsupported
	}

	if err := os.MkdirAll(s.cfg.LocalDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := fmt.Sprintf("gym-backup-%s.sqlite", time.Now().Format("20060102-150405"))
	snapshotPath := filepath.Join(s.cfg.LocalDir, name)

	if err := s.db.Exec("VACUUM INTO ?", snapshotPath).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}

	info, err := os.Stat(snapshotPath)
	if err != nil {
		return nil, err
	}

	ref, err := s.upload(ctx, name, snapshotPath)
	if err != nil {
		return nil, err
	}

	result := &dto.BackupRunResult{
		Provider: s.cfg.Provider,
		Ref:      ref,
		Size:     info.Size(),
	}

	s.mu.Lock()
	s.lastBackupAt = time.Now()
	s.lastBackupRef = ref
	s.mu.Unlock()

	if err := s.hub.Broadcast(&ws.Message{Type: ws.EventBackupDone, Data: result}); err != nil {
		log.Printf("Failed to broadcast backup result: %v", err)
	}

	log.Printf("Backup completed: %s (%d bytes)", ref, info.Size())
	return result, nil
}

func (s *BackupService) upload(ctx context.Context, name, snapshotPath string) (string, error) {
	switch s.cfg.Provider {
	case "drive":
		if s.drive == nil {
			return "", ErrDriveNotConfigured
		}
		if !s.drive.IsAuthenticated() {
			return "", ErrDriveNotAuthenticated
		}
		f, err := os.Open(snapshotPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return s.drive.Upload(ctx, name, f)
	case "oss":
		if s.ossClient == nil {
			return "", errors.New("oss client not configured")
		}
		f, err := os.Open(snapshotPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return s.ossClient.UploadBackup(name, f)
	default:
		return snapshotPath, nil
	}
}
