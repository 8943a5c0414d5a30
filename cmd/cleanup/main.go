package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/database"
	"github.com/bmarinov/gym_go_server/internal/model"
)

var (
	dryRun        = flag.Bool("dry-run", true, "Dry run mode, don't actually delete anything")
	retentionDays = flag.Int("retention-days", 90, "Days to keep soft-deleted records")
	backupDays    = flag.Int("backup-days", 30, "Days to keep local backup snapshots")
	purgeRecords  = flag.Bool("purge-records", true, "Purge old soft-deleted records")
	purgeBackups  = flag.Bool("purge-backups", true, "Purge old local backup snapshots")
)

func main() {
	flag.Parse()

	log.Println("Starting cleanup task...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	purgedRows := int64(0)
	deletedFiles := 0
	freedSize := int64(0)

	if *purgeRecords {
		log.Printf("Purging soft-deleted records older than %d days...", *retentionDays)
		purgedRows = purgeSoftDeleted(db, *retentionDays, *dryRun)
	}

	if *purgeBackups {
		log.Printf("Purging local backups older than %d days...", *backupDays)
		freedSize, deletedFiles = purgeOldBackups(cfg.Backup.LocalDir, *backupDays, *dryRun)
	}

	log.Println(strings.Repeat("=", 60))
	log.Println("Cleanup Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Purged records: %d", purgedRows)
	log.Printf("Deleted backups: %d", deletedFiles)
	log.Printf("Freed space: %s", formatSize(freedSize))
	if *dryRun {
		log.Println("DRY RUN MODE - nothing was actually deleted")
		log.Println("Run with -dry-run=false to apply")
	} else {
		log.Println("Cleanup completed")
	}
}

// purgeSoftDeleted permanently removes rows whose soft delete happened before
// the retention cutoff. Notifications go first so no row ever points at a
// purged membership.
func purgeSoftDeleted(db *gorm.DB, retentionDays int, dryRun bool) int64 {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	targets := []struct {
		name  string
		model interface{}
	}{
		{"notifications", &model.Notification{}},
		{"member_memberships", &model.MemberMembership{}},
		{"memberships", &model.Membership{}},
		{"members", &model.Member{}},
	}

	var total int64
	for _, t := range targets {
		q := db.Unscoped().Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff)

		if dryRun {
			var count int64
			if err := q.Model(t.model).Count(&count).Error; err != nil {
				log.Printf("  %s: count failed: %v", t.name, err)
				continue
			}
			log.Printf("  %s: %d rows would be purged", t.name, count)
			total += count
			continue
		}

		res := q.Delete(t.model)
		if res.Error != nil {
			log.Printf("  %s: purge failed: %v", t.name, res.Error)
			continue
		}
		log.Printf("  %s: %d rows purged", t.name, res.RowsAffected)
		total += res.RowsAffected
	}
	return total
}

// purgeOldBackups removes stale gym-backup-*.sqlite snapshots from the local
// backup directory.
func purgeOldBackups(backupDir string, keepDays int, dryRun bool) (int64, int) {
	if backupDir == "" {
		return 0, 0
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read backup dir: %v", err)
		}
		return 0, 0
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	var freed int64
	var count int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "gym-backup-") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(backupDir, entry.Name())
		log.Printf("  - %s (%s, %s old)",
			entry.Name(),
			formatSize(info.Size()),
			time.Since(info.ModTime()).Round(time.Hour))

		if !dryRun {
			if err := os.Remove(path); err != nil {
				log.Printf("    failed to delete: %v", err)
				continue
			}
		}
		freed += info.Size()
		count++
	}

	return freed, count
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
