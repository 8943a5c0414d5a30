package main

import (
	"fmt"
	"log"
	"time"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/api"
	"github.com/bmarinov/gym_go_server/internal/api/handler"
	"github.com/bmarinov/gym_go_server/internal/database"
	"github.com/bmarinov/gym_go_server/internal/pkg/cron"
	"github.com/bmarinov/gym_go_server/internal/pkg/drive"
	"github.com/bmarinov/gym_go_server/internal/pkg/email"
	"github.com/bmarinov/gym_go_server/internal/pkg/i18n"
	"github.com/bmarinov/gym_go_server/internal/pkg/oss"
	"github.com/bmarinov/gym_go_server/internal/pkg/tokenstore"
	"github.com/bmarinov/gym_go_server/internal/pkg/ws"
	"github.com/bmarinov/gym_go_server/internal/repository"
	"github.com/bmarinov/gym_go_server/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	i18n.SetLocale(cfg.Locale)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	wsHub := ws.NewHub()

	memberRepo := repository.NewMemberRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	mmRepo := repository.NewMemberMembershipRepository(db)
	logRepo := repository.NewTrainingLogRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	mailer := email.NewService(&cfg.Email)

	memberService := service.NewMemberService(memberRepo)
	membershipService := service.NewMembershipService(membershipRepo)
	ledgerService := service.NewLedgerService(mmRepo, membershipRepo, logRepo)
	notificationService := service.NewNotificationService(notifRepo, mmRepo, wsHub, mailer, &cfg.Email)

	var driveClient *drive.Client
	if cfg.Backup.Drive.ClientID != "" {
		store := tokenstore.NewStore(cfg.Backup.TokenFile, cfg.Backup.EncryptionKey)
		driveClient = drive.NewClient(cfg.Backup.Drive.ClientID, cfg.Backup.Drive.ClientSecret, store)
	}

	var ossClient *oss.Client
	if cfg.Backup.Provider == "oss" {
		ossClient, err = oss.NewClient(&cfg.Backup.OSS)
		if err != nil {
			log.Fatalf("Failed to create OSS client: %v", err)
		}
	}

	backupService := service.NewBackupService(db, &cfg.Backup, cfg.Database.Driver, driveClient, ossClient, wsHub)

	memberHandler := handler.NewMemberHandler(memberService, ledgerService)
	membershipHandler := handler.NewMembershipHandler(membershipService)
	memberMembershipHandler := handler.NewMemberMembershipHandler(ledgerService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	backupHandler := handler.NewBackupHandler(backupService)
	websocketHandler := handler.NewWebSocketHandler(wsHub)

	router := api.NewRouter(
		memberHandler,
		membershipHandler,
		memberMembershipHandler,
		notificationHandler,
		backupHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	var backupInterval time.Duration
	if cfg.Backup.AutoEnabled && cfg.Backup.IntervalHours > 0 {
		backupInterval = time.Duration(cfg.Backup.IntervalHours) * time.Hour
	}
	cronService := cron.NewService(notificationService, backupService, cfg.Notifications.DailyCheck, backupInterval)
	cronService.Start()
	defer cronService.Stop()

	if cfg.Notifications.CheckOnStart {
		go func() {
			if err := cronService.RunNow(); err != nil {
				log.Printf("Startup expiry check failed: %v", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
