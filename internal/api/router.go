package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/config"
	"github.com/bmarinov/gym_go_server/internal/api/handler"
	"github.com/bmarinov/gym_go_server/internal/api/middleware"
)

type Router struct {
	memberHandler           *handler.MemberHandler
	membershipHandler       *handler.MembershipHandler
	memberMembershipHandler *handler.MemberMembershipHandler
	notificationHandler     *handler.NotificationHandler
	backupHandler           *handler.BackupHandler
	websocketHandler        *handler.WebSocketHandler
	cfg                     *config.Config
}

func NewRouter(
	memberHandler *handler.MemberHandler,
	membershipHandler *handler.MembershipHandler,
	memberMembershipHandler *handler.MemberMembershipHandler,
	notificationHandler *handler.NotificationHandler,
	backupHandler *handler.BackupHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		memberHandler:           memberHandler,
		membershipHandler:       membershipHandler,
		memberMembershipHandler: memberMembershipHandler,
		notificationHandler:     notificationHandler,
		backupHandler:           backupHandler,
		websocketHandler:        websocketHandler,
		cfg:                     cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket event push
		api.GET("/ws", r.websocketHandler.Handle)

		members := api.Group("/members")
		{
			members.POST("", r.memberHandler.Create)
			members.GET("", r.memberHandler.List)
			members.GET("/:id", r.memberHandler.Get)
			members.GET("/:id/memberships", r.memberHandler.Memberships)
			members.PUT("/:id", r.memberHandler.Update)
			members.DELETE("/:id", r.memberHandler.Delete)
			members.POST("/:id/restore", r.memberHandler.Restore)
			members.DELETE("/:id/purge", r.memberHandler.Purge)
		}

		memberships := api.Group("/memberships")
		{
			memberships.POST("", r.membershipHandler.Create)
			memberships.GET("", r.membershipHandler.List)
			memberships.GET("/:id", r.membershipHandler.Get)
			memberships.PUT("/:id", r.membershipHandler.Update)
			memberships.DELETE("/:id", r.membershipHandler.Delete)
			memberships.POST("/:id/restore", r.membershipHandler.Restore)
			memberships.DELETE("/:id/purge", r.membershipHandler.Purge)
		}

		memberMemberships := api.Group("/member-memberships")
		{
			memberMemberships.POST("", r.memberMembershipHandler.Create)
			memberMemberships.GET("", r.memberMembershipHandler.List)
			memberMemberships.GET("/latest-active", r.memberMembershipHandler.LatestActive)
			memberMemberships.GET("/expirations", r.memberMembershipHandler.Expirations)
			memberMemberships.GET("/:id", r.memberMembershipHandler.Get)
			memberMemberships.PUT("/:id", r.memberMembershipHandler.Update)
			memberMemberships.POST("/:id/trainings/subtract", r.memberMembershipHandler.SubtractTraining)
			memberMemberships.POST("/:id/trainings/add", r.memberMembershipHandler.AddTraining)
			memberMemberships.GET("/:id/trainings/logs", r.memberMembershipHandler.TrainingLogs)
			memberMemberships.DELETE("/:id", r.memberMembershipHandler.Delete)
			memberMemberships.POST("/:id/restore", r.memberMembershipHandler.Restore)
			memberMemberships.DELETE("/:id/purge", r.memberMembershipHandler.Purge)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", r.notificationHandler.List)
			notifications.POST("/check", r.notificationHandler.Check)
			notifications.POST("/:id/read", r.notificationHandler.MarkAsRead)
			notifications.POST("/read-all", r.notificationHandler.MarkAllAsRead)
			notifications.DELETE("/:id", r.notificationHandler.Delete)
			notifications.POST("/:id/restore", r.notificationHandler.Restore)
		}

		backup := api.Group("/backup")
		{
			backup.GET("/status", r.backupHandler.Status)
			backup.POST("/auth", r.backupHandler.Auth)
			backup.POST("/run", r.backupHandler.Run)
		}
	}

	return engine
}
