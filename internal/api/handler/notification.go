package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/pkg/response"
	"github.com/bmarinov/gym_go_server/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns notifications, newest first
// GET /api/v1/notifications?unread=true&member_membership_id=5
func (h *NotificationHandler) List(c *gin.Context) {
	if raw := c.Query("member_membership_id"); raw != "" {
		mmID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || mmID <= 0 {
			response.ParamError(c, "invalid member_membership_id")
			return
		}
		items, err := h.notificationService.FindByMemberMembership(mmID)
		if err != nil {
			log.Printf("Failed to list notifications: %v", err)
			response.Success(c, []*model.Notification{})
			return
		}
		response.Success(c, items)
		return
	}

	if c.Query("unread") == "true" {
		items, err := h.notificationService.FindUnread()
		if err != nil {
			log.Printf("Failed to list unread notifications: %v", err)
			response.Success(c, []*model.Notification{})
			return
		}
		response.Success(c, items)
		return
	}

	items, err := h.notificationService.FindAll()
	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		response.Success(c, []*model.Notification{})
		return
	}
	response.Success(c, items)
}

// Check runs the expiration scan on demand
// POST /api/v1/notifications/check
func (h *NotificationHandler) Check(c *gin.Context) {
	result, err := h.notificationService.CheckExpiredMembershipsAndCreateNotifications()
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// MarkAsRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.notificationService.MarkAsRead(id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// MarkAllAsRead marks unread notifications as read, optionally scoped to one
// member membership
// POST /api/v1/notifications/read-all?member_membership_id=5
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	var mmID *int64
	if raw := c.Query("member_membership_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			response.ParamError(c, "invalid member_membership_id")
			return
		}
		mmID = &parsed
	}

	result, err := h.notificationService.MarkAllAsRead(mmID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Delete soft-deletes a notification
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.notificationService.SoftDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Restore brings back a soft-deleted notification
// POST /api/v1/notifications/:id/restore
func (h *NotificationHandler) Restore(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.notificationService.Restore(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}
