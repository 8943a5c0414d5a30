package handler

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/pkg/response"
	"github.com/bmarinov/gym_go_server/internal/service"
)

type MemberMembershipHandler struct {
	ledgerService *service.LedgerService
}

func NewMemberMembershipHandler(ledgerService *service.LedgerService) *MemberMembershipHandler {
	return &MemberMembershipHandler{ledgerService: ledgerService}
}

// Create records a plan purchase
// POST /api/v1/member-memberships
func (h *MemberMembershipHandler) Create(c *gin.Context) {
	var req dto.CreateMemberMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	mm, err := h.ledgerService.Create(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, mm)
}

// List returns purchases, optionally including soft-deleted ones
// GET /api/v1/member-memberships?include_deleted=true
func (h *MemberMembershipHandler) List(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true"

	items, err := h.ledgerService.List(includeDeleted)
	if err != nil {
		log.Printf("Failed to list member memberships: %v", err)
		response.Success(c, []*model.MemberMembership{})
		return
	}

	response.Success(c, items)
}

// LatestActive returns the newest currently active purchase per member
// GET /api/v1/member-memberships/latest-active?member_ids=1,2,3
func (h *MemberMembershipHandler) LatestActive(c *gin.Context) {
	raw := c.Query("member_ids")

	var memberIDs []int64
	if raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				response.ParamError(c, "invalid member_ids")
				return
			}
			memberIDs = append(memberIDs, id)
		}
	}

	items, err := h.ledgerService.GetLatestActiveMemberships(memberIDs)
	if err != nil {
		log.Printf("Failed to resolve latest active memberships: %v", err)
		response.Success(c, []*model.MemberMembership{})
		return
	}

	response.Success(c, items)
}

// Expirations lists purchases ending in a given month
// GET /api/v1/member-memberships/expirations?year=2026&month=8
func (h *MemberMembershipHandler) Expirations(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		response.ParamError(c, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.ParamError(c, "invalid month")
		return
	}

	items, err := h.ledgerService.GetExpirationsByMonth(year, month)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMonth) {
			response.ParamError(c, err.Error())
			return
		}
		log.Printf("Failed to list expirations: %v", err)
		response.Success(c, []*model.MemberMembership{})
		return
	}

	response.Success(c, items)
}

// Get returns one purchase
// GET /api/v1/member-memberships/:id
func (h *MemberMembershipHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	mm, err := h.ledgerService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMemberMembershipNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, mm)
}

// Update changes the purchase's date range
// PUT /api/v1/member-memberships/:id
func (h *MemberMembershipHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	mm, err := h.ledgerService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberMembershipNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidDate):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, mm)
}

// SubtractTraining consumes one session
// POST /api/v1/member-memberships/:id/trainings/subtract
func (h *MemberMembershipHandler) SubtractTraining(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.SubtractTraining(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// AddTraining reverses one consumed session
// POST /api/v1/member-memberships/:id/trainings/add
func (h *MemberMembershipHandler) AddTraining(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.AddTraining(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// TrainingLogs returns the session audit trail, newest first
// GET /api/v1/member-memberships/:id/trainings/logs
func (h *MemberMembershipHandler) TrainingLogs(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	logs, err := h.ledgerService.GetTrainingLogs(id)
	if err != nil {
		log.Printf("Failed to list training logs: %v", err)
		response.Success(c, []*model.TrainingLog{})
		return
	}

	response.Success(c, logs)
}

// Delete soft-deletes a purchase
// DELETE /api/v1/member-memberships/:id
func (h *MemberMembershipHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.SoftDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Restore brings back a soft-deleted purchase
// POST /api/v1/member-memberships/:id/restore
func (h *MemberMembershipHandler) Restore(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.Restore(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Purge permanently removes a purchase
// DELETE /api/v1/member-memberships/:id/purge
func (h *MemberMembershipHandler) Purge(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.HardDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}
