package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/pkg/response"
	"github.com/bmarinov/gym_go_server/internal/service"
)

type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

// Create adds a membership plan
// POST /api/v1/memberships
func (h *MembershipHandler) Create(c *gin.Context) {
	var req dto.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.membershipService.Create(&req)
	if err != nil {
		if errors.Is(err, service.ErrPlanTrainingsRequired) || errors.Is(err, service.ErrPlanTrainingsNotAllowed) {
			response.ParamError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, plan)
}

// List returns membership plans, optionally including soft-deleted ones
// GET /api/v1/memberships?include_deleted=true
func (h *MembershipHandler) List(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true"

	plans, err := h.membershipService.List(includeDeleted)
	if err != nil {
		log.Printf("Failed to list membership plans: %v", err)
		response.Success(c, []*model.Membership{})
		return
	}

	response.Success(c, plans)
}

// Get returns one membership plan
// GET /api/v1/memberships/:id
func (h *MembershipHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	plan, err := h.membershipService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, plan)
}

// Update partially updates a membership plan
// PUT /api/v1/memberships/:id
func (h *MembershipHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	plan, err := h.membershipService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanTrainingsRequired), errors.Is(err, service.ErrPlanTrainingsNotAllowed):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, plan)
}

// Delete soft-deletes a membership plan
// DELETE /api/v1/memberships/:id
func (h *MembershipHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.membershipService.SoftDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Restore brings back a soft-deleted membership plan
// POST /api/v1/memberships/:id/restore
func (h *MembershipHandler) Restore(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.membershipService.Restore(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Purge permanently removes a membership plan
// DELETE /api/v1/memberships/:id/purge
func (h *MembershipHandler) Purge(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.membershipService.HardDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}
