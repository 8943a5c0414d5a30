package handler

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bmarinov/gym_go_server/internal/model"
	"github.com/bmarinov/gym_go_server/internal/model/dto"
	"github.com/bmarinov/gym_go_server/internal/pkg/response"
	"github.com/bmarinov/gym_go_server/internal/service"
)

type MemberHandler struct {
	memberService *service.MemberService
	ledgerService *service.LedgerService
}

func NewMemberHandler(memberService *service.MemberService, ledgerService *service.LedgerService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		ledgerService: ledgerService,
	}
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "invalid id")
		return 0, false
	}
	return id, true
}

// Create registers a new member
// POST /api/v1/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	member, err := h.memberService.Create(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, member)
}

// List returns members, optionally including soft-deleted ones
// GET /api/v1/members?include_deleted=true
func (h *MemberHandler) List(c *gin.Context) {
	includeDeleted := c.Query("include_deleted") == "true"

	// Read paths degrade to an empty list so the UI stays usable
	members, err := h.memberService.List(includeDeleted)
	if err != nil {
		log.Printf("Failed to list members: %v", err)
		response.Success(c, []*model.Member{})
		return
	}

	response.Success(c, members)
}

// Get returns one member
// GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	member, err := h.memberService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, member)
}

// Memberships returns the member's purchase history
// GET /api/v1/members/:id/memberships
func (h *MemberHandler) Memberships(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	items, err := h.ledgerService.ListByMember(id)
	if err != nil {
		log.Printf("Failed to list member memberships: %v", err)
		response.Success(c, []*model.MemberMembership{})
		return
	}

	response.Success(c, items)
}

// Update partially updates a member
// PUT /api/v1/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	member, err := h.memberService.Update(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, member)
}

// Delete soft-deletes a member
// DELETE /api/v1/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.memberService.SoftDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Restore brings back a soft-deleted member
// POST /api/v1/members/:id/restore
func (h *MemberHandler) Restore(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.memberService.Restore(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}

// Purge permanently removes a member
// DELETE /api/v1/members/:id/purge
func (h *MemberHandler) Purge(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	result, err := h.memberService.HardDelete(id)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, result)
}
