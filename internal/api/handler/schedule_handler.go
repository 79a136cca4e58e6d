package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/service"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

// ScheduleHandler serves the class-period endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// Create
// POST /api/v1/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	created, err := h.scheduleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.Created(c, created)
}

// Get
// GET /api/v1/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id must not be empty")
		return
	}

	schedule, err := h.scheduleSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, schedule)
}

// List
// GET /api/v1/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	schedules, err := h.scheduleSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// Update
// PUT /api/v1/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id must not be empty")
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	updated, err := h.scheduleSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, updated)
}

// SetActive
// PATCH /api/v1/schedules/:id/active
func (h *ScheduleHandler) SetActive(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id must not be empty")
		return
	}

	var req dto.SetScheduleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "is_active is required")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	updated, err := h.scheduleSvc.SetActive(c.Request.Context(), id, *req.IsActive, callerID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, updated)
}

// Delete
// DELETE /api/v1/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "schedule id must not be empty")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, nil)
}

// CurrentTerm
// GET /api/v1/terms/current
func (h *ScheduleHandler) CurrentTerm(c *gin.Context) {
	response.OK(c, h.scheduleSvc.CurrentTerm())
}
