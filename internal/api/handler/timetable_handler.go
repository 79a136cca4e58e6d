package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/service"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

// TimetableHandler serves the grouped weekly views.
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// ByClass
// GET /api/v1/timetables/class/:id
func (h *TimetableHandler) ByClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "class id must not be empty")
		return
	}

	var req dto.TimetableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	timetable, err := h.timetableSvc.ByClass(c.Request.Context(), id, &req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, timetable)
}

// ByTeacher
// GET /api/v1/timetables/teacher/:id
func (h *TimetableHandler) ByTeacher(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "teacher id must not be empty")
		return
	}

	var req dto.TimetableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	timetable, err := h.timetableSvc.ByTeacher(c.Request.Context(), id, &req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OK(c, timetable)
}
