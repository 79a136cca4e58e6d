package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/service"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

// ActivityLogHandler serves the audit trail.
type ActivityLogHandler struct {
	logSvc service.ActivityLogService
}

// NewActivityLogHandler creates an ActivityLogHandler.
func NewActivityLogHandler(logSvc service.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{logSvc: logSvc}
}

// List
// GET /api/v1/activity-logs
func (h *ActivityLogHandler) List(c *gin.Context) {
	var req dto.ActivityLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	logs, total, err := h.logSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.OKPage(c, logs, total, req.GetPage(), req.GetPageSize())
}
