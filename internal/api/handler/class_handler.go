package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/omanjaya/websmansa-sub000/internal/dto"
	"github.com/omanjaya/websmansa-sub000/internal/service"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

// ClassHandler serves the school-class master data.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// Create
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	created, err := h.classSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	response.Created(c, created)
}

// Get
// GET /api/v1/classes/:id
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleDomainError(c, err)
		return
	}
	response.OK(c, class)
}

// List
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		handleDomainError(c, err)
		return
	}
	response.OK(c, gin.H{"list": classes})
}

// Update
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	updated, err := h.classSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		handleDomainError(c, err)
		return
	}
	response.OK(c, updated)
}

// Delete
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		handleDomainError(c, err)
		return
	}
	response.OK(c, nil)
}
