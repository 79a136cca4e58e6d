package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/omanjaya/websmansa-sub000/pkg/errors"
	"github.com/omanjaya/websmansa-sub000/pkg/response"
)

// MustGetUserID extracts user_id from the gin context. When the JWT
// middleware did not inject it, a 401 is written and ok is false; the caller
// should return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// handleDomainError maps the shared error taxonomy onto HTTP. A conflict is
// 422 and carries the colliding period ids; anything unrecognized is a 500.
func handleDomainError(c *gin.Context, err error) {
	var (
		validation *pkgerrors.ValidationError
		conflict   *pkgerrors.ConflictError
		notFound   *pkgerrors.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		response.BadRequest(c, 10001, validation.Error())
	case errors.As(err, &conflict):
		response.UnprocessableEntity(c, 13001, "schedule conflicts with existing periods", gin.H{
			"conflicting_ids": conflict.ConflictingIDs,
		})
	case errors.As(err, &notFound):
		response.NotFound(c, 10006, notFound.Error())
	default:
		response.InternalError(c)
	}
}
