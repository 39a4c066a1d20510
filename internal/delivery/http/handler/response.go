package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the uniform error body for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries informational, non-error outcomes.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentUserID pulls the authenticated user ID set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
