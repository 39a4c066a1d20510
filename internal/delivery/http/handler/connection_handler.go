package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/usecase/connection"
)

type ConnectionHandler struct {
	connectionUseCase *connection.ConnectionUseCase
}

func NewConnectionHandler(connectionUseCase *connection.ConnectionUseCase) *ConnectionHandler {
	return &ConnectionHandler{connectionUseCase: connectionUseCase}
}

// CreateConnectionRequest opens a request towards another user.
type CreateConnectionRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id" binding:"required"`
}

// UpdateConnectionRequest finalizes a pending request.
type UpdateConnectionRequest struct {
	Status domain.ConnectionStatus `json:"status" binding:"required,oneof=accepted rejected"`
}

// Create handles POST /connections
func (h *ConnectionHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.connectionUseCase.Create(c.Request.Context(), userID, req.ReceiverID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCannotConnectSelf):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot connect with yourself"})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create connection"})
		}
		return
	}

	if result.AlreadyConnected {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateStatus handles PATCH /connections/:id
func (h *ConnectionHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	connectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid connection id"})
		return
	}

	var req UpdateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	conn, err := h.connectionUseCase.UpdateStatus(c.Request.Context(), userID, connectionID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConnectionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "connection not found"})
		case errors.Is(err, domain.ErrNotReceiver):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "only the receiver can update this connection"})
		case errors.Is(err, domain.ErrNotPending):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "connection is no longer pending"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update connection"})
		}
		return
	}

	c.JSON(http.StatusOK, conn)
}

// List handles GET /connections
func (h *ConnectionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	result, err := h.connectionUseCase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list connections"})
		return
	}

	c.JSON(http.StatusOK, result)
}
