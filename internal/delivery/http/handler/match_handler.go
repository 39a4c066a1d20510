package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// FindPeers handles GET /matches. An empty list means no eligible
// peers; re-ranker degradation is invisible here apart from generic
// explanation texts.
func (h *MatchHandler) FindPeers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	candidates, err := h.matchUseCase.FindPeers(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "complete your profile before finding peers"})
		case errors.Is(err, domain.ErrProfileIncomplete):
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "profile is missing required subjects"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to find peers"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": candidates})
}
