package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

type ConnectionRepository interface {
	// Create inserts a pending connection. Returns
	// domain.ErrAlreadyConnected when a row for the unordered pair
	// already exists.
	Create(ctx context.Context, conn *domain.Connection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error)
	// ListForUser returns every connection the user participates in,
	// newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Connection, error)
	// UpdateStatus moves a pending connection to its final status.
	// Returns domain.ErrNotPending when the row has already left pending.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConnectionStatus) error
	// ConnectedUserIDs returns the IDs of every user the given user has
	// a connection with, regardless of status.
	ConnectedUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
