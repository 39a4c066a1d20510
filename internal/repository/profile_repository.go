package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// FindComplementary returns profiles teaching subjectProficient and
	// needing subjectHelp, excluding the given user.
	FindComplementary(ctx context.Context, subjectProficient, subjectHelp string, excludeUserID uuid.UUID) ([]*domain.Profile, error)
}
