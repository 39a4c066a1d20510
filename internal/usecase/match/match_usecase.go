package match

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
)

// MatchUseCase fetches the inputs for one matching request and hands
// them to the Matcher. Fetch failures propagate to the caller;
// ranking-engine degradation does not.
type MatchUseCase struct {
	profileRepo    repository.ProfileRepository
	connectionRepo repository.ConnectionRepository
	matcher        *Matcher
}

func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	connectionRepo repository.ConnectionRepository,
	matcher *Matcher,
) *MatchUseCase {
	return &MatchUseCase{
		profileRepo:    profileRepo,
		connectionRepo: connectionRepo,
		matcher:        matcher,
	}
}

// FindPeers runs the full matching flow for one user: fetch profile,
// fetch complementary peers, drop peers the user already has any
// connection with, then score and rank.
func (uc *MatchUseCase) FindPeers(ctx context.Context, userID uuid.UUID) ([]*domain.Candidate, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if !profile.Matchable() {
		return nil, domain.ErrProfileIncomplete
	}

	peers, err := uc.profileRepo.FindComplementary(ctx, profile.SubjectHelp, profile.SubjectProficient, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch peers: %w", err)
	}

	connectedIDs, err := uc.connectionRepo.ConnectedUserIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing connections: %w", err)
	}

	connected := make(map[uuid.UUID]bool, len(connectedIDs))
	for _, id := range connectedIDs {
		connected[id] = true
	}

	eligible := peers[:0]
	for _, peer := range peers {
		if connected[peer.ID] {
			continue
		}
		eligible = append(eligible, peer)
	}

	return uc.matcher.FindCompatiblePeers(ctx, profile, eligible)
}
