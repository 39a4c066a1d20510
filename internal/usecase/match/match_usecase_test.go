package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
	peers    []*domain.Profile
	getErr   error
	findErr  error
}

func (f *fakeProfileRepo) Create(context.Context, *domain.Profile) error { return nil }
func (f *fakeProfileRepo) Update(context.Context, *domain.Profile) error { return nil }

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) FindComplementary(context.Context, string, string, uuid.UUID) ([]*domain.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.peers, nil
}

type fakeConnectionRepo struct {
	connectedIDs []uuid.UUID
	err          error
}

func (f *fakeConnectionRepo) Create(context.Context, *domain.Connection) error { return nil }
func (f *fakeConnectionRepo) GetByID(context.Context, uuid.UUID) (*domain.Connection, error) {
	return nil, domain.ErrConnectionNotFound
}
func (f *fakeConnectionRepo) ListForUser(context.Context, uuid.UUID) ([]*domain.Connection, error) {
	return nil, nil
}
func (f *fakeConnectionRepo) UpdateStatus(context.Context, uuid.UUID, domain.ConnectionStatus) error {
	return nil
}
func (f *fakeConnectionRepo) ConnectedUserIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.connectedIDs, nil
}

func newMatchUseCase(profiles *fakeProfileRepo, conns *fakeConnectionRepo) *MatchUseCase {
	matcher := NewMatcher(nil, time.Second, zap.NewNop())
	return NewMatchUseCase(profiles, conns, matcher)
}

func TestFindPeersPropagatesProfileError(t *testing.T) {
	repoErr := errors.New("connection refused")
	uc := newMatchUseCase(&fakeProfileRepo{getErr: repoErr}, &fakeConnectionRepo{})

	_, err := uc.FindPeers(context.Background(), uuid.New())
	if err == nil || !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestFindPeersIncompleteProfile(t *testing.T) {
	user := testUser()
	user.SubjectHelp = ""
	uc := newMatchUseCase(&fakeProfileRepo{
		profiles: map[uuid.UUID]*domain.Profile{user.ID: user},
	}, &fakeConnectionRepo{})

	_, err := uc.FindPeers(context.Background(), user.ID)
	if !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
}

func TestFindPeersExcludesConnectedUsers(t *testing.T) {
	user := testUser()
	connected := mirrorPeer("Connected", "Evening (5-8 PM)")
	free := mirrorPeer("Free", "Evening (5-8 PM)")

	uc := newMatchUseCase(&fakeProfileRepo{
		profiles: map[uuid.UUID]*domain.Profile{user.ID: user},
		peers:    []*domain.Profile{connected, free},
	}, &fakeConnectionRepo{
		connectedIDs: []uuid.UUID{connected.ID},
	})

	got, err := uc.FindPeers(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].ID != free.ID {
		t.Fatalf("connected peer should be excluded, got %q", got[0].FirstName)
	}
}

func TestFindPeersPropagatesConnectionError(t *testing.T) {
	user := testUser()
	repoErr := errors.New("query timeout")
	uc := newMatchUseCase(&fakeProfileRepo{
		profiles: map[uuid.UUID]*domain.Profile{user.ID: user},
		peers:    []*domain.Profile{mirrorPeer("Peer", "Evening (5-8 PM)")},
	}, &fakeConnectionRepo{err: repoErr})

	_, err := uc.FindPeers(context.Background(), user.ID)
	if err == nil || !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped connection-repo error, got %v", err)
	}
}
