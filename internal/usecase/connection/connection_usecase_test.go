package connection

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
}

func (f *fakeProfileRepo) Create(context.Context, *domain.Profile) error { return nil }
func (f *fakeProfileRepo) Update(context.Context, *domain.Profile) error { return nil }

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) FindComplementary(context.Context, string, string, uuid.UUID) ([]*domain.Profile, error) {
	return nil, nil
}

type fakeConnectionRepo struct {
	connections map[uuid.UUID]*domain.Connection
	createErr   error
	created     *domain.Connection
}

func (f *fakeConnectionRepo) Create(_ context.Context, conn *domain.Connection) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = conn
	return nil
}

func (f *fakeConnectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Connection, error) {
	conn, ok := f.connections[id]
	if !ok {
		return nil, domain.ErrConnectionNotFound
	}
	return conn, nil
}

func (f *fakeConnectionRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*domain.Connection, error) {
	var out []*domain.Connection
	for _, conn := range f.connections {
		if conn.HasUser(userID) {
			out = append(out, conn)
		}
	}
	return out, nil
}

func (f *fakeConnectionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.ConnectionStatus) error {
	conn, ok := f.connections[id]
	if !ok {
		return domain.ErrConnectionNotFound
	}
	if conn.Status != domain.ConnectionPending {
		return domain.ErrNotPending
	}
	conn.Status = status
	return nil
}

func (f *fakeConnectionRepo) ConnectedUserIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func profileFor(id uuid.UUID, name, proficient, help string) *domain.Profile {
	return &domain.Profile{
		ID:                id,
		FirstName:         name,
		LastName:          "Tester",
		Email:             name + "@example.com",
		SubjectProficient: proficient,
		SubjectHelp:       help,
		ShowLastName:      true,
		ShowEmail:         false,
		ShowSchool:        true,
	}
}

func newUseCase(conns *fakeConnectionRepo, profiles *fakeProfileRepo) *ConnectionUseCase {
	return NewConnectionUseCase(conns, profiles, zap.NewNop())
}

func TestCreateRejectsSelfConnection(t *testing.T) {
	uc := newUseCase(&fakeConnectionRepo{}, &fakeProfileRepo{})

	id := uuid.New()
	_, err := uc.Create(context.Background(), id, id)
	if !errors.Is(err, domain.ErrCannotConnectSelf) {
		t.Fatalf("expected ErrCannotConnectSelf, got %v", err)
	}
}

func TestCreateSnapshotsSubjects(t *testing.T) {
	senderID, receiverID := uuid.New(), uuid.New()
	connRepo := &fakeConnectionRepo{}
	uc := newUseCase(connRepo, &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		senderID:   profileFor(senderID, "sender", "Chemistry", "Biology"),
		receiverID: profileFor(receiverID, "receiver", "Biology", "Chemistry"),
	}})

	result, err := uc.Create(context.Background(), senderID, receiverID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AlreadyConnected {
		t.Fatalf("fresh pair reported as already connected")
	}
	if result.Connection.Status != domain.ConnectionPending {
		t.Fatalf("new connection should be pending, got %q", result.Connection.Status)
	}

	shared := connRepo.created.SubjectsShared
	if shared.SenderHelpsWith != "Chemistry" || shared.SenderNeedsHelpWith != "Biology" {
		t.Fatalf("sender subjects not snapshotted: %+v", shared)
	}
	if shared.ReceiverHelpsWith != "Biology" || shared.ReceiverNeedsHelpWith != "Chemistry" {
		t.Fatalf("receiver subjects not snapshotted: %+v", shared)
	}
}

func TestCreateDuplicatePairIsNotAnError(t *testing.T) {
	senderID, receiverID := uuid.New(), uuid.New()
	uc := newUseCase(&fakeConnectionRepo{createErr: domain.ErrAlreadyConnected}, &fakeProfileRepo{
		profiles: map[uuid.UUID]*domain.Profile{
			senderID:   profileFor(senderID, "sender", "Chemistry", "Biology"),
			receiverID: profileFor(receiverID, "receiver", "Biology", "Chemistry"),
		},
	})

	result, err := uc.Create(context.Background(), senderID, receiverID)
	if err != nil {
		t.Fatalf("duplicate pair must not fail, got %v", err)
	}
	if !result.AlreadyConnected {
		t.Fatalf("expected AlreadyConnected flag")
	}
	if result.Connection != nil {
		t.Fatalf("no new connection should be reported on a duplicate")
	}
}

func TestCreateMissingReceiverProfile(t *testing.T) {
	senderID := uuid.New()
	uc := newUseCase(&fakeConnectionRepo{}, &fakeProfileRepo{
		profiles: map[uuid.UUID]*domain.Profile{
			senderID: profileFor(senderID, "sender", "Chemistry", "Biology"),
		},
	})

	_, err := uc.Create(context.Background(), senderID, uuid.New())
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestUpdateStatusReceiverOnly(t *testing.T) {
	senderID, receiverID := uuid.New(), uuid.New()
	conn := &domain.Connection{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.ConnectionPending,
	}
	uc := newUseCase(&fakeConnectionRepo{
		connections: map[uuid.UUID]*domain.Connection{conn.ID: conn},
	}, &fakeProfileRepo{})

	if _, err := uc.UpdateStatus(context.Background(), senderID, conn.ID, domain.ConnectionAccepted); !errors.Is(err, domain.ErrNotReceiver) {
		t.Fatalf("sender accepting own request: expected ErrNotReceiver, got %v", err)
	}
	if _, err := uc.UpdateStatus(context.Background(), uuid.New(), conn.ID, domain.ConnectionAccepted); !errors.Is(err, domain.ErrNotReceiver) {
		t.Fatalf("third party: expected ErrNotReceiver, got %v", err)
	}

	updated, err := uc.UpdateStatus(context.Background(), receiverID, conn.ID, domain.ConnectionAccepted)
	if err != nil {
		t.Fatalf("receiver accept failed: %v", err)
	}
	if updated.Status != domain.ConnectionAccepted {
		t.Fatalf("expected accepted, got %q", updated.Status)
	}
}

func TestUpdateStatusOnlyOnce(t *testing.T) {
	receiverID := uuid.New()
	conn := &domain.Connection{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Status:     domain.ConnectionAccepted,
	}
	uc := newUseCase(&fakeConnectionRepo{
		connections: map[uuid.UUID]*domain.Connection{conn.ID: conn},
	}, &fakeProfileRepo{})

	_, err := uc.UpdateStatus(context.Background(), receiverID, conn.ID, domain.ConnectionRejected)
	if !errors.Is(err, domain.ErrNotPending) {
		t.Fatalf("expected ErrNotPending for a settled connection, got %v", err)
	}
}

func TestUpdateStatusInvalidTarget(t *testing.T) {
	receiverID := uuid.New()
	conn := &domain.Connection{
		ID:         uuid.New(),
		SenderID:   uuid.New(),
		ReceiverID: receiverID,
		Status:     domain.ConnectionPending,
	}
	uc := newUseCase(&fakeConnectionRepo{
		connections: map[uuid.UUID]*domain.Connection{conn.ID: conn},
	}, &fakeProfileRepo{})

	_, err := uc.UpdateStatus(context.Background(), receiverID, conn.ID, domain.ConnectionPending)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for pending target, got %v", err)
	}
}

func TestUpdateStatusUnknownConnection(t *testing.T) {
	uc := newUseCase(&fakeConnectionRepo{}, &fakeProfileRepo{})

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), domain.ConnectionAccepted)
	if !errors.Is(err, domain.ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
}

func TestListForUserGroups(t *testing.T) {
	me, alice, bob, carol := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		me:    profileFor(me, "me", "Chemistry", "Biology"),
		alice: profileFor(alice, "alice", "Biology", "Chemistry"),
		bob:   profileFor(bob, "bob", "Biology", "Chemistry"),
		carol: profileFor(carol, "carol", "Biology", "Chemistry"),
	}}

	sent := &domain.Connection{ID: uuid.New(), SenderID: me, ReceiverID: alice, Status: domain.ConnectionPending}
	received := &domain.Connection{ID: uuid.New(), SenderID: bob, ReceiverID: me, Status: domain.ConnectionPending}
	accepted := &domain.Connection{ID: uuid.New(), SenderID: carol, ReceiverID: me, Status: domain.ConnectionAccepted}
	// Another pair entirely; must never show up for me.
	foreign := &domain.Connection{ID: uuid.New(), SenderID: alice, ReceiverID: bob, Status: domain.ConnectionPending}

	uc := newUseCase(&fakeConnectionRepo{connections: map[uuid.UUID]*domain.Connection{
		sent.ID:     sent,
		received.ID: received,
		accepted.ID: accepted,
		foreign.ID:  foreign,
	}}, profiles)

	result, err := uc.ListForUser(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Sent) != 1 || result.Sent[0].ID != sent.ID {
		t.Fatalf("sent group wrong: %+v", result.Sent)
	}
	if len(result.Received) != 1 || result.Received[0].ID != received.ID {
		t.Fatalf("received group wrong: %+v", result.Received)
	}
	if len(result.Accepted) != 1 || result.Accepted[0].ID != accepted.ID {
		t.Fatalf("accepted group wrong: %+v", result.Accepted)
	}
}

func TestListForUserSkipsUnloadableProfiles(t *testing.T) {
	me, ghost := uuid.New(), uuid.New()
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		me: profileFor(me, "me", "Chemistry", "Biology"),
		// ghost has no profile row
	}}

	broken := &domain.Connection{ID: uuid.New(), SenderID: me, ReceiverID: ghost, Status: domain.ConnectionPending}
	uc := newUseCase(&fakeConnectionRepo{
		connections: map[uuid.UUID]*domain.Connection{broken.ID: broken},
	}, profiles)

	result, err := uc.ListForUser(context.Background(), me)
	if err != nil {
		t.Fatalf("a single unloadable profile must not sink the listing: %v", err)
	}
	if len(result.Sent)+len(result.Received)+len(result.Accepted) != 0 {
		t.Fatalf("expected empty groups, got %+v", result)
	}
}

func TestListForUserHidesPrivateFields(t *testing.T) {
	me, peer := uuid.New(), uuid.New()
	peerProfile := profileFor(peer, "peer", "Biology", "Chemistry")
	peerProfile.ShowEmail = false
	peerProfile.ShowLastName = false

	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		me:   profileFor(me, "me", "Chemistry", "Biology"),
		peer: peerProfile,
	}}

	conn := &domain.Connection{ID: uuid.New(), SenderID: me, ReceiverID: peer, Status: domain.ConnectionPending}
	uc := newUseCase(&fakeConnectionRepo{
		connections: map[uuid.UUID]*domain.Connection{conn.ID: conn},
	}, profiles)

	result, err := uc.ListForUser(context.Background(), me)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sent) != 1 {
		t.Fatalf("expected 1 sent connection, got %d", len(result.Sent))
	}
	receiver := result.Sent[0].Receiver
	if receiver.Email != "" || receiver.LastName != "" {
		t.Fatalf("private fields leaked: email=%q lastName=%q", receiver.Email, receiver.LastName)
	}
}
