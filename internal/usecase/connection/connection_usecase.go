package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
	"go.uber.org/zap"
)

type ConnectionUseCase struct {
	connectionRepo repository.ConnectionRepository
	profileRepo    repository.ProfileRepository
	logger         *zap.Logger
}

func NewConnectionUseCase(
	connectionRepo repository.ConnectionRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.Logger,
) *ConnectionUseCase {
	return &ConnectionUseCase{
		connectionRepo: connectionRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

// CreateResult reports the outcome of a connection request.
// AlreadyConnected means a row for the pair existed; the caller should
// present that as information, not as an error.
type CreateResult struct {
	Connection       *domain.Connection `json:"connection,omitempty"`
	AlreadyConnected bool               `json:"already_connected"`
}

// ConnectionView is one connection joined with both participants'
// public-visible profile fields.
type ConnectionView struct {
	*domain.Connection
	Sender   *domain.Profile `json:"sender"`
	Receiver *domain.Profile `json:"receiver"`
}

// ListResult groups a user's connections the way the dashboard shows
// them.
type ListResult struct {
	Sent     []*ConnectionView `json:"sent"`
	Received []*ConnectionView `json:"received"`
	Accepted []*ConnectionView `json:"accepted"`
}

// Create opens a pending connection from sender to receiver,
// snapshotting both sides' subjects. A uniqueness conflict on the pair
// is surfaced as AlreadyConnected, never as a failure.
func (uc *ConnectionUseCase) Create(ctx context.Context, senderID, receiverID uuid.UUID) (*CreateResult, error) {
	if senderID == receiverID {
		return nil, domain.ErrCannotConnectSelf
	}

	sender, err := uc.profileRepo.GetByUserID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender profile: %w", err)
	}
	receiver, err := uc.profileRepo.GetByUserID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receiver profile: %w", err)
	}

	conn := &domain.Connection{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.ConnectionPending,
		SubjectsShared: domain.SubjectsShared{
			SenderHelpsWith:       sender.SubjectProficient,
			SenderNeedsHelpWith:   sender.SubjectHelp,
			ReceiverHelpsWith:     receiver.SubjectProficient,
			ReceiverNeedsHelpWith: receiver.SubjectHelp,
		},
	}

	if err := uc.connectionRepo.Create(ctx, conn); err != nil {
		if errors.Is(err, domain.ErrAlreadyConnected) {
			uc.logger.Debug("connection already exists",
				zap.String("sender_id", senderID.String()),
				zap.String("receiver_id", receiverID.String()),
			)
			return &CreateResult{AlreadyConnected: true}, nil
		}
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	return &CreateResult{Connection: conn}, nil
}

// UpdateStatus transitions a pending connection to accepted or
// rejected. Only the receiver may do this, and only once.
func (uc *ConnectionUseCase) UpdateStatus(ctx context.Context, userID, connectionID uuid.UUID, status domain.ConnectionStatus) (*domain.Connection, error) {
	conn, err := uc.connectionRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if conn.ReceiverID != userID {
		return nil, domain.ErrNotReceiver
	}
	if !conn.Status.ValidTransition(status) {
		if conn.Status != domain.ConnectionPending {
			return nil, domain.ErrNotPending
		}
		return nil, domain.ErrInvalidInput
	}

	if err := uc.connectionRepo.UpdateStatus(ctx, connectionID, status); err != nil {
		return nil, err
	}

	conn.Status = status
	return conn, nil
}

// ListForUser returns all of the user's connections joined with both
// profiles' public views, grouped into sent, received-pending and
// accepted.
func (uc *ConnectionUseCase) ListForUser(ctx context.Context, userID uuid.UUID) (*ListResult, error) {
	conns, err := uc.connectionRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	result := &ListResult{
		Sent:     []*ConnectionView{},
		Received: []*ConnectionView{},
		Accepted: []*ConnectionView{},
	}

	for _, conn := range conns {
		view, err := uc.buildView(ctx, conn)
		if err != nil {
			// A missing counterpart profile should not sink the whole
			// listing.
			uc.logger.Warn("skipping connection with unloadable profile",
				zap.String("connection_id", conn.ID.String()),
				zap.Error(err),
			)
			continue
		}

		switch {
		case conn.Status == domain.ConnectionAccepted:
			result.Accepted = append(result.Accepted, view)
		case conn.ReceiverID == userID && conn.Status == domain.ConnectionPending:
			result.Received = append(result.Received, view)
		case conn.SenderID == userID:
			result.Sent = append(result.Sent, view)
		}
	}

	return result, nil
}

func (uc *ConnectionUseCase) buildView(ctx context.Context, conn *domain.Connection) (*ConnectionView, error) {
	sender, err := uc.profileRepo.GetByUserID(ctx, conn.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := uc.profileRepo.GetByUserID(ctx, conn.ReceiverID)
	if err != nil {
		return nil, err
	}

	senderView := sender.PublicView()
	receiverView := receiver.PublicView()
	return &ConnectionView{
		Connection: conn,
		Sender:     &senderView,
		Receiver:   &receiverView,
	}, nil
}
