package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/studybuddy-app/studybuddy-backend/internal/domain"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository"
)

type connectionRepository struct {
	db *sqlx.DB
}

func NewConnectionRepository(db *sqlx.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *domain.Connection) error {
	query := `
		INSERT INTO connections (id, sender_id, receiver_id, status, subjects_shared)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.ID, conn.SenderID, conn.ReceiverID, conn.Status, conn.SubjectsShared,
	).Scan(&conn.CreatedAt, &conn.UpdatedAt)
	if err != nil {
		// The unordered-pair unique index fires regardless of direction.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyConnected
		}
		return err
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error) {
	var conn domain.Connection
	query := `SELECT * FROM connections WHERE id = $1`
	err := r.db.GetContext(ctx, &conn, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Connection, error) {
	var conns []*domain.Connection
	query := `
		SELECT * FROM connections
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &conns, query, userID)
	return conns, err
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ConnectionStatus) error {
	query := `
		UPDATE connections
		SET status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND status = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing row from one that already transitioned.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrNotPending
	}
	return nil
}

func (r *connectionRepository) ConnectedUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END
		FROM connections
		WHERE sender_id = $1 OR receiver_id = $1
	`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}
