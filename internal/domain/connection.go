package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// ValidTransition reports whether the status may move to next. A
// connection leaves pending exactly once and never returns to it.
func (s ConnectionStatus) ValidTransition(next ConnectionStatus) bool {
	return s == ConnectionPending &&
		(next == ConnectionAccepted || next == ConnectionRejected)
}

// SubjectsShared is the snapshot of both sides' subjects taken when
// the connection is created. It is never updated afterwards, even if
// either profile changes.
type SubjectsShared struct {
	SenderHelpsWith       string `json:"sender_helps_with"`
	SenderNeedsHelpWith   string `json:"sender_needs_help_with"`
	ReceiverHelpsWith     string `json:"receiver_helps_with"`
	ReceiverNeedsHelpWith string `json:"receiver_needs_help_with"`
}

func (s SubjectsShared) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SubjectsShared) Scan(src interface{}) error {
	if src == nil {
		*s = SubjectsShared{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported subjects_shared source type %T", src)
	}
	return json.Unmarshal(data, s)
}

// Connection is a directed request from sender to receiver. At most
// one row exists per unordered user pair; the database enforces it.
type Connection struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	SenderID       uuid.UUID        `json:"sender_id" db:"sender_id"`
	ReceiverID     uuid.UUID        `json:"receiver_id" db:"receiver_id"`
	Status         ConnectionStatus `json:"status" db:"status"`
	SubjectsShared SubjectsShared   `json:"subjects_shared" db:"subjects_shared"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

func (c *Connection) HasUser(userID uuid.UUID) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}

func (c *Connection) OtherUserID(userID uuid.UUID) (uuid.UUID, bool) {
	if c.SenderID == userID {
		return c.ReceiverID, true
	}
	if c.ReceiverID == userID {
		return c.SenderID, true
	}
	return uuid.Nil, false
}
