package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidCode        = errors.New("invalid or expired sign-in code")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileIncomplete = errors.New("profile is missing required subjects")

	ErrConnectionNotFound = errors.New("connection not found")
	ErrAlreadyConnected   = errors.New("connection already exists for this pair")
	ErrCannotConnectSelf  = errors.New("cannot connect with yourself")
	ErrNotReceiver        = errors.New("only the receiver can update this connection")
	ErrNotPending         = errors.New("connection is no longer pending")

	ErrInvalidInput = errors.New("invalid input")
)
