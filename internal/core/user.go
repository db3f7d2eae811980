package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserFieldUsername = "username"
)

// User is a platform account. Only the fields other entities depend on are kept.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// CreateUserParams holds the input required to register a user.
type CreateUserParams struct {
	Username string
	Password string
}

// FindUserParams addresses a single user.
type FindUserParams struct {
	UserID      uuid.UUID
	ReturnError bool
}
