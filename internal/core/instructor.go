package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	InstructorFieldUserID = "user_id"
	InstructorFieldBio    = "bio"
	InstructorFieldRating = "rating"

	InstructorEdgeUser = "user"
)

// Instructor is the teaching profile attached to a user.
type Instructor struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Bio       *string
	Rating    *float64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Edges     InstructorEdges
}

// InstructorEdges holds eager-loaded relations.
type InstructorEdges struct {
	User *User
}

// CreateInstructorParams holds the input required to promote a user to instructor.
type CreateInstructorParams struct {
	UserID uuid.UUID
	Bio    *string
	Rating *float64
}

// FindInstructorParams addresses a single instructor.
type FindInstructorParams struct {
	InstructorID uuid.UUID
	ReturnError  bool
	Relations    []string
}

// InstructorFilter describes list options for instructors.
type InstructorFilter struct {
	PageRequest
	UserID uuid.UUID
	Sort   Sort
}
