package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentFieldUserID           = "user_id"
	EnrollmentFieldCourseID         = "course_id"
	EnrollmentFieldEnrollmentDate   = "enrollment_date"
	EnrollmentFieldCompletionStatus = "completion_status"

	EnrollmentEdgeUser   = "user"
	EnrollmentEdgeCourse = "course"
)

// Enrollment registers a user in a course.
type Enrollment struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	CourseID         uuid.UUID
	EnrollmentDate   time.Time
	CompletionStatus float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
	Edges            EnrollmentEdges
}

// EnrollmentEdges holds eager-loaded relations.
type EnrollmentEdges struct {
	User   *User
	Course *Course
}

// CreateEnrollmentParams holds the input required to enroll a user.
type CreateEnrollmentParams struct {
	UserID   uuid.UUID
	CourseID uuid.UUID
}

// FindEnrollmentParams addresses a single enrollment.
type FindEnrollmentParams struct {
	EnrollmentID uuid.UUID
	ReturnError  bool
	Relations    []string
	WithDeleted  bool
}

// UpdateEnrollmentParams carries the fields to change.
type UpdateEnrollmentParams struct {
	EnrollmentID     uuid.UUID
	CompletionStatus *float64
}

// DeleteEnrollmentParams addresses the enrollment to soft delete.
type DeleteEnrollmentParams struct {
	EnrollmentID uuid.UUID
}

// EnrollmentFilter describes list options for enrollments.
type EnrollmentFilter struct {
	PageRequest
	UserID   uuid.UUID
	CourseID uuid.UUID
	Sort     Sort
}
