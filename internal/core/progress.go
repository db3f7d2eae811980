package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProgressFieldEnrollmentID    = "enrollment_id"
	ProgressFieldLessonID        = "lesson_id"
	ProgressFieldIsCompleted     = "is_completed"
	ProgressFieldLastWatchedTime = "last_watched_time"

	ProgressEdgeEnrollment = "enrollment"
	ProgressEdgeLesson     = "lesson"
)

// Progress tracks a learner's position in one lesson of an enrollment.
// LastWatchedTime is in seconds.
type Progress struct {
	ID              uuid.UUID
	EnrollmentID    uuid.UUID
	LessonID        uuid.UUID
	IsCompleted     bool
	LastWatchedTime int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
	Edges           ProgressEdges
}

// ProgressEdges holds eager-loaded relations.
type ProgressEdges struct {
	Enrollment *Enrollment
	Lesson     *Lesson
}

// CreateProgressParams holds the input required to start tracking a lesson.
type CreateProgressParams struct {
	EnrollmentID    uuid.UUID
	LessonID        uuid.UUID
	IsCompleted     *bool
	LastWatchedTime *int
}

// FindProgressParams addresses a single progress row.
type FindProgressParams struct {
	ProgressID  uuid.UUID
	ReturnError bool
	Relations   []string
	WithDeleted bool
}

// UpdateProgressParams carries the fields to change.
type UpdateProgressParams struct {
	ProgressID      uuid.UUID
	IsCompleted     *bool
	LastWatchedTime *int
}

// DeleteProgressParams addresses the progress row to soft delete.
type DeleteProgressParams struct {
	ProgressID uuid.UUID
}

// ProgressFilter describes list options for progress rows.
type ProgressFilter struct {
	PageRequest
	EnrollmentID uuid.UUID
	LessonID     uuid.UUID
	IsCompleted  *bool
	Sort         Sort
}
