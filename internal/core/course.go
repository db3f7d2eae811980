package core

import (
	"time"

	"github.com/google/uuid"
)

// CourseStatus denotes the lifecycle stage for a course. Any status may follow
// any other; the workflow order is a convention of the callers.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusReview    CourseStatus = "REVIEW"
	CourseStatusPublished CourseStatus = "PUBLISHED"
	CourseStatusArchived  CourseStatus = "ARCHIVED"
	CourseStatusDeleted   CourseStatus = "DELETED"
)

// Valid reports whether s is one of the known statuses.
func (s CourseStatus) Valid() bool {
	switch s {
	case CourseStatusDraft, CourseStatusReview, CourseStatusPublished, CourseStatusArchived, CourseStatusDeleted:
		return true
	}
	return false
}

const (
	CourseFieldInstructorID = "instructor_id"
	CourseFieldTitle        = "title"
	CourseFieldDescription  = "description"
	CourseFieldStatus       = "status"

	CourseEdgeInstructor = "instructor"
)

// Course is the root of the content hierarchy.
type Course struct {
	ID           uuid.UUID
	InstructorID uuid.UUID
	Title        string
	Description  *string
	Status       CourseStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
	Edges        CourseEdges
}

// CourseEdges holds eager-loaded relations.
type CourseEdges struct {
	Instructor *Instructor
}

// CreateCourseParams holds the input required to create a course.
type CreateCourseParams struct {
	InstructorID uuid.UUID
	Title        string
	Description  *string
	Status       *CourseStatus
}

// FindCourseParams addresses a single course.
type FindCourseParams struct {
	CourseID    uuid.UUID
	ReturnError bool
	Relations   []string
	WithDeleted bool
}

// UpdateCourseParams carries the fields to change. Nil fields are left alone.
type UpdateCourseParams struct {
	CourseID    uuid.UUID
	Title       *string
	Description *string
	Status      *CourseStatus
}

// DeleteCourseParams addresses the course to soft delete.
type DeleteCourseParams struct {
	CourseID uuid.UUID
}

// CourseFilter describes pagination, filtering and sorting for courses.
type CourseFilter struct {
	PageRequest
	InstructorID uuid.UUID
	Status       CourseStatus
	SearchTerm   string
	Sort         Sort
}
