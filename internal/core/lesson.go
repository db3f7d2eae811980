package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	LessonFieldSectionID  = "section_id"
	LessonFieldTitle      = "title"
	LessonFieldContentURL = "content_url"

	LessonEdgeSection = "section"
)

// Lesson is the smallest content unit, owned by a section.
type Lesson struct {
	ID         uuid.UUID
	SectionID  uuid.UUID
	Title      string
	ContentURL *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	Edges      LessonEdges
}

// LessonEdges holds eager-loaded relations.
type LessonEdges struct {
	Section *Section
}

// CreateLessonParams holds the input required to create a lesson.
type CreateLessonParams struct {
	SectionID  uuid.UUID
	Title      string
	ContentURL *string
}

// FindLessonParams addresses a single lesson.
type FindLessonParams struct {
	LessonID    uuid.UUID
	ReturnError bool
	Relations   []string
	WithDeleted bool
}

// UpdateLessonParams carries the fields to change.
type UpdateLessonParams struct {
	LessonID   uuid.UUID
	Title      *string
	ContentURL *string
}

// DeleteLessonParams addresses the lesson to soft delete.
type DeleteLessonParams struct {
	LessonID uuid.UUID
}

// LessonFilter describes list options for lessons.
type LessonFilter struct {
	PageRequest
	SectionID  uuid.UUID
	SearchTerm string
	Sort       Sort
}
