package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	SectionFieldCourseID   = "course_id"
	SectionFieldTitle      = "title"
	SectionFieldOrderIndex = "order_index"

	SectionEdgeCourse = "course"
)

// Section groups lessons inside a course.
type Section struct {
	ID         uuid.UUID
	CourseID   uuid.UUID
	Title      string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	Edges      SectionEdges
}

// SectionEdges holds eager-loaded relations.
type SectionEdges struct {
	Course *Course
}

// CreateSectionParams holds the input required to create a section.
type CreateSectionParams struct {
	CourseID   uuid.UUID
	Title      string
	OrderIndex *int
}

// FindSectionParams addresses a single section.
type FindSectionParams struct {
	SectionID   uuid.UUID
	ReturnError bool
	Relations   []string
	WithDeleted bool
}

// UpdateSectionParams carries the fields to change.
type UpdateSectionParams struct {
	SectionID  uuid.UUID
	Title      *string
	OrderIndex *int
}

// DeleteSectionParams addresses the section to soft delete.
type DeleteSectionParams struct {
	SectionID uuid.UUID
}

// SectionFilter describes list options for sections.
type SectionFilter struct {
	PageRequest
	CourseID   uuid.UUID
	SearchTerm string
	Sort       Sort
}
