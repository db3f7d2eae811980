package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReviewFieldUserID     = "user_id"
	ReviewFieldCourseID   = "course_id"
	ReviewFieldRating     = "rating"
	ReviewFieldReviewText = "review_text"

	ReviewEdgeUser   = "user"
	ReviewEdgeCourse = "course"

	MinRating = 1
	MaxRating = 5
)

// CourseReview is a learner's rating of a course they are enrolled in.
type CourseReview struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CourseID   uuid.UUID
	Rating     int
	ReviewText *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
	Edges      CourseReviewEdges
}

// CourseReviewEdges holds eager-loaded relations.
type CourseReviewEdges struct {
	User   *User
	Course *Course
}

// CreateCourseReviewParams holds the input required to review a course.
// Rating is a float so that non-integral input can be rejected explicitly.
type CreateCourseReviewParams struct {
	UserID     uuid.UUID
	CourseID   uuid.UUID
	Rating     *float64
	ReviewText *string
}

// FindCourseReviewParams addresses a single review.
type FindCourseReviewParams struct {
	ReviewID    uuid.UUID
	ReturnError bool
	Relations   []string
	WithDeleted bool
}

// FindReviewByUserAndCourseParams probes for the live review of a pair.
type FindReviewByUserAndCourseParams struct {
	UserID      uuid.UUID
	CourseID    uuid.UUID
	ReturnError bool
}

// UpdateCourseReviewParams carries the fields to change.
type UpdateCourseReviewParams struct {
	ReviewID   uuid.UUID
	Rating     *float64
	ReviewText *string
}

// DeleteCourseReviewParams addresses the review to soft delete.
type DeleteCourseReviewParams struct {
	ReviewID uuid.UUID
}

// CourseReviewFilter describes list options for reviews. Rating bounds are inclusive.
type CourseReviewFilter struct {
	PageRequest
	UserID    uuid.UUID
	CourseID  uuid.UUID
	MinRating *int
	MaxRating *int
	Sort      Sort
}
