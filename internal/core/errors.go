package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of these so callers can
// branch on the category with errors.Is.
var (
	// ErrMissingField indicates a required identifier or value was not supplied.
	ErrMissingField = errors.New("missing required field")
	// ErrEmptyField indicates a value was supplied but is blank after trimming.
	ErrEmptyField = errors.New("field cannot be empty")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange indicates a numeric value is outside its allowed bounds.
	ErrInvalidRange = errors.New("value out of range")
	// ErrConflict indicates the write would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")
	// ErrRelationshipBroken indicates a parent relation no longer resolves.
	ErrRelationshipBroken = errors.New("relationship broken")
	// ErrPrecondition indicates a required related record is absent.
	ErrPrecondition = errors.New("precondition failed")
	// ErrValidation represents malformed query or enum input.
	ErrValidation = errors.New("validation error")
)

var (
	ErrMissingInstructorID = fmt.Errorf("instructor id: %w", ErrMissingField)
	ErrMissingCourseID     = fmt.Errorf("course id: %w", ErrMissingField)
	ErrMissingSectionID    = fmt.Errorf("section id: %w", ErrMissingField)
	ErrMissingLessonID     = fmt.Errorf("lesson id: %w", ErrMissingField)
	ErrMissingUserID       = fmt.Errorf("user id: %w", ErrMissingField)
	ErrMissingEnrollmentID = fmt.Errorf("enrollment id: %w", ErrMissingField)
	ErrMissingTitle        = fmt.Errorf("title: %w", ErrMissingField)
	ErrMissingRating       = fmt.Errorf("rating: %w", ErrMissingField)
	ErrMissingUsername     = fmt.Errorf("username: %w", ErrMissingField)
	ErrMissingPassword     = fmt.Errorf("password: %w", ErrMissingField)

	ErrEmptyTitle    = fmt.Errorf("title: %w", ErrEmptyField)
	ErrEmptyUsername = fmt.Errorf("username: %w", ErrEmptyField)

	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrInstructorNotFound    = fmt.Errorf("instructor %w", ErrNotFound)
	ErrCourseNotFound        = fmt.Errorf("course %w", ErrNotFound)
	ErrSectionNotFound       = fmt.Errorf("section %w", ErrNotFound)
	ErrSectionCourseNotFound = fmt.Errorf("section course %w", ErrNotFound)
	ErrLessonNotFound        = fmt.Errorf("lesson %w", ErrNotFound)
	ErrLessonSectionNotFound = fmt.Errorf("lesson section %w", ErrNotFound)
	ErrEnrollmentNotFound    = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrProgressNotFound      = fmt.Errorf("progress %w", ErrNotFound)
	ErrReviewNotFound        = fmt.Errorf("course review %w", ErrNotFound)

	ErrInvalidCompletionStatus = fmt.Errorf("completion status must be between 0 and 100: %w", ErrInvalidRange)
	ErrInvalidLastWatchedTime  = fmt.Errorf("last watched time must not be negative: %w", ErrInvalidRange)
	ErrInvalidRating           = fmt.Errorf("rating must be an integer between 1 and 5: %w", ErrInvalidRange)
	ErrInvalidInstructorRating = fmt.Errorf("instructor rating must be between 0 and 5: %w", ErrInvalidRange)

	ErrAlreadyEnrolled   = fmt.Errorf("enrollment %w", ErrConflict)
	ErrAlreadyReviewed   = fmt.Errorf("course review %w", ErrConflict)
	ErrAlreadyInstructor = fmt.Errorf("instructor for user %w", ErrConflict)
	ErrUsernameTaken     = fmt.Errorf("username %w", ErrConflict)

	ErrNoActiveEnrollment = fmt.Errorf("no active enrollment for progress: %w", ErrRelationshipBroken)
	ErrNoEnrollment       = fmt.Errorf("user is not enrolled in course: %w", ErrPrecondition)

	ErrInvalidCourseStatus = fmt.Errorf("%w: unknown course status", ErrValidation)
	ErrInvalidSortField    = fmt.Errorf("%w: unsupported sort field", ErrValidation)
	ErrInvalidSortOrder    = fmt.Errorf("%w: unsupported sort order", ErrValidation)
)
