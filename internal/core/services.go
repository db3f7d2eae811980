package core

import (
	"context"

	"github.com/google/uuid"
)

// CourseService exposes the content hierarchy use cases: courses, sections and lessons.
type CourseService interface {
	FindInstructorByID(ctx context.Context, params FindInstructorParams) (*Instructor, error)

	CreateCourse(ctx context.Context, params CreateCourseParams) (*Course, error)
	FindCourseByID(ctx context.Context, params FindCourseParams) (*Course, error)
	UpdateCourse(ctx context.Context, params UpdateCourseParams) (*Course, error)
	DeleteCourse(ctx context.Context, params DeleteCourseParams) error
	FindCourses(ctx context.Context, filter CourseFilter) (*Page[Course], error)

	CreateSection(ctx context.Context, params CreateSectionParams) (*Section, error)
	FindSectionByID(ctx context.Context, params FindSectionParams) (*Section, error)
	UpdateSection(ctx context.Context, params UpdateSectionParams) (*Section, error)
	DeleteSection(ctx context.Context, params DeleteSectionParams) error
	FindSections(ctx context.Context, filter SectionFilter) (*Page[Section], error)

	CreateLesson(ctx context.Context, params CreateLessonParams) (*Lesson, error)
	FindLessonByID(ctx context.Context, params FindLessonParams) (*Lesson, error)
	UpdateLesson(ctx context.Context, params UpdateLessonParams) (*Lesson, error)
	DeleteLesson(ctx context.Context, params DeleteLessonParams) error
	FindLessons(ctx context.Context, filter LessonFilter) (*Page[Lesson], error)
}

// EnrollmentService exposes enrollment and lesson progress use cases.
type EnrollmentService interface {
	CreateEnrollment(ctx context.Context, params CreateEnrollmentParams) (*Enrollment, error)
	FindEnrollmentByID(ctx context.Context, params FindEnrollmentParams) (*Enrollment, error)
	UpdateEnrollment(ctx context.Context, params UpdateEnrollmentParams) (*Enrollment, error)
	DeleteEnrollment(ctx context.Context, params DeleteEnrollmentParams) error
	FindEnrollments(ctx context.Context, filter EnrollmentFilter) (*Page[Enrollment], error)
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)

	CreateProgress(ctx context.Context, params CreateProgressParams) (*Progress, error)
	FindProgressByID(ctx context.Context, params FindProgressParams) (*Progress, error)
	UpdateProgress(ctx context.Context, params UpdateProgressParams) (*Progress, error)
	DeleteProgress(ctx context.Context, params DeleteProgressParams) error
	FindProgresses(ctx context.Context, filter ProgressFilter) (*Page[Progress], error)
}

// ReviewService exposes the course feedback use cases.
type ReviewService interface {
	CreateCourseReview(ctx context.Context, params CreateCourseReviewParams) (*CourseReview, error)
	FindCourseReviewByID(ctx context.Context, params FindCourseReviewParams) (*CourseReview, error)
	FindCourseReviewByUserAndCourse(ctx context.Context, params FindReviewByUserAndCourseParams) (*CourseReview, error)
	UpdateCourseReview(ctx context.Context, params UpdateCourseReviewParams) (*CourseReview, error)
	DeleteCourseReview(ctx context.Context, params DeleteCourseReviewParams) error
	FindCourseReviews(ctx context.Context, filter CourseReviewFilter) (*Page[CourseReview], error)
}

// UserService exposes account registration and lookup.
type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	FindUserByID(ctx context.Context, params FindUserParams) (*User, error)
}

// InstructorService exposes instructor profile use cases.
type InstructorService interface {
	CreateInstructor(ctx context.Context, params CreateInstructorParams) (*Instructor, error)
	FindInstructorByID(ctx context.Context, params FindInstructorParams) (*Instructor, error)
	FindInstructors(ctx context.Context, filter InstructorFilter) (*Page[Instructor], error)
}
