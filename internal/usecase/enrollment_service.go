package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
)

const (
	minCompletionStatus = 0
	maxCompletionStatus = 100
)

var (
	enrollmentSortable = sortable(core.EnrollmentFieldEnrollmentDate, core.EnrollmentFieldCompletionStatus)
	progressSortable   = sortable(core.ProgressFieldLastWatchedTime, core.ProgressFieldIsCompleted)
)

// EnrollmentOptions tunes enrollment policy.
type EnrollmentOptions struct {
	// AllowReenrollment lets a user enroll again after their enrollment was
	// soft deleted. When false any earlier enrollment blocks a new one.
	AllowReenrollment bool
}

// EnrollmentService coordinates enrollments and lesson progress.
type EnrollmentService struct {
	users       core.Repository[core.User]
	courses     core.Repository[core.Course]
	lessons     core.Repository[core.Lesson]
	enrollments core.Repository[core.Enrollment]
	progress    core.Repository[core.Progress]
	pager       pagination.Pager
	opts        EnrollmentOptions
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService backed by the provided repositories.
func NewEnrollmentService(
	users core.Repository[core.User],
	courses core.Repository[core.Course],
	lessons core.Repository[core.Lesson],
	enrollments core.Repository[core.Enrollment],
	progress core.Repository[core.Progress],
	pager pagination.Pager,
	opts EnrollmentOptions,
) *EnrollmentService {
	return &EnrollmentService{
		users:       users,
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		progress:    progress,
		pager:       pager,
		opts:        opts,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *EnrollmentService) WithClock(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithLogger replaces the no-op logger.
func (s *EnrollmentService) WithLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

var _ core.EnrollmentService = (*EnrollmentService)(nil)

// CreateEnrollment registers a user in a course.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, params core.CreateEnrollmentParams) (*core.Enrollment, error) {
	if params.UserID == uuid.Nil {
		return nil, core.ErrMissingUserID
	}
	if params.CourseID == uuid.Nil {
		return nil, core.ErrMissingCourseID
	}

	ok, err := exists(ctx, s.users, params.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrUserNotFound
	}
	ok, err = exists(ctx, s.courses, params.CourseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrCourseNotFound
	}

	probe := core.NewQuery().Where(
		core.Eq(core.EnrollmentFieldUserID, params.UserID),
		core.Eq(core.EnrollmentFieldCourseID, params.CourseID),
	)
	if !s.opts.AllowReenrollment {
		probe.Unscoped()
	}
	existing, err := s.enrollments.FindOne(ctx, probe)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, core.ErrAlreadyEnrolled
	}

	now := s.now().UTC()
	enrollment := core.Enrollment{
		ID:               uuid.New(),
		UserID:           params.UserID,
		CourseID:         params.CourseID,
		EnrollmentDate:   now,
		CompletionStatus: 0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, core.ErrConflict) {
			s.logger.Warn("concurrent enrollment rejected by storage",
				zap.Stringer("user_id", params.UserID), zap.Stringer("course_id", params.CourseID), zap.Error(err))
			return nil, core.ErrAlreadyEnrolled
		}
		return nil, err
	}
	s.logger.Debug("enrollment created",
		zap.Stringer("enrollment_id", enrollment.ID), zap.Stringer("user_id", enrollment.UserID), zap.Stringer("course_id", enrollment.CourseID))

	return s.FindEnrollmentByID(ctx, core.FindEnrollmentParams{EnrollmentID: enrollment.ID, ReturnError: true})
}

// FindEnrollmentByID returns a single enrollment.
func (s *EnrollmentService) FindEnrollmentByID(ctx context.Context, params core.FindEnrollmentParams) (*core.Enrollment, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.enrollments, params.EnrollmentID, q, params.ReturnError, core.ErrEnrollmentNotFound)
}

// UpdateEnrollment changes the completion percentage of an enrollment.
func (s *EnrollmentService) UpdateEnrollment(ctx context.Context, params core.UpdateEnrollmentParams) (*core.Enrollment, error) {
	enrollment, err := s.FindEnrollmentByID(ctx, core.FindEnrollmentParams{EnrollmentID: params.EnrollmentID, ReturnError: true})
	if err != nil {
		return nil, err
	}

	changes := core.Changes{}
	if cs := params.CompletionStatus; cs != nil && *cs != enrollment.CompletionStatus {
		if !within(*cs, minCompletionStatus, maxCompletionStatus) {
			return nil, core.ErrInvalidCompletionStatus
		}
		changes.Set(core.EnrollmentFieldCompletionStatus, *cs)
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.enrollments.Update(ctx, enrollment.ID, changes); err != nil {
			return nil, err
		}
	}

	return s.FindEnrollmentByID(ctx, core.FindEnrollmentParams{EnrollmentID: enrollment.ID, ReturnError: true})
}

// DeleteEnrollment soft deletes an enrollment. Its progress rows stay but can
// no longer be updated.
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, params core.DeleteEnrollmentParams) error {
	enrollment, err := s.FindEnrollmentByID(ctx, core.FindEnrollmentParams{EnrollmentID: params.EnrollmentID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.enrollments.SoftDelete(ctx, enrollment.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("enrollment deleted", zap.Stringer("enrollment_id", enrollment.ID))
	return nil
}

// FindEnrollments returns a filtered, paginated collection of enrollments.
func (s *EnrollmentService) FindEnrollments(ctx context.Context, filter core.EnrollmentFilter) (*core.Page[core.Enrollment], error) {
	q := enrollmentQuery(filter.UserID, filter.CourseID)
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, enrollmentSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Enrollment](ctx, s.pager, s.enrollments, q, filter.PageRequest)
}

// IsEnrolled reports whether the user holds a live enrollment in the course.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || courseID == uuid.Nil {
		return false, nil
	}
	n, err := s.enrollments.Count(ctx, enrollmentQuery(userID, courseID))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func enrollmentQuery(userID, courseID uuid.UUID) *core.Query {
	q := core.NewQuery()
	if userID != uuid.Nil {
		q.Where(core.Eq(core.EnrollmentFieldUserID, userID))
	}
	if courseID != uuid.Nil {
		q.Where(core.Eq(core.EnrollmentFieldCourseID, courseID))
	}
	return q
}

// CreateProgress starts tracking a lesson within an enrollment.
func (s *EnrollmentService) CreateProgress(ctx context.Context, params core.CreateProgressParams) (*core.Progress, error) {
	if params.EnrollmentID == uuid.Nil {
		return nil, core.ErrMissingEnrollmentID
	}
	if params.LessonID == uuid.Nil {
		return nil, core.ErrMissingLessonID
	}

	ok, err := exists(ctx, s.enrollments, params.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrEnrollmentNotFound
	}
	ok, err = exists(ctx, s.lessons, params.LessonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrLessonNotFound
	}

	now := s.now().UTC()
	progress := core.Progress{
		ID:           uuid.New(),
		EnrollmentID: params.EnrollmentID,
		LessonID:     params.LessonID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if params.IsCompleted != nil {
		progress.IsCompleted = *params.IsCompleted
	}
	if params.LastWatchedTime != nil {
		if *params.LastWatchedTime < 0 {
			return nil, core.ErrInvalidLastWatchedTime
		}
		progress.LastWatchedTime = *params.LastWatchedTime
	}
	if err := s.progress.Create(ctx, &progress); err != nil {
		return nil, err
	}
	s.logger.Debug("progress created",
		zap.Stringer("progress_id", progress.ID), zap.Stringer("enrollment_id", progress.EnrollmentID), zap.Stringer("lesson_id", progress.LessonID))

	return s.FindProgressByID(ctx, core.FindProgressParams{ProgressID: progress.ID, ReturnError: true})
}

// FindProgressByID returns a single progress row.
func (s *EnrollmentService) FindProgressByID(ctx context.Context, params core.FindProgressParams) (*core.Progress, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.progress, params.ProgressID, q, params.ReturnError, core.ErrProgressNotFound)
}

// UpdateProgress records lesson progress. The owning enrollment must still be live.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, params core.UpdateProgressParams) (*core.Progress, error) {
	progress, err := s.FindProgressByID(ctx, core.FindProgressParams{
		ProgressID:  params.ProgressID,
		ReturnError: true,
		Relations:   []string{core.ProgressEdgeEnrollment},
	})
	if err != nil {
		return nil, err
	}
	if progress.Edges.Enrollment == nil {
		return nil, core.ErrNoActiveEnrollment
	}

	changes := core.Changes{}
	if params.IsCompleted != nil && *params.IsCompleted != progress.IsCompleted {
		changes.Set(core.ProgressFieldIsCompleted, *params.IsCompleted)
	}
	if lw := params.LastWatchedTime; lw != nil && *lw != progress.LastWatchedTime {
		if *lw < 0 {
			return nil, core.ErrInvalidLastWatchedTime
		}
		changes.Set(core.ProgressFieldLastWatchedTime, *lw)
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.progress.Update(ctx, progress.ID, changes); err != nil {
			return nil, err
		}
	}

	return s.FindProgressByID(ctx, core.FindProgressParams{ProgressID: progress.ID, ReturnError: true})
}

// DeleteProgress soft deletes a progress row.
func (s *EnrollmentService) DeleteProgress(ctx context.Context, params core.DeleteProgressParams) error {
	progress, err := s.FindProgressByID(ctx, core.FindProgressParams{ProgressID: params.ProgressID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.progress.SoftDelete(ctx, progress.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("progress deleted", zap.Stringer("progress_id", progress.ID))
	return nil
}

// FindProgresses returns a filtered, paginated collection of progress rows.
func (s *EnrollmentService) FindProgresses(ctx context.Context, filter core.ProgressFilter) (*core.Page[core.Progress], error) {
	q := core.NewQuery()
	if filter.EnrollmentID != uuid.Nil {
		q.Where(core.Eq(core.ProgressFieldEnrollmentID, filter.EnrollmentID))
	}
	if filter.LessonID != uuid.Nil {
		q.Where(core.Eq(core.ProgressFieldLessonID, filter.LessonID))
	}
	if filter.IsCompleted != nil {
		q.Where(core.Eq(core.ProgressFieldIsCompleted, *filter.IsCompleted))
	}
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, progressSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Progress](ctx, s.pager, s.progress, q, filter.PageRequest)
}
