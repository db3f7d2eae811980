package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
)

var reviewSortable = sortable(core.ReviewFieldRating)

// ReviewService coordinates course reviews. Only enrolled users may review a course.
type ReviewService struct {
	users       core.Repository[core.User]
	courses     core.Repository[core.Course]
	enrollments core.Repository[core.Enrollment]
	reviews     core.Repository[core.CourseReview]
	pager       pagination.Pager
	logger      *zap.Logger
	now         func() time.Time
}

// NewReviewService constructs a ReviewService backed by the provided repositories.
func NewReviewService(
	users core.Repository[core.User],
	courses core.Repository[core.Course],
	enrollments core.Repository[core.Enrollment],
	reviews core.Repository[core.CourseReview],
	pager pagination.Pager,
) *ReviewService {
	return &ReviewService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		reviews:     reviews,
		pager:       pager,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *ReviewService) WithClock(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithLogger replaces the no-op logger.
func (s *ReviewService) WithLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

var _ core.ReviewService = (*ReviewService)(nil)

// validRating reports whether r is a whole number within the allowed bounds.
func validRating(r float64) bool {
	return r == math.Trunc(r) && r >= core.MinRating && r <= core.MaxRating
}

// CreateCourseReview records a rating for a course the user is enrolled in.
func (s *ReviewService) CreateCourseReview(ctx context.Context, params core.CreateCourseReviewParams) (*core.CourseReview, error) {
	if params.UserID == uuid.Nil {
		return nil, core.ErrMissingUserID
	}
	if params.CourseID == uuid.Nil {
		return nil, core.ErrMissingCourseID
	}
	if params.Rating == nil {
		return nil, core.ErrMissingRating
	}
	if !validRating(*params.Rating) {
		return nil, core.ErrInvalidRating
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

	enrollment, err := s.enrollments.FindOne(ctx, core.NewQuery().Where(
		core.Eq(core.EnrollmentFieldUserID, params.UserID),
		core.Eq(core.EnrollmentFieldCourseID, params.CourseID),
	))
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, core.ErrNoEnrollment
	}

	existing, err := s.FindCourseReviewByUserAndCourse(ctx, core.FindReviewByUserAndCourseParams{
		UserID:   params.UserID,
		CourseID: params.CourseID,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, core.ErrAlreadyReviewed
	}

	now := s.now().UTC()
	review := core.CourseReview{
		ID:         uuid.New(),
		UserID:     params.UserID,
		CourseID:   params.CourseID,
		Rating:     int(*params.Rating),
		ReviewText: emptyToNil(params.ReviewText),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, core.ErrConflict) {
			s.logger.Warn("concurrent review rejected by storage",
				zap.Stringer("user_id", params.UserID), zap.Stringer("course_id", params.CourseID), zap.Error(err))
			return nil, core.ErrAlreadyReviewed
		}
		return nil, err
	}
	s.logger.Debug("course review created",
		zap.Stringer("review_id", review.ID), zap.Stringer("course_id", review.CourseID), zap.Int("rating", review.Rating))

	return s.FindCourseReviewByID(ctx, core.FindCourseReviewParams{ReviewID: review.ID, ReturnError: true})
}

// FindCourseReviewByID returns a single review.
func (s *ReviewService) FindCourseReviewByID(ctx context.Context, params core.FindCourseReviewParams) (*core.CourseReview, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.reviews, params.ReviewID, q, params.ReturnError, core.ErrReviewNotFound)
}

// FindCourseReviewByUserAndCourse returns the live review a user left on a course.
func (s *ReviewService) FindCourseReviewByUserAndCourse(ctx context.Context, params core.FindReviewByUserAndCourseParams) (*core.CourseReview, error) {
	if params.UserID == uuid.Nil || params.CourseID == uuid.Nil {
		if params.ReturnError {
			return nil, core.ErrReviewNotFound
		}
		return nil, nil
	}
	review, err := s.reviews.FindOne(ctx, core.NewQuery().Where(
		core.Eq(core.ReviewFieldUserID, params.UserID),
		core.Eq(core.ReviewFieldCourseID, params.CourseID),
	))
	if err != nil {
		return nil, err
	}
	if review == nil && params.ReturnError {
		return nil, core.ErrReviewNotFound
	}
	return review, nil
}

// UpdateCourseReview changes the rating or text of a review. A supplied
// rating is always validated, even when it matches the stored one.
func (s *ReviewService) UpdateCourseReview(ctx context.Context, params core.UpdateCourseReviewParams) (*core.CourseReview, error) {
	review, err := s.FindCourseReviewByID(ctx, core.FindCourseReviewParams{ReviewID: params.ReviewID, ReturnError: true})
	if err != nil {
		return nil, err
	}

	changes := core.Changes{}
	if params.Rating != nil {
		if !validRating(*params.Rating) {
			return nil, core.ErrInvalidRating
		}
		if rating := int(*params.Rating); rating != review.Rating {
			changes.Set(core.ReviewFieldRating, rating)
		}
	}
	if params.ReviewText != nil {
		text := emptyToNil(params.ReviewText)
		if !sameString(text, review.ReviewText) {
			changes.Set(core.ReviewFieldReviewText, nullable(text))
		}
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.reviews.Update(ctx, review.ID, changes); err != nil {
			return nil, err
		}
	}

	return s.FindCourseReviewByID(ctx, core.FindCourseReviewParams{ReviewID: review.ID, ReturnError: true})
}

// DeleteCourseReview soft deletes a review.
func (s *ReviewService) DeleteCourseReview(ctx context.Context, params core.DeleteCourseReviewParams) error {
	review, err := s.FindCourseReviewByID(ctx, core.FindCourseReviewParams{ReviewID: params.ReviewID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.reviews.SoftDelete(ctx, review.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("course review deleted", zap.Stringer("review_id", review.ID))
	return nil
}

// FindCourseReviews returns a filtered, paginated collection of reviews.
func (s *ReviewService) FindCourseReviews(ctx context.Context, filter core.CourseReviewFilter) (*core.Page[core.CourseReview], error) {
	q := core.NewQuery()
	if filter.UserID != uuid.Nil {
		q.Where(core.Eq(core.ReviewFieldUserID, filter.UserID))
	}
	if filter.CourseID != uuid.Nil {
		q.Where(core.Eq(core.ReviewFieldCourseID, filter.CourseID))
	}
	if filter.MinRating != nil {
		q.Where(core.GTE(core.ReviewFieldRating, *filter.MinRating))
	}
	if filter.MaxRating != nil {
		q.Where(core.LTE(core.ReviewFieldRating, *filter.MaxRating))
	}
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, reviewSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.CourseReview](ctx, s.pager, s.reviews, q, filter.PageRequest)
}
