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
	minInstructorRating = 0
	maxInstructorRating = 5
)

var instructorSortable = sortable(core.InstructorFieldRating)

// InstructorService manages instructor profiles.
type InstructorService struct {
	users       core.Repository[core.User]
	instructors core.Repository[core.Instructor]
	pager       pagination.Pager
	logger      *zap.Logger
	now         func() time.Time
}

// NewInstructorService constructs an InstructorService backed by the provided repositories.
func NewInstructorService(users core.Repository[core.User], instructors core.Repository[core.Instructor], pager pagination.Pager) *InstructorService {
	return &InstructorService{
		users:       users,
		instructors: instructors,
		pager:       pager,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *InstructorService) WithClock(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithLogger replaces the no-op logger.
func (s *InstructorService) WithLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

var _ core.InstructorService = (*InstructorService)(nil)

// CreateInstructor promotes an existing user to instructor.
func (s *InstructorService) CreateInstructor(ctx context.Context, params core.CreateInstructorParams) (*core.Instructor, error) {
	if params.UserID == uuid.Nil {
		return nil, core.ErrMissingUserID
	}
	if r := params.Rating; r != nil && !within(*r, minInstructorRating, maxInstructorRating) {
		return nil, core.ErrInvalidInstructorRating
	}

	ok, err := exists(ctx, s.users, params.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrUserNotFound
	}

	existing, err := s.instructors.FindOne(ctx, core.NewQuery().Where(core.Eq(core.InstructorFieldUserID, params.UserID)))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, core.ErrAlreadyInstructor
	}

	now := s.now().UTC()
	instructor := core.Instructor{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Bio:       trimmedOrNil(params.Bio),
		Rating:    params.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.instructors.Create(ctx, &instructor); err != nil {
		if errors.Is(err, core.ErrConflict) {
			s.logger.Warn("concurrent instructor profile rejected by storage", zap.Stringer("user_id", params.UserID), zap.Error(err))
			return nil, core.ErrAlreadyInstructor
		}
		return nil, err
	}
	s.logger.Debug("instructor created", zap.Stringer("instructor_id", instructor.ID), zap.Stringer("user_id", instructor.UserID))

	return s.FindInstructorByID(ctx, core.FindInstructorParams{InstructorID: instructor.ID, ReturnError: true})
}

// FindInstructorByID returns a single instructor.
func (s *InstructorService) FindInstructorByID(ctx context.Context, params core.FindInstructorParams) (*core.Instructor, error) {
	return lookup(ctx, s.instructors, params.InstructorID,
		core.NewQuery().With(params.Relations...), params.ReturnError, core.ErrInstructorNotFound)
}

// FindInstructors returns a paginated collection of instructors.
func (s *InstructorService) FindInstructors(ctx context.Context, filter core.InstructorFilter) (*core.Page[core.Instructor], error) {
	q := core.NewQuery()
	if filter.UserID != uuid.Nil {
		q.Where(core.Eq(core.InstructorFieldUserID, filter.UserID))
	}
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, instructorSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Instructor](ctx, s.pager, s.instructors, q, filter.PageRequest)
}
