package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
)

var (
	courseSortable  = sortable(core.CourseFieldTitle, core.CourseFieldStatus)
	sectionSortable = sortable(core.SectionFieldTitle, core.SectionFieldOrderIndex)
	lessonSortable  = sortable(core.LessonFieldTitle)

	sectionDefaultOrder = core.Order{Field: core.SectionFieldOrderIndex, Order: core.SortAsc}
)

// CourseService coordinates the course → section → lesson hierarchy.
type CourseService struct {
	instructors core.Repository[core.Instructor]
	courses     core.Repository[core.Course]
	sections    core.Repository[core.Section]
	lessons     core.Repository[core.Lesson]
	pager       pagination.Pager
	logger      *zap.Logger
	now         func() time.Time
}

// NewCourseService constructs a CourseService backed by the provided repositories.
func NewCourseService(
	instructors core.Repository[core.Instructor],
	courses core.Repository[core.Course],
	sections core.Repository[core.Section],
	lessons core.Repository[core.Lesson],
	pager pagination.Pager,
) *CourseService {
	return &CourseService{
		instructors: instructors,
		courses:     courses,
		sections:    sections,
		lessons:     lessons,
		pager:       pager,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *CourseService) WithClock(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithLogger replaces the no-op logger.
func (s *CourseService) WithLogger(l *zap.Logger) {
	if l != nil {
		s.logger = l
	}
}

var _ core.CourseService = (*CourseService)(nil)

// FindInstructorByID lets callers confirm an instructor before creating courses.
func (s *CourseService) FindInstructorByID(ctx context.Context, params core.FindInstructorParams) (*core.Instructor, error) {
	return lookup(ctx, s.instructors, params.InstructorID,
		core.NewQuery().With(params.Relations...), params.ReturnError, core.ErrInstructorNotFound)
}

// CreateCourse creates a course owned by an existing instructor.
func (s *CourseService) CreateCourse(ctx context.Context, params core.CreateCourseParams) (*core.Course, error) {
	if params.InstructorID == uuid.Nil {
		return nil, core.ErrMissingInstructorID
	}
	title, err := requiredTitle(params.Title)
	if err != nil {
		return nil, err
	}
	status := core.CourseStatusDraft
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidCourseStatus, *params.Status)
		}
		status = *params.Status
	}

	ok, err := exists(ctx, s.instructors, params.InstructorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrInstructorNotFound
	}

	now := s.now().UTC()
	course := core.Course{
		ID:           uuid.New(),
		InstructorID: params.InstructorID,
		Title:        title,
		Description:  trimmedOrNil(params.Description),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.courses.Create(ctx, &course); err != nil {
		return nil, err
	}
	s.logger.Debug("course created", zap.Stringer("course_id", course.ID), zap.Stringer("instructor_id", course.InstructorID))

	return s.FindCourseByID(ctx, core.FindCourseParams{CourseID: course.ID, ReturnError: true})
}

// FindCourseByID returns a single course.
func (s *CourseService) FindCourseByID(ctx context.Context, params core.FindCourseParams) (*core.Course, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.courses, params.CourseID, q, params.ReturnError, core.ErrCourseNotFound)
}

// UpdateCourse writes only the fields that differ from the stored course.
func (s *CourseService) UpdateCourse(ctx context.Context, params core.UpdateCourseParams) (*core.Course, error) {
	course, err := s.FindCourseByID(ctx, core.FindCourseParams{CourseID: params.CourseID, ReturnError: true})
	if err != nil {
		return nil, err
	}

	changes := core.Changes{}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title != course.Title {
			if title == "" {
				return nil, core.ErrEmptyTitle
			}
			changes.Set(core.CourseFieldTitle, title)
		}
	}
	if params.Description != nil {
		description := trimmedOrNil(params.Description)
		if !sameString(description, course.Description) {
			changes.Set(core.CourseFieldDescription, nullable(description))
		}
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidCourseStatus, *params.Status)
		}
		if *params.Status != course.Status {
			changes.Set(core.CourseFieldStatus, string(*params.Status))
		}
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.courses.Update(ctx, course.ID, changes); err != nil {
			return nil, err
		}
		s.logger.Debug("course updated", zap.Stringer("course_id", course.ID))
	}

	return s.FindCourseByID(ctx, core.FindCourseParams{CourseID: course.ID, ReturnError: true})
}

// DeleteCourse soft deletes a course.
func (s *CourseService) DeleteCourse(ctx context.Context, params core.DeleteCourseParams) error {
	course, err := s.FindCourseByID(ctx, core.FindCourseParams{CourseID: params.CourseID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.courses.SoftDelete(ctx, course.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("course deleted", zap.Stringer("course_id", course.ID))
	return nil
}

// FindCourses returns a filtered, paginated collection of courses with their
// instructor loaded.
func (s *CourseService) FindCourses(ctx context.Context, filter core.CourseFilter) (*core.Page[core.Course], error) {
	q := core.NewQuery().With(core.CourseEdgeInstructor)
	if filter.InstructorID != uuid.Nil {
		q.Where(core.Eq(core.CourseFieldInstructorID, filter.InstructorID))
	}
	if filter.Status != "" {
		q.Where(core.Eq(core.CourseFieldStatus, string(filter.Status)))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		q.Where(core.ContainsFold(term, core.CourseFieldTitle, core.CourseFieldDescription))
	}
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, courseSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Course](ctx, s.pager, s.courses, q, filter.PageRequest)
}

// CreateSection adds a section to an existing course.
func (s *CourseService) CreateSection(ctx context.Context, params core.CreateSectionParams) (*core.Section, error) {
	if params.CourseID == uuid.Nil {
		return nil, core.ErrMissingCourseID
	}
	title, err := requiredTitle(params.Title)
	if err != nil {
		return nil, err
	}

	ok, err := exists(ctx, s.courses, params.CourseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrSectionCourseNotFound
	}

	now := s.now().UTC()
	section := core.Section{
		ID:        uuid.New(),
		CourseID:  params.CourseID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if params.OrderIndex != nil {
		section.OrderIndex = *params.OrderIndex
	}
	if err := s.sections.Create(ctx, &section); err != nil {
		return nil, err
	}
	s.logger.Debug("section created", zap.Stringer("section_id", section.ID), zap.Stringer("course_id", section.CourseID))

	return s.FindSectionByID(ctx, core.FindSectionParams{SectionID: section.ID, ReturnError: true})
}

// FindSectionByID returns a single section.
func (s *CourseService) FindSectionByID(ctx context.Context, params core.FindSectionParams) (*core.Section, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.sections, params.SectionID, q, params.ReturnError, core.ErrSectionNotFound)
}

// UpdateSection writes only the fields that differ from the stored section.
func (s *CourseService) UpdateSection(ctx context.Context, params core.UpdateSectionParams) (*core.Section, error) {
	section, err := s.FindSectionByID(ctx, core.FindSectionParams{SectionID: params.SectionID, ReturnError: true})
	if err != nil {
		return nil, err
	}

	changes := core.Changes{}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title != section.Title {
			if title == "" {
				return nil, core.ErrEmptyTitle
			}
			changes.Set(core.SectionFieldTitle, title)
		}
	}
	if params.OrderIndex != nil && *params.OrderIndex != section.OrderIndex {
		changes.Set(core.SectionFieldOrderIndex, *params.OrderIndex)
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.sections.Update(ctx, section.ID, changes); err != nil {
			return nil, err
		}
	}

	return s.FindSectionByID(ctx, core.FindSectionParams{SectionID: section.ID, ReturnError: true})
}

// DeleteSection soft deletes a section.
func (s *CourseService) DeleteSection(ctx context.Context, params core.DeleteSectionParams) error {
	section, err := s.FindSectionByID(ctx, core.FindSectionParams{SectionID: params.SectionID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.sections.SoftDelete(ctx, section.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("section deleted", zap.Stringer("section_id", section.ID))
	return nil
}

// FindSections lists sections, by default in their display order.
func (s *CourseService) FindSections(ctx context.Context, filter core.SectionFilter) (*core.Page[core.Section], error) {
	q := core.NewQuery().With(core.SectionEdgeCourse)
	if filter.CourseID != uuid.Nil {
		q.Where(core.Eq(core.SectionFieldCourseID, filter.CourseID))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		q.Where(core.ContainsFold(term, core.SectionFieldTitle))
	}
	if err := pagination.ApplySort(q, filter.Sort, sectionDefaultOrder, sectionSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Section](ctx, s.pager, s.sections, q, filter.PageRequest)
}

// CreateLesson adds a lesson to an existing section.
func (s *CourseService) CreateLesson(ctx context.Context, params core.CreateLessonParams) (*core.Lesson, error) {
	if params.SectionID == uuid.Nil {
		return nil, core.ErrMissingSectionID
	}
	title, err := requiredTitle(params.Title)
	if err != nil {
		return nil, err
	}

	ok, err := exists(ctx, s.sections, params.SectionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrLessonSectionNotFound
	}

	now := s.now().UTC()
	lesson := core.Lesson{
		ID:         uuid.New(),
		SectionID:  params.SectionID,
		Title:      title,
		ContentURL: trimmedOrNil(params.ContentURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.lessons.Create(ctx, &lesson); err != nil {
		return nil, err
	}
	s.logger.Debug("lesson created", zap.Stringer("lesson_id", lesson.ID), zap.Stringer("section_id", lesson.SectionID))

	return s.FindLessonByID(ctx, core.FindLessonParams{LessonID: lesson.ID, ReturnError: true})
}

// FindLessonByID returns a single lesson.
func (s *CourseService) FindLessonByID(ctx context.Context, params core.FindLessonParams) (*core.Lesson, error) {
	q := core.NewQuery().With(params.Relations...)
	if params.WithDeleted {
		q.Unscoped()
	}
	return lookup(ctx, s.lessons, params.LessonID, q, params.ReturnError, core.ErrLessonNotFound)
}

// UpdateLesson writes only the fields that differ from the stored lesson.
func (s *CourseService) UpdateLesson(ctx context.Context, params core.UpdateLessonParams) (*core.Lesson, error) {
	lesson, err := s.FindLessonByID(ctx, core.FindLessonParams{LessonID: params.LessonID, ReturnError: true})
	if err != nil {
		return nil, err
	}

	changes := core.Changes{}
	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title != lesson.Title {
			if title == "" {
				return nil, core.ErrEmptyTitle
			}
			changes.Set(core.LessonFieldTitle, title)
		}
	}
	if params.ContentURL != nil {
		contentURL := trimmedOrNil(params.ContentURL)
		if !sameString(contentURL, lesson.ContentURL) {
			changes.Set(core.LessonFieldContentURL, nullable(contentURL))
		}
	}

	if !changes.Empty() {
		changes.Set(core.FieldUpdatedAt, s.now().UTC())
		if err := s.lessons.Update(ctx, lesson.ID, changes); err != nil {
			return nil, err
		}
	}

	return s.FindLessonByID(ctx, core.FindLessonParams{LessonID: lesson.ID, ReturnError: true})
}

// DeleteLesson soft deletes a lesson.
func (s *CourseService) DeleteLesson(ctx context.Context, params core.DeleteLessonParams) error {
	lesson, err := s.FindLessonByID(ctx, core.FindLessonParams{LessonID: params.LessonID, ReturnError: true})
	if err != nil {
		return err
	}
	if err := s.lessons.SoftDelete(ctx, lesson.ID, s.now().UTC()); err != nil {
		return err
	}
	s.logger.Debug("lesson deleted", zap.Stringer("lesson_id", lesson.ID))
	return nil
}

// FindLessons returns a filtered, paginated collection of lessons.
func (s *CourseService) FindLessons(ctx context.Context, filter core.LessonFilter) (*core.Page[core.Lesson], error) {
	q := core.NewQuery().With(core.LessonEdgeSection)
	if filter.SectionID != uuid.Nil {
		q.Where(core.Eq(core.LessonFieldSectionID, filter.SectionID))
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		q.Where(core.ContainsFold(term, core.LessonFieldTitle))
	}
	if err := pagination.ApplySort(q, filter.Sort, pagination.CreatedDesc, lessonSortable); err != nil {
		return nil, err
	}
	return pagination.Paginate[core.Lesson](ctx, s.pager, s.lessons, q, filter.PageRequest)
}
