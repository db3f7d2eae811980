package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
)

type courseStubs struct {
	instructors *stubRepo[core.Instructor]
	courses     *stubRepo[core.Course]
	sections    *stubRepo[core.Section]
	lessons     *stubRepo[core.Lesson]
}

func newCourseService(st courseStubs, now time.Time) *CourseService {
	if st.instructors == nil {
		st.instructors = &stubRepo[core.Instructor]{}
	}
	if st.courses == nil {
		st.courses = &stubRepo[core.Course]{}
	}
	if st.sections == nil {
		st.sections = &stubRepo[core.Section]{}
	}
	if st.lessons == nil {
		st.lessons = &stubRepo[core.Lesson]{}
	}
	service := NewCourseService(st.instructors, st.courses, st.sections, st.lessons, pagination.New(10, 100))
	service.WithClock(func() time.Time { return now })
	return service
}

func TestCourseService_CreateCourseValidation(t *testing.T) {
	instructorID := uuid.New()
	bogus := core.CourseStatus("LIVE")

	tests := []struct {
		name    string
		params  core.CreateCourseParams
		wantErr error
	}{
		{name: "missing instructor", params: core.CreateCourseParams{Title: "Go"}, wantErr: core.ErrMissingInstructorID},
		{name: "missing title", params: core.CreateCourseParams{InstructorID: instructorID}, wantErr: core.ErrMissingTitle},
		{name: "blank title", params: core.CreateCourseParams{InstructorID: instructorID, Title: "   "}, wantErr: core.ErrEmptyTitle},
		{name: "invalid status", params: core.CreateCourseParams{InstructorID: instructorID, Title: "Go", Status: &bogus}, wantErr: core.ErrInvalidCourseStatus},
		{name: "unknown instructor", params: core.CreateCourseParams{InstructorID: instructorID, Title: "Go"}, wantErr: core.ErrInstructorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			service := newCourseService(courseStubs{
				courses: &stubRepo[core.Course]{
					createFn: func(context.Context, *core.Course) error {
						created = true
						return nil
					},
				},
			}, time.Now())

			got, err := service.CreateCourse(context.Background(), tt.params)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			assert.False(t, created, "no write may happen on validation failure")
		})
	}

	_, err := newCourseService(courseStubs{}, time.Now()).CreateCourse(context.Background(), core.CreateCourseParams{Title: "Go"})
	assert.ErrorIs(t, err, core.ErrMissingField)
}

func TestCourseService_CreateCourseDefaults(t *testing.T) {
	fixedNow := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	instructor := core.Instructor{ID: uuid.New(), UserID: uuid.New()}
	var captured core.Course

	service := newCourseService(courseStubs{
		instructors: &stubRepo[core.Instructor]{findOneFn: returning(instructor)},
		courses: &stubRepo[core.Course]{
			createFn: func(_ context.Context, c *core.Course) error {
				captured = *c
				return nil
			},
			findOneFn: func(context.Context, *core.Query) (*core.Course, error) {
				cp := captured
				return &cp, nil
			},
		},
	}, fixedNow)

	got, err := service.CreateCourse(context.Background(), core.CreateCourseParams{
		InstructorID: instructor.ID,
		Title:        "  Go Basics  ",
		Description:  ptr("   "),
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEqual(t, uuid.Nil, captured.ID)
	assert.Equal(t, "Go Basics", captured.Title)
	assert.Nil(t, captured.Description)
	assert.Equal(t, core.CourseStatusDraft, captured.Status)
	assert.Equal(t, fixedNow, captured.CreatedAt)
	assert.Equal(t, fixedNow, captured.UpdatedAt)
	assert.Equal(t, captured.ID, got.ID)
}

func TestCourseService_UpdateCourseDiffOnly(t *testing.T) {
	fixedNow := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	stored := core.Course{
		ID:          uuid.New(),
		Title:       "Go",
		Description: ptr("intro"),
		Status:      core.CourseStatusDraft,
	}

	var updates []core.Changes
	service := newCourseService(courseStubs{
		courses: &stubRepo[core.Course]{
			findOneFn: returning(stored),
			updateFn: func(_ context.Context, id uuid.UUID, changes core.Changes) error {
				assert.Equal(t, stored.ID, id)
				updates = append(updates, changes)
				return nil
			},
		},
	}, fixedNow)

	_, err := service.UpdateCourse(context.Background(), core.UpdateCourseParams{
		CourseID:    stored.ID,
		Title:       ptr("  Go  "),
		Description: ptr("intro"),
		Status:      ptr(core.CourseStatusDraft),
	})
	require.NoError(t, err)
	assert.Empty(t, updates, "unchanged values must not write")

	_, err = service.UpdateCourse(context.Background(), core.UpdateCourseParams{
		CourseID:    stored.ID,
		Description: ptr(""),
		Status:      ptr(core.CourseStatusArchived),
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, core.Changes{
		core.CourseFieldDescription: nil,
		core.CourseFieldStatus:      string(core.CourseStatusArchived),
		core.FieldUpdatedAt:         fixedNow,
	}, updates[0])
}

func TestCourseService_UpdateCourseValidation(t *testing.T) {
	stored := core.Course{ID: uuid.New(), Title: "Go", Status: core.CourseStatusDraft}
	service := newCourseService(courseStubs{
		courses: &stubRepo[core.Course]{
			findOneFn: returning(stored),
			updateFn: func(context.Context, uuid.UUID, core.Changes) error {
				t.Fatal("unexpected write")
				return nil
			},
		},
	}, time.Now())

	_, err := service.UpdateCourse(context.Background(), core.UpdateCourseParams{CourseID: stored.ID, Title: ptr("  ")})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	_, err = service.UpdateCourse(context.Background(), core.UpdateCourseParams{CourseID: stored.ID, Status: ptr(core.CourseStatus("LIVE"))})
	assert.ErrorIs(t, err, core.ErrInvalidCourseStatus)
	assert.ErrorIs(t, err, core.ErrValidation)

	missing := newCourseService(courseStubs{}, time.Now())
	_, err = missing.UpdateCourse(context.Background(), core.UpdateCourseParams{CourseID: uuid.New(), Title: ptr("x")})
	assert.ErrorIs(t, err, core.ErrCourseNotFound)
}

func TestCourseService_FindCourseByIDAbsent(t *testing.T) {
	service := newCourseService(courseStubs{}, time.Now())

	got, err := service.FindCourseByID(context.Background(), core.FindCourseParams{CourseID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = service.FindCourseByID(context.Background(), core.FindCourseParams{CourseID: uuid.New(), ReturnError: true})
	assert.ErrorIs(t, err, core.ErrCourseNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = service.FindCourseByID(context.Background(), core.FindCourseParams{ReturnError: true})
	assert.ErrorIs(t, err, core.ErrCourseNotFound)
}

func TestCourseService_FindCoursesBuildsQuery(t *testing.T) {
	instructorID := uuid.New()
	var captured *core.Query

	service := newCourseService(courseStubs{
		courses: &stubRepo[core.Course]{
			countFn: func(_ context.Context, q *core.Query) (int, error) {
				captured = q
				return 0, nil
			},
		},
	}, time.Now())

	page, err := service.FindCourses(context.Background(), core.CourseFilter{
		InstructorID: instructorID,
		Status:       core.CourseStatusPublished,
		SearchTerm:   " golang ",
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Meta.CurrentPage)

	require.NotNil(t, captured)
	assert.Equal(t, []core.Predicate{
		core.Eq(core.CourseFieldInstructorID, instructorID),
		core.Eq(core.CourseFieldStatus, "PUBLISHED"),
		core.ContainsFold("golang", core.CourseFieldTitle, core.CourseFieldDescription),
	}, captured.Predicates)
	assert.Equal(t, []core.Order{
		{Field: core.FieldCreatedAt, Order: core.SortDesc},
		{Field: core.FieldID, Order: core.SortDesc},
	}, captured.Orders)
	assert.Equal(t, []string{core.CourseEdgeInstructor}, captured.Relations)

	_, err = service.FindCourses(context.Background(), core.CourseFilter{Sort: core.Sort{Field: "instructor_id"}})
	assert.ErrorIs(t, err, core.ErrInvalidSortField)
}

func TestCourseService_FindSectionsDefaultOrder(t *testing.T) {
	var captured *core.Query
	service := newCourseService(courseStubs{
		sections: &stubRepo[core.Section]{
			countFn: func(_ context.Context, q *core.Query) (int, error) {
				captured = q
				return 0, nil
			},
		},
	}, time.Now())

	_, err := service.FindSections(context.Background(), core.SectionFilter{CourseID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []core.Order{
		{Field: core.SectionFieldOrderIndex, Order: core.SortAsc},
		{Field: core.FieldID, Order: core.SortAsc},
	}, captured.Orders)
	assert.Equal(t, []string{core.SectionEdgeCourse}, captured.Relations)
}

func TestCourseService_CreateSectionAndLesson(t *testing.T) {
	fixedNow := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("section requires live course", func(t *testing.T) {
		service := newCourseService(courseStubs{}, fixedNow)
		_, err := service.CreateSection(context.Background(), core.CreateSectionParams{CourseID: uuid.New(), Title: "Intro"})
		assert.ErrorIs(t, err, core.ErrSectionCourseNotFound)

		_, err = service.CreateSection(context.Background(), core.CreateSectionParams{Title: "Intro"})
		assert.ErrorIs(t, err, core.ErrMissingCourseID)
	})

	t.Run("section defaults order index", func(t *testing.T) {
		var captured core.Section
		service := newCourseService(courseStubs{
			courses: &stubRepo[core.Course]{findOneFn: returning(core.Course{ID: uuid.New()})},
			sections: &stubRepo[core.Section]{
				createFn: func(_ context.Context, s *core.Section) error {
					captured = *s
					return nil
				},
				findOneFn: func(context.Context, *core.Query) (*core.Section, error) {
					cp := captured
					return &cp, nil
				},
			},
		}, fixedNow)

		got, err := service.CreateSection(context.Background(), core.CreateSectionParams{CourseID: uuid.New(), Title: " Intro "})
		require.NoError(t, err)
		assert.Equal(t, "Intro", got.Title)
		assert.Equal(t, 0, got.OrderIndex)
	})

	t.Run("lesson trims content url", func(t *testing.T) {
		var captured core.Lesson
		service := newCourseService(courseStubs{
			sections: &stubRepo[core.Section]{findOneFn: returning(core.Section{ID: uuid.New()})},
			lessons: &stubRepo[core.Lesson]{
				createFn: func(_ context.Context, l *core.Lesson) error {
					captured = *l
					return nil
				},
				findOneFn: func(context.Context, *core.Query) (*core.Lesson, error) {
					cp := captured
					return &cp, nil
				},
			},
		}, fixedNow)

		got, err := service.CreateLesson(context.Background(), core.CreateLessonParams{
			SectionID:  uuid.New(),
			Title:      "Variables",
			ContentURL: ptr("  https://cdn.local/v.mp4 "),
		})
		require.NoError(t, err)
		require.NotNil(t, got.ContentURL)
		assert.Equal(t, "https://cdn.local/v.mp4", *got.ContentURL)

		_, err = newCourseService(courseStubs{}, fixedNow).CreateLesson(context.Background(), core.CreateLessonParams{SectionID: uuid.New(), Title: "x"})
		assert.ErrorIs(t, err, core.ErrLessonSectionNotFound)
	})
}

func TestCourseService_FindInstructorByID(t *testing.T) {
	id := uuid.New()
	service := newCourseService(courseStubs{
		instructors: &stubRepo[core.Instructor]{findOneFn: returning(core.Instructor{ID: id})},
	}, time.Now())

	got, err := service.FindInstructorByID(context.Background(), core.FindInstructorParams{InstructorID: id})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	missing := newCourseService(courseStubs{}, time.Now())
	got, err = missing.FindInstructorByID(context.Background(), core.FindInstructorParams{InstructorID: id})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = missing.FindInstructorByID(context.Background(), core.FindInstructorParams{InstructorID: id, ReturnError: true})
	assert.ErrorIs(t, err, core.ErrInstructorNotFound)
}

func TestCourseService_UpdateSectionAndLesson(t *testing.T) {
	fixedNow := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	section := core.Section{ID: uuid.New(), Title: "Basics", OrderIndex: 1}
	lesson := core.Lesson{ID: uuid.New(), Title: "Intro", ContentURL: ptr("https://cdn/a.mp4")}

	var sectionChanges, lessonChanges []core.Changes
	service := newCourseService(courseStubs{
		sections: &stubRepo[core.Section]{
			findOneFn: returning(section),
			updateFn: func(_ context.Context, _ uuid.UUID, c core.Changes) error {
				sectionChanges = append(sectionChanges, c)
				return nil
			},
		},
		lessons: &stubRepo[core.Lesson]{
			findOneFn: returning(lesson),
			updateFn: func(_ context.Context, _ uuid.UUID, c core.Changes) error {
				lessonChanges = append(lessonChanges, c)
				return nil
			},
		},
	}, fixedNow)
	ctx := context.Background()

	_, err := service.UpdateSection(ctx, core.UpdateSectionParams{SectionID: section.ID, Title: ptr(" Basics "), OrderIndex: ptr(1)})
	require.NoError(t, err)
	assert.Empty(t, sectionChanges)

	_, err = service.UpdateSection(ctx, core.UpdateSectionParams{SectionID: section.ID, Title: ptr("  ")})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	_, err = service.UpdateSection(ctx, core.UpdateSectionParams{SectionID: section.ID, OrderIndex: ptr(3)})
	require.NoError(t, err)
	require.Len(t, sectionChanges, 1)
	assert.Equal(t, core.Changes{core.SectionFieldOrderIndex: 3, core.FieldUpdatedAt: fixedNow}, sectionChanges[0])

	_, err = service.UpdateLesson(ctx, core.UpdateLessonParams{LessonID: lesson.ID, ContentURL: ptr("  ")})
	require.NoError(t, err)
	require.Len(t, lessonChanges, 1)
	assert.Equal(t, core.Changes{core.LessonFieldContentURL: nil, core.FieldUpdatedAt: fixedNow}, lessonChanges[0])
}

func TestCourseService_DeleteSectionAndLesson(t *testing.T) {
	fixedNow := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("missing rows", func(t *testing.T) {
		softDeleted := false
		onDelete := func(context.Context, uuid.UUID, time.Time) error {
			softDeleted = true
			return nil
		}
		service := newCourseService(courseStubs{
			sections: &stubRepo[core.Section]{softDeleteFn: onDelete},
			lessons:  &stubRepo[core.Lesson]{softDeleteFn: onDelete},
		}, fixedNow)

		err := service.DeleteSection(ctx, core.DeleteSectionParams{SectionID: uuid.New()})
		assert.ErrorIs(t, err, core.ErrSectionNotFound)
		err = service.DeleteLesson(ctx, core.DeleteLessonParams{LessonID: uuid.New()})
		assert.ErrorIs(t, err, core.ErrLessonNotFound)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.False(t, softDeleted)
	})

	t.Run("soft deletes live rows", func(t *testing.T) {
		section := core.Section{ID: uuid.New()}
		lesson := core.Lesson{ID: uuid.New()}
		deleted := map[uuid.UUID]time.Time{}
		onDelete := func(_ context.Context, id uuid.UUID, at time.Time) error {
			deleted[id] = at
			return nil
		}
		service := newCourseService(courseStubs{
			sections: &stubRepo[core.Section]{findOneFn: returning(section), softDeleteFn: onDelete},
			lessons:  &stubRepo[core.Lesson]{findOneFn: returning(lesson), softDeleteFn: onDelete},
		}, fixedNow)

		require.NoError(t, service.DeleteSection(ctx, core.DeleteSectionParams{SectionID: section.ID}))
		require.NoError(t, service.DeleteLesson(ctx, core.DeleteLessonParams{LessonID: lesson.ID}))
		assert.Equal(t, map[uuid.UUID]time.Time{section.ID: fixedNow, lesson.ID: fixedNow}, deleted)
	})
}

func TestCourseService_FindLessonsBuildsQuery(t *testing.T) {
	sectionID := uuid.New()
	stored := core.Lesson{ID: uuid.New(), SectionID: sectionID, Title: "Channels"}
	var counted, listed *core.Query

	service := newCourseService(courseStubs{
		lessons: &stubRepo[core.Lesson]{
			countFn: func(_ context.Context, q *core.Query) (int, error) {
				counted = q
				return 1, nil
			},
			listFn: func(_ context.Context, q *core.Query, limit, offset int) ([]core.Lesson, error) {
				listed = q
				assert.Equal(t, 10, limit)
				assert.Equal(t, 0, offset)
				return []core.Lesson{stored}, nil
			},
		},
	}, time.Now())

	page, err := service.FindLessons(context.Background(), core.LessonFilter{SectionID: sectionID, SearchTerm: " chan "})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, stored.ID, page.Items[0].ID)
	assert.Equal(t, core.PageMeta{TotalItems: 1, ItemCount: 1, ItemsPerPage: 10, TotalPages: 1, CurrentPage: 1}, page.Meta)

	require.NotNil(t, counted)
	assert.Same(t, counted, listed)
	assert.Equal(t, []core.Predicate{
		core.Eq(core.LessonFieldSectionID, sectionID),
		core.ContainsFold("chan", core.LessonFieldTitle),
	}, counted.Predicates)
	assert.Equal(t, []core.Order{
		{Field: core.FieldCreatedAt, Order: core.SortDesc},
		{Field: core.FieldID, Order: core.SortDesc},
	}, counted.Orders)
	assert.Equal(t, []string{core.LessonEdgeSection}, counted.Relations)
	assert.False(t, counted.WithDeleted)

	_, err = service.FindLessons(context.Background(), core.LessonFilter{Sort: core.Sort{Field: core.LessonFieldContentURL}})
	assert.ErrorIs(t, err, core.ErrInvalidSortField)
}
