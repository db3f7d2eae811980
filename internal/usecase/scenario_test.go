package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eslsoft/learnhub/internal/adapter/db"
	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
)

type platform struct {
	users       *UserService
	instructors *InstructorService
	courses     *CourseService
	enrollments *EnrollmentService
	reviews     *ReviewService
	clock       *testClock
}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func setupPlatform(t *testing.T, opts EnrollmentOptions) *platform {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_", "=", "_").Replace(t.Name())
	drv, err := db.Open(db.DriverSQLite, "file:"+name+"?mode=memory&_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = drv.Close() })
	require.NoError(t, db.Migrate(ctx, drv))

	userRepo := db.NewUserRepository(drv)
	instructorRepo := db.NewInstructorRepository(drv)
	courseRepo := db.NewCourseRepository(drv)
	sectionRepo := db.NewSectionRepository(drv)
	lessonRepo := db.NewLessonRepository(drv)
	enrollmentRepo := db.NewEnrollmentRepository(drv)
	progressRepo := db.NewProgressRepository(drv)
	reviewRepo := db.NewCourseReviewRepository(drv)
	pager := pagination.New(10, 100)

	p := &platform{
		users:       NewUserService(userRepo),
		instructors: NewInstructorService(userRepo, instructorRepo, pager),
		courses:     NewCourseService(instructorRepo, courseRepo, sectionRepo, lessonRepo, pager),
		enrollments: NewEnrollmentService(userRepo, courseRepo, lessonRepo, enrollmentRepo, progressRepo, pager, opts),
		reviews:     NewReviewService(userRepo, courseRepo, enrollmentRepo, reviewRepo, pager),
		clock:       &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	p.users.WithHashCost(bcrypt.MinCost)
	p.users.WithClock(p.clock.Now)
	p.instructors.WithClock(p.clock.Now)
	p.courses.WithClock(p.clock.Now)
	p.enrollments.WithClock(p.clock.Now)
	p.reviews.WithClock(p.clock.Now)
	return p
}

func (p *platform) user(t *testing.T, name string) *core.User {
	t.Helper()
	u, err := p.users.CreateUser(context.Background(), core.CreateUserParams{Username: name, Password: "password"})
	require.NoError(t, err)
	return u
}

func (p *platform) instructor(t *testing.T, name string) *core.Instructor {
	t.Helper()
	u := p.user(t, name)
	in, err := p.instructors.CreateInstructor(context.Background(), core.CreateInstructorParams{UserID: u.ID})
	require.NoError(t, err)
	return in
}

func TestScenario_LearningJourney(t *testing.T) {
	ctx := context.Background()
	p := setupPlatform(t, EnrollmentOptions{})

	tutor := p.instructor(t, "tutor")
	learner := p.user(t, "learner")

	course, err := p.courses.CreateCourse(ctx, core.CreateCourseParams{InstructorID: tutor.ID, Title: "Go in Practice"})
	require.NoError(t, err)
	assert.Equal(t, core.CourseStatusDraft, course.Status)

	section, err := p.courses.CreateSection(ctx, core.CreateSectionParams{CourseID: course.ID, Title: "Basics"})
	require.NoError(t, err)
	lesson, err := p.courses.CreateLesson(ctx, core.CreateLessonParams{SectionID: section.ID, Title: "Variables"})
	require.NoError(t, err)

	_, err = p.reviews.CreateCourseReview(ctx, core.CreateCourseReviewParams{UserID: learner.ID, CourseID: course.ID, Rating: ptr(5.0)})
	require.ErrorIs(t, err, core.ErrNoEnrollment)
	assert.ErrorIs(t, err, core.ErrPrecondition)

	enrollment, err := p.enrollments.CreateEnrollment(ctx, core.CreateEnrollmentParams{UserID: learner.ID, CourseID: course.ID})
	require.NoError(t, err)
	assert.Equal(t, 0.0, enrollment.CompletionStatus)

	enrolled, err := p.enrollments.IsEnrolled(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	_, err = p.enrollments.CreateEnrollment(ctx, core.CreateEnrollmentParams{UserID: learner.ID, CourseID: course.ID})
	require.ErrorIs(t, err, core.ErrAlreadyEnrolled)

	progress, err := p.enrollments.CreateProgress(ctx, core.CreateProgressParams{EnrollmentID: enrollment.ID, LessonID: lesson.ID})
	require.NoError(t, err)
	assert.False(t, progress.IsCompleted)

	progress, err = p.enrollments.UpdateProgress(ctx, core.UpdateProgressParams{ProgressID: progress.ID, LastWatchedTime: ptr(120), IsCompleted: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 120, progress.LastWatchedTime)
	assert.True(t, progress.IsCompleted)

	review, err := p.reviews.CreateCourseReview(ctx, core.CreateCourseReviewParams{UserID: learner.ID, CourseID: course.ID, Rating: ptr(4.0), ReviewText: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Nil(t, review.ReviewText)

	_, err = p.reviews.CreateCourseReview(ctx, core.CreateCourseReviewParams{UserID: learner.ID, CourseID: course.ID, Rating: ptr(3.0)})
	require.ErrorIs(t, err, core.ErrAlreadyReviewed)

	found, err := p.reviews.FindCourseReviewByUserAndCourse(ctx, core.FindReviewByUserAndCourseParams{UserID: learner.ID, CourseID: course.ID, ReturnError: true})
	require.NoError(t, err)
	assert.Equal(t, review.ID, found.ID)

	require.NoError(t, p.enrollments.DeleteEnrollment(ctx, core.DeleteEnrollmentParams{EnrollmentID: enrollment.ID}))

	_, err = p.enrollments.UpdateProgress(ctx, core.UpdateProgressParams{ProgressID: progress.ID, LastWatchedTime: ptr(200)})
	require.ErrorIs(t, err, core.ErrNoActiveEnrollment)
	assert.ErrorIs(t, err, core.ErrRelationshipBroken)

	enrolled, err = p.enrollments.IsEnrolled(ctx, learner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestScenario_CoursePagination(t *testing.T) {
	ctx := context.Background()
	p := setupPlatform(t, EnrollmentOptions{})
	tutor := p.instructor(t, "tutor")

	for i := 1; i <= 15; i++ {
		_, err := p.courses.CreateCourse(ctx, core.CreateCourseParams{InstructorID: tutor.ID, Title: fmt.Sprintf("Course %02d", i)})
		require.NoError(t, err)
	}

	page, err := p.courses.FindCourses(ctx, core.CourseFilter{PageRequest: core.PageRequest{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, core.PageMeta{TotalItems: 15, ItemCount: 10, ItemsPerPage: 10, TotalPages: 2, CurrentPage: 1}, page.Meta)
	assert.Equal(t, "Course 15", page.Items[0].Title, "newest first by default")
	require.NotNil(t, page.Items[0].Edges.Instructor)
	assert.Equal(t, tutor.ID, page.Items[0].Edges.Instructor.ID)

	page, err = p.courses.FindCourses(ctx, core.CourseFilter{
		PageRequest: core.PageRequest{Page: 2, Limit: 10},
		Sort:        core.Sort{Field: core.CourseFieldTitle, Order: core.SortAsc},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Course 11", page.Items[0].Title)

	page, err = p.courses.FindCourses(ctx, core.CourseFilter{SearchTerm: "COURSE 0"})
	require.NoError(t, err)
	assert.Equal(t, 9, page.Meta.TotalItems)
}

func TestScenario_SoftDeleteVisibility(t *testing.T) {
	ctx := context.Background()
	p := setupPlatform(t, EnrollmentOptions{})
	tutor := p.instructor(t, "tutor")

	course, err := p.courses.CreateCourse(ctx, core.CreateCourseParams{InstructorID: tutor.ID, Title: "Ephemeral"})
	require.NoError(t, err)
	require.NoError(t, p.courses.DeleteCourse(ctx, core.DeleteCourseParams{CourseID: course.ID}))

	got, err := p.courses.FindCourseByID(ctx, core.FindCourseParams{CourseID: course.ID})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = p.courses.FindCourseByID(ctx, core.FindCourseParams{CourseID: course.ID, WithDeleted: true})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.DeletedAt)

	page, err := p.courses.FindCourses(ctx, core.CourseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Meta.TotalItems)

	err = p.courses.DeleteCourse(ctx, core.DeleteCourseParams{CourseID: course.ID})
	assert.ErrorIs(t, err, core.ErrCourseNotFound)

	_, err = p.courses.CreateSection(ctx, core.CreateSectionParams{CourseID: course.ID, Title: "Late"})
	assert.ErrorIs(t, err, core.ErrSectionCourseNotFound)
}

func TestScenario_UpdateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	p := setupPlatform(t, EnrollmentOptions{})
	tutor := p.instructor(t, "tutor")

	course, err := p.courses.CreateCourse(ctx, core.CreateCourseParams{InstructorID: tutor.ID, Title: "Go", Description: ptr("intro")})
	require.NoError(t, err)

	same, err := p.courses.UpdateCourse(ctx, core.UpdateCourseParams{CourseID: course.ID, Title: ptr("Go"), Description: ptr(" intro ")})
	require.NoError(t, err)
	assert.True(t, course.UpdatedAt.Equal(same.UpdatedAt), "no-op update must not touch updated_at")

	changed, err := p.courses.UpdateCourse(ctx, core.UpdateCourseParams{CourseID: course.ID, Status: ptr(core.CourseStatusPublished)})
	require.NoError(t, err)
	assert.Equal(t, core.CourseStatusPublished, changed.Status)
	assert.True(t, changed.UpdatedAt.After(course.UpdatedAt))

	withInstructor, err := p.courses.FindCourseByID(ctx, core.FindCourseParams{CourseID: course.ID, Relations: []string{core.CourseEdgeInstructor}})
	require.NoError(t, err)
	require.NotNil(t, withInstructor.Edges.Instructor)
	assert.Equal(t, tutor.ID, withInstructor.Edges.Instructor.ID)
}

func TestScenario_ReenrollmentPolicy(t *testing.T) {
	ctx := context.Background()

	for _, allow := range []bool{false, true} {
		t.Run(fmt.Sprintf("allow=%v", allow), func(t *testing.T) {
			p := setupPlatform(t, EnrollmentOptions{AllowReenrollment: allow})
			tutor := p.instructor(t, "tutor")
			learner := p.user(t, "learner")
			course, err := p.courses.CreateCourse(ctx, core.CreateCourseParams{InstructorID: tutor.ID, Title: "Go"})
			require.NoError(t, err)

			first, err := p.enrollments.CreateEnrollment(ctx, core.CreateEnrollmentParams{UserID: learner.ID, CourseID: course.ID})
			require.NoError(t, err)
			require.NoError(t, p.enrollments.DeleteEnrollment(ctx, core.DeleteEnrollmentParams{EnrollmentID: first.ID}))

			second, err := p.enrollments.CreateEnrollment(ctx, core.CreateEnrollmentParams{UserID: learner.ID, CourseID: course.ID})
			if allow {
				require.NoError(t, err)
				assert.NotEqual(t, first.ID, second.ID)
			} else {
				assert.ErrorIs(t, err, core.ErrAlreadyEnrolled)
			}
		})
	}
}

func TestScenario_UniqueUsersAndInstructors(t *testing.T) {
	ctx := context.Background()
	p := setupPlatform(t, EnrollmentOptions{})

	u := p.user(t, "alice")
	_, err := p.users.CreateUser(ctx, core.CreateUserParams{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, core.ErrUsernameTaken)

	_, err = p.instructors.CreateInstructor(ctx, core.CreateInstructorParams{UserID: u.ID})
	require.NoError(t, err)
	_, err = p.instructors.CreateInstructor(ctx, core.CreateInstructorParams{UserID: u.ID})
	assert.ErrorIs(t, err, core.ErrAlreadyInstructor)

	page, err := p.instructors.FindInstructors(ctx, core.InstructorFilter{UserID: u.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.TotalItems)
}
