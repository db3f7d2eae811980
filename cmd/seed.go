package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/app"
	"github.com/eslsoft/learnhub/internal/core"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with a demo instructor, course and learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Migrate(ctx); err != nil {
				return err
			}
			return seed(ctx, a, password)
		})
	},
}

func init() {
	seedCmd.Flags().String("password", "learnhub", "password for the seeded accounts")
	rootCmd.AddCommand(seedCmd)
}

func seed(ctx context.Context, a *app.App, password string) error {
	tutor, err := a.Users.CreateUser(ctx, core.CreateUserParams{Username: "demo-instructor", Password: password})
	if errors.Is(err, core.ErrUsernameTaken) {
		a.Logger.Info("demo data already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed instructor user: %w", err)
	}
	bio, rating := "Writes Go for a living.", 4.8
	instructor, err := a.Instructors.CreateInstructor(ctx, core.CreateInstructorParams{UserID: tutor.ID, Bio: &bio, Rating: &rating})
	if err != nil {
		return fmt.Errorf("seed instructor: %w", err)
	}

	description := "From zero to a production service."
	published := core.CourseStatusPublished
	course, err := a.Courses.CreateCourse(ctx, core.CreateCourseParams{
		InstructorID: instructor.ID,
		Title:        "Practical Go",
		Description:  &description,
		Status:       &published,
	})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	var first *core.Lesson
	for i, title := range []string{"Getting started", "Concurrency"} {
		index := i
		section, err := a.Courses.CreateSection(ctx, core.CreateSectionParams{CourseID: course.ID, Title: title, OrderIndex: &index})
		if err != nil {
			return fmt.Errorf("seed section: %w", err)
		}
		lesson, err := a.Courses.CreateLesson(ctx, core.CreateLessonParams{SectionID: section.ID, Title: title + ": overview"})
		if err != nil {
			return fmt.Errorf("seed lesson: %w", err)
		}
		if first == nil {
			first = lesson
		}
	}

	learner, err := a.Users.CreateUser(ctx, core.CreateUserParams{Username: "demo-learner", Password: password})
	if err != nil {
		return fmt.Errorf("seed learner: %w", err)
	}
	enrollment, err := a.Enrollments.CreateEnrollment(ctx, core.CreateEnrollmentParams{UserID: learner.ID, CourseID: course.ID})
	if err != nil {
		return fmt.Errorf("seed enrollment: %w", err)
	}
	watched, done := 300, true
	if _, err := a.Enrollments.CreateProgress(ctx, core.CreateProgressParams{
		EnrollmentID:    enrollment.ID,
		LessonID:        first.ID,
		IsCompleted:     &done,
		LastWatchedTime: &watched,
	}); err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}
	rating5, text := 5.0, "Clear and to the point."
	if _, err := a.Reviews.CreateCourseReview(ctx, core.CreateCourseReviewParams{
		UserID:     learner.ID,
		CourseID:   course.ID,
		Rating:     &rating5,
		ReviewText: &text,
	}); err != nil {
		return fmt.Errorf("seed review: %w", err)
	}

	a.Logger.Info("demo data seeded", zap.Stringer("course_id", course.ID), zap.Stringer("learner_id", learner.ID))
	return nil
}
