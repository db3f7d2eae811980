package app

import (
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/adapter/db"
	"github.com/eslsoft/learnhub/internal/config"
	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/pagination"
	"github.com/eslsoft/learnhub/internal/usecase"
)

// NewLogger builds a zap logger honouring LOG_LEVEL and APP_ENV.
func NewLogger(cfg config.Config) (*zap.Logger, func(), error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development() {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level

	logger, err := zc.Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// NewDriver opens the configured database.
func NewDriver(cfg config.Config, logger *zap.Logger) (*sql.Driver, func(), error) {
	drv, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("database opened", zap.String("driver", cfg.DatabaseDriver))
	return drv, func() { _ = drv.Close() }, nil
}

// NewPager applies the configured page size limits.
func NewPager(cfg config.Config) pagination.Pager {
	return pagination.New(cfg.DefaultPageSize, cfg.MaxPageSize)
}

// NewEnrollmentOptions maps configuration to enrollment policy.
func NewEnrollmentOptions(cfg config.Config) usecase.EnrollmentOptions {
	return usecase.EnrollmentOptions{AllowReenrollment: cfg.AllowReenrollment}
}

func NewUserRepository(drv dialect.Driver) core.Repository[core.User] {
	return db.NewUserRepository(drv)
}

func NewInstructorRepository(drv dialect.Driver) core.Repository[core.Instructor] {
	return db.NewInstructorRepository(drv)
}

func NewCourseRepository(drv dialect.Driver) core.Repository[core.Course] {
	return db.NewCourseRepository(drv)
}

func NewSectionRepository(drv dialect.Driver) core.Repository[core.Section] {
	return db.NewSectionRepository(drv)
}

func NewLessonRepository(drv dialect.Driver) core.Repository[core.Lesson] {
	return db.NewLessonRepository(drv)
}

func NewEnrollmentRepository(drv dialect.Driver) core.Repository[core.Enrollment] {
	return db.NewEnrollmentRepository(drv)
}

func NewProgressRepository(drv dialect.Driver) core.Repository[core.Progress] {
	return db.NewProgressRepository(drv)
}

func NewCourseReviewRepository(drv dialect.Driver) core.Repository[core.CourseReview] {
	return db.NewCourseReviewRepository(drv)
}

// NewUserService attaches the shared logger to the user service.
func NewUserService(users core.Repository[core.User], logger *zap.Logger) *usecase.UserService {
	s := usecase.NewUserService(users)
	s.WithLogger(logger.Named("users"))
	return s
}

// NewInstructorService attaches the shared logger to the instructor service.
func NewInstructorService(
	users core.Repository[core.User],
	instructors core.Repository[core.Instructor],
	pager pagination.Pager,
	logger *zap.Logger,
) *usecase.InstructorService {
	s := usecase.NewInstructorService(users, instructors, pager)
	s.WithLogger(logger.Named("instructors"))
	return s
}

// NewCourseService attaches the shared logger to the course service.
func NewCourseService(
	instructors core.Repository[core.Instructor],
	courses core.Repository[core.Course],
	sections core.Repository[core.Section],
	lessons core.Repository[core.Lesson],
	pager pagination.Pager,
	logger *zap.Logger,
) *usecase.CourseService {
	s := usecase.NewCourseService(instructors, courses, sections, lessons, pager)
	s.WithLogger(logger.Named("courses"))
	return s
}

// NewEnrollmentService attaches the shared logger to the enrollment service.
func NewEnrollmentService(
	users core.Repository[core.User],
	courses core.Repository[core.Course],
	lessons core.Repository[core.Lesson],
	enrollments core.Repository[core.Enrollment],
	progress core.Repository[core.Progress],
	pager pagination.Pager,
	opts usecase.EnrollmentOptions,
	logger *zap.Logger,
) *usecase.EnrollmentService {
	s := usecase.NewEnrollmentService(users, courses, lessons, enrollments, progress, pager, opts)
	s.WithLogger(logger.Named("enrollments"))
	return s
}

// NewReviewService attaches the shared logger to the review service.
func NewReviewService(
	users core.Repository[core.User],
	courses core.Repository[core.Course],
	enrollments core.Repository[core.Enrollment],
	reviews core.Repository[core.CourseReview],
	pager pagination.Pager,
	logger *zap.Logger,
) *usecase.ReviewService {
	s := usecase.NewReviewService(users, courses, enrollments, reviews, pager)
	s.WithLogger(logger.Named("reviews"))
	return s
}
