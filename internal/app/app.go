package app

import (
	"context"

	"entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/eslsoft/learnhub/internal/adapter/db"
	"github.com/eslsoft/learnhub/internal/core"
	"github.com/eslsoft/learnhub/internal/usecase"
)

// App bundles the services backed by one database connection.
type App struct {
	Courses     core.CourseService
	Enrollments core.EnrollmentService
	Reviews     core.ReviewService
	Users       core.UserService
	Instructors core.InstructorService
	Driver      *sql.Driver
	Logger      *zap.Logger
}

// NewApp constructs an App from the provided dependencies.
func NewApp(
	courses *usecase.CourseService,
	enrollments *usecase.EnrollmentService,
	reviews *usecase.ReviewService,
	users *usecase.UserService,
	instructors *usecase.InstructorService,
	drv *sql.Driver,
	logger *zap.Logger,
) *App {
	return &App{
		Courses:     courses,
		Enrollments: enrollments,
		Reviews:     reviews,
		Users:       users,
		Instructors: instructors,
		Driver:      drv,
		Logger:      logger,
	}
}

// Migrate creates any missing tables, columns and indexes.
func (a *App) Migrate(ctx context.Context) error {
	if err := db.Migrate(ctx, a.Driver); err != nil {
		return err
	}
	a.Logger.Info("schema migrated")
	return nil
}
