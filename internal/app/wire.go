//go:build wireinject

package app

import (
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"github.com/google/wire"

	"github.com/eslsoft/learnhub/internal/config"
)

// InitializeApp wires every service against the configured database.
func InitializeApp(cfg config.Config) (*App, func(), error) {
	wire.Build(
		NewLogger,
		NewDriver,
		wire.Bind(new(dialect.Driver), new(*sql.Driver)),
		NewPager,
		NewEnrollmentOptions,
		NewUserRepository,
		NewInstructorRepository,
		NewCourseRepository,
		NewSectionRepository,
		NewLessonRepository,
		NewEnrollmentRepository,
		NewProgressRepository,
		NewCourseReviewRepository,
		NewUserService,
		NewInstructorService,
		NewCourseService,
		NewEnrollmentService,
		NewReviewService,
		NewApp,
	)
	return nil, nil, nil
}
