package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var enrollmentTable = &table[core.Enrollment]{
	name: "enrollments",
	columns: []string{
		core.FieldID,
		core.EnrollmentFieldUserID,
		core.EnrollmentFieldCourseID,
		core.EnrollmentFieldEnrollmentDate,
		core.EnrollmentFieldCompletionStatus,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Enrollment, error) {
		var (
			e         core.Enrollment
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&e.ID, &e.UserID, &e.CourseID, &e.EnrollmentDate, &e.CompletionStatus, &e.CreatedAt, &e.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		e.DeletedAt = nullableTime(deletedAt)
		return &e, nil
	},
	values: func(e *core.Enrollment) []any {
		return []any{e.ID, e.UserID, e.CourseID, e.EnrollmentDate, e.CompletionStatus, e.CreatedAt, e.UpdatedAt, ptrValue(e.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Enrollment]{
		core.EnrollmentEdgeUser: func(ctx context.Context, drv dialect.Driver, nodes []*core.Enrollment, rest []string) error {
			return loadEdge(ctx, drv, userTable, nodes, rest,
				func(e *core.Enrollment) uuid.UUID { return e.UserID },
				func(u *core.User) uuid.UUID { return u.ID },
				func(e *core.Enrollment, u *core.User) { e.Edges.User = u },
			)
		},
		core.EnrollmentEdgeCourse: func(ctx context.Context, drv dialect.Driver, nodes []*core.Enrollment, rest []string) error {
			return loadEdge(ctx, drv, courseTable, nodes, rest,
				func(e *core.Enrollment) uuid.UUID { return e.CourseID },
				func(c *core.Course) uuid.UUID { return c.ID },
				func(e *core.Enrollment, c *core.Course) { e.Edges.Course = c },
			)
		},
	},
}

// EnrollmentRepository persists enrollments.
type EnrollmentRepository struct {
	*Repository[core.Enrollment]
}

var _ core.Repository[core.Enrollment] = (*EnrollmentRepository)(nil)

// NewEnrollmentRepository constructs an enrollment repository over drv.
func NewEnrollmentRepository(drv dialect.Driver) *EnrollmentRepository {
	return &EnrollmentRepository{Repository: newRepository(drv, enrollmentTable)}
}
