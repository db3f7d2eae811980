package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var courseTable = &table[core.Course]{
	name: "courses",
	columns: []string{
		core.FieldID,
		core.CourseFieldInstructorID,
		core.CourseFieldTitle,
		core.CourseFieldDescription,
		core.CourseFieldStatus,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Course, error) {
		var (
			c           core.Course
			description stdsql.NullString
			status      string
			deletedAt   stdsql.NullTime
		)
		if err := s.Scan(&c.ID, &c.InstructorID, &c.Title, &description, &status, &c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		c.Description = nullableString(description)
		c.Status = core.CourseStatus(status)
		c.DeletedAt = nullableTime(deletedAt)
		return &c, nil
	},
	values: func(c *core.Course) []any {
		return []any{c.ID, c.InstructorID, c.Title, ptrValue(c.Description), string(c.Status), c.CreatedAt, c.UpdatedAt, ptrValue(c.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Course]{
		core.CourseEdgeInstructor: func(ctx context.Context, drv dialect.Driver, nodes []*core.Course, rest []string) error {
			return loadEdge(ctx, drv, instructorTable, nodes, rest,
				func(c *core.Course) uuid.UUID { return c.InstructorID },
				func(in *core.Instructor) uuid.UUID { return in.ID },
				func(c *core.Course, in *core.Instructor) { c.Edges.Instructor = in },
			)
		},
	},
}

// CourseRepository persists courses.
type CourseRepository struct {
	*Repository[core.Course]
}

var _ core.Repository[core.Course] = (*CourseRepository)(nil)

// NewCourseRepository constructs a course repository over drv.
func NewCourseRepository(drv dialect.Driver) *CourseRepository {
	return &CourseRepository{Repository: newRepository(drv, courseTable)}
}
