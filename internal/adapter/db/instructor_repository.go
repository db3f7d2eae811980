package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var instructorTable = &table[core.Instructor]{
	name: "instructors",
	columns: []string{
		core.FieldID,
		core.InstructorFieldUserID,
		core.InstructorFieldBio,
		core.InstructorFieldRating,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Instructor, error) {
		var (
			in        core.Instructor
			bio       stdsql.NullString
			rating    stdsql.NullFloat64
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&in.ID, &in.UserID, &bio, &rating, &in.CreatedAt, &in.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		in.Bio = nullableString(bio)
		in.Rating = nullableFloat(rating)
		in.DeletedAt = nullableTime(deletedAt)
		return &in, nil
	},
	values: func(in *core.Instructor) []any {
		return []any{in.ID, in.UserID, ptrValue(in.Bio), ptrValue(in.Rating), in.CreatedAt, in.UpdatedAt, ptrValue(in.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Instructor]{
		core.InstructorEdgeUser: func(ctx context.Context, drv dialect.Driver, nodes []*core.Instructor, rest []string) error {
			return loadEdge(ctx, drv, userTable, nodes, rest,
				func(in *core.Instructor) uuid.UUID { return in.UserID },
				func(u *core.User) uuid.UUID { return u.ID },
				func(in *core.Instructor, u *core.User) { in.Edges.User = u },
			)
		},
	},
}

// InstructorRepository persists instructor profiles.
type InstructorRepository struct {
	*Repository[core.Instructor]
}

var _ core.Repository[core.Instructor] = (*InstructorRepository)(nil)

// NewInstructorRepository constructs an instructor repository over drv.
func NewInstructorRepository(drv dialect.Driver) *InstructorRepository {
	return &InstructorRepository{Repository: newRepository(drv, instructorTable)}
}
