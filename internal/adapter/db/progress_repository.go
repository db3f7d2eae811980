package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var progressTable = &table[core.Progress]{
	name: "progress",
	columns: []string{
		core.FieldID,
		core.ProgressFieldEnrollmentID,
		core.ProgressFieldLessonID,
		core.ProgressFieldIsCompleted,
		core.ProgressFieldLastWatchedTime,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Progress, error) {
		var (
			p         core.Progress
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&p.ID, &p.EnrollmentID, &p.LessonID, &p.IsCompleted, &p.LastWatchedTime, &p.CreatedAt, &p.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		p.DeletedAt = nullableTime(deletedAt)
		return &p, nil
	},
	values: func(p *core.Progress) []any {
		return []any{p.ID, p.EnrollmentID, p.LessonID, p.IsCompleted, p.LastWatchedTime, p.CreatedAt, p.UpdatedAt, ptrValue(p.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Progress]{
		core.ProgressEdgeEnrollment: func(ctx context.Context, drv dialect.Driver, nodes []*core.Progress, rest []string) error {
			return loadEdge(ctx, drv, enrollmentTable, nodes, rest,
				func(p *core.Progress) uuid.UUID { return p.EnrollmentID },
				func(e *core.Enrollment) uuid.UUID { return e.ID },
				func(p *core.Progress, e *core.Enrollment) { p.Edges.Enrollment = e },
			)
		},
		core.ProgressEdgeLesson: func(ctx context.Context, drv dialect.Driver, nodes []*core.Progress, rest []string) error {
			return loadEdge(ctx, drv, lessonTable, nodes, rest,
				func(p *core.Progress) uuid.UUID { return p.LessonID },
				func(l *core.Lesson) uuid.UUID { return l.ID },
				func(p *core.Progress, l *core.Lesson) { p.Edges.Lesson = l },
			)
		},
	},
}

// ProgressRepository persists lesson progress.
type ProgressRepository struct {
	*Repository[core.Progress]
}

var _ core.Repository[core.Progress] = (*ProgressRepository)(nil)

// NewProgressRepository constructs a progress repository over drv.
func NewProgressRepository(drv dialect.Driver) *ProgressRepository {
	return &ProgressRepository{Repository: newRepository(drv, progressTable)}
}
