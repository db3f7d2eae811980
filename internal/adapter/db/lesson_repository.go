package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var lessonTable = &table[core.Lesson]{
	name: "lessons",
	columns: []string{
		core.FieldID,
		core.LessonFieldSectionID,
		core.LessonFieldTitle,
		core.LessonFieldContentURL,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Lesson, error) {
		var (
			l          core.Lesson
			contentURL stdsql.NullString
			deletedAt  stdsql.NullTime
		)
		if err := s.Scan(&l.ID, &l.SectionID, &l.Title, &contentURL, &l.CreatedAt, &l.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		l.ContentURL = nullableString(contentURL)
		l.DeletedAt = nullableTime(deletedAt)
		return &l, nil
	},
	values: func(l *core.Lesson) []any {
		return []any{l.ID, l.SectionID, l.Title, ptrValue(l.ContentURL), l.CreatedAt, l.UpdatedAt, ptrValue(l.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Lesson]{
		core.LessonEdgeSection: func(ctx context.Context, drv dialect.Driver, nodes []*core.Lesson, rest []string) error {
			return loadEdge(ctx, drv, sectionTable, nodes, rest,
				func(l *core.Lesson) uuid.UUID { return l.SectionID },
				func(sec *core.Section) uuid.UUID { return sec.ID },
				func(l *core.Lesson, sec *core.Section) { l.Edges.Section = sec },
			)
		},
	},
}

// LessonRepository persists lessons.
type LessonRepository struct {
	*Repository[core.Lesson]
}

var _ core.Repository[core.Lesson] = (*LessonRepository)(nil)

// NewLessonRepository constructs a lesson repository over drv.
func NewLessonRepository(drv dialect.Driver) *LessonRepository {
	return &LessonRepository{Repository: newRepository(drv, lessonTable)}
}
