package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var sectionTable = &table[core.Section]{
	name: "sections",
	columns: []string{
		core.FieldID,
		core.SectionFieldCourseID,
		core.SectionFieldTitle,
		core.SectionFieldOrderIndex,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.Section, error) {
		var (
			sec       core.Section
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&sec.ID, &sec.CourseID, &sec.Title, &sec.OrderIndex, &sec.CreatedAt, &sec.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		sec.DeletedAt = nullableTime(deletedAt)
		return &sec, nil
	},
	values: func(sec *core.Section) []any {
		return []any{sec.ID, sec.CourseID, sec.Title, sec.OrderIndex, sec.CreatedAt, sec.UpdatedAt, ptrValue(sec.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.Section]{
		core.SectionEdgeCourse: func(ctx context.Context, drv dialect.Driver, nodes []*core.Section, rest []string) error {
			return loadEdge(ctx, drv, courseTable, nodes, rest,
				func(sec *core.Section) uuid.UUID { return sec.CourseID },
				func(c *core.Course) uuid.UUID { return c.ID },
				func(sec *core.Section, c *core.Course) { sec.Edges.Course = c },
			)
		},
	},
}

// SectionRepository persists course sections.
type SectionRepository struct {
	*Repository[core.Section]
}

var _ core.Repository[core.Section] = (*SectionRepository)(nil)

// NewSectionRepository constructs a section repository over drv.
func NewSectionRepository(drv dialect.Driver) *SectionRepository {
	return &SectionRepository{Repository: newRepository(drv, sectionTable)}
}
