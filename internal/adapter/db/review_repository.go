package db

import (
	"context"
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

var reviewTable = &table[core.CourseReview]{
	name: "course_reviews",
	columns: []string{
		core.FieldID,
		core.ReviewFieldUserID,
		core.ReviewFieldCourseID,
		core.ReviewFieldRating,
		core.ReviewFieldReviewText,
		core.FieldCreatedAt,
		core.FieldUpdatedAt,
		core.FieldDeletedAt,
	},
	scan: func(s scanner) (*core.CourseReview, error) {
		var (
			r         core.CourseReview
			text      stdsql.NullString
			deletedAt stdsql.NullTime
		)
		if err := s.Scan(&r.ID, &r.UserID, &r.CourseID, &r.Rating, &text, &r.CreatedAt, &r.UpdatedAt, &deletedAt); err != nil {
			return nil, err
		}
		r.ReviewText = nullableString(text)
		r.DeletedAt = nullableTime(deletedAt)
		return &r, nil
	},
	values: func(r *core.CourseReview) []any {
		return []any{r.ID, r.UserID, r.CourseID, r.Rating, ptrValue(r.ReviewText), r.CreatedAt, r.UpdatedAt, ptrValue(r.DeletedAt)}
	},
	edges: map[string]edgeLoader[core.CourseReview]{
		core.ReviewEdgeUser: func(ctx context.Context, drv dialect.Driver, nodes []*core.CourseReview, rest []string) error {
			return loadEdge(ctx, drv, userTable, nodes, rest,
				func(r *core.CourseReview) uuid.UUID { return r.UserID },
				func(u *core.User) uuid.UUID { return u.ID },
				func(r *core.CourseReview, u *core.User) { r.Edges.User = u },
			)
		},
		core.ReviewEdgeCourse: func(ctx context.Context, drv dialect.Driver, nodes []*core.CourseReview, rest []string) error {
			return loadEdge(ctx, drv, courseTable, nodes, rest,
				func(r *core.CourseReview) uuid.UUID { return r.CourseID },
				func(c *core.Course) uuid.UUID { return c.ID },
				func(r *core.CourseReview, c *core.Course) { r.Edges.Course = c },
			)
		},
	},
}

// CourseReviewRepository persists course reviews.
type CourseReviewRepository struct {
	*Repository[core.CourseReview]
}

var _ core.Repository[core.CourseReview] = (*CourseReviewRepository)(nil)

// NewCourseReviewRepository constructs a review repository over drv.
func NewCourseReviewRepository(drv dialect.Driver) *CourseReviewRepository {
	return &CourseReviewRepository{Repository: newRepository(drv, reviewTable)}
}
