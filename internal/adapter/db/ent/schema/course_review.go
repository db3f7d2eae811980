package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"
)

// CourseReview holds the schema definition for the CourseReview entity.
type CourseReview struct {
	ent.Schema
}

// Fields of the CourseReview.
func (CourseReview) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Unique(),
		field.UUID("user_id", uuid.UUID{}),
		field.UUID("course_id", uuid.UUID{}),
		field.Int("rating").
			Range(1, 5),
		field.Text("review_text").
			Optional().
			Nillable(),
		field.Time("created_at").
			Immutable().
			Default(time.Now),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
		field.Time("deleted_at").
			Optional().
			Nillable(),
	}
}

// Edges of the CourseReview.
func (CourseReview) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("user", User.Type).
			Ref("reviews").
			Field("user_id").
			Unique().
			Required(),
		edge.From("course", Course.Type).
			Ref("reviews").
			Field("course_id").
			Unique().
			Required(),
	}
}

// Indexes of the CourseReview.
func (CourseReview) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "course_id").
			Unique().
			Annotations(live()),
		index.Fields("course_id"),
	}
}

// Annotations of the CourseReview.
func (CourseReview) Annotations() []schema.Annotation {
	return table("course_reviews")
}
