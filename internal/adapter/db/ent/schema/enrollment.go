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

// Enrollment holds the schema definition for the Enrollment entity.
type Enrollment struct {
	ent.Schema
}

// Fields of the Enrollment.
func (Enrollment) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Unique(),
		field.UUID("user_id", uuid.UUID{}),
		field.UUID("course_id", uuid.UUID{}),
		field.Time("enrollment_date").
			Default(time.Now),
		field.Float("completion_status").
			Default(0),
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

// Edges of the Enrollment.
func (Enrollment) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("user", User.Type).
			Ref("enrollments").
			Field("user_id").
			Unique().
			Required(),
		edge.From("course", Course.Type).
			Ref("enrollments").
			Field("course_id").
			Unique().
			Required(),
		edge.To("progress", Progress.Type),
	}
}

// Indexes of the Enrollment.
func (Enrollment) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "course_id").
			Unique().
			Annotations(live()),
		index.Fields("course_id"),
	}
}

// Annotations of the Enrollment.
func (Enrollment) Annotations() []schema.Annotation {
	return table("enrollments")
}
