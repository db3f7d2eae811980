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

// Progress holds the schema definition for the Progress entity.
type Progress struct {
	ent.Schema
}

// Fields of the Progress.
func (Progress) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Unique(),
		field.UUID("enrollment_id", uuid.UUID{}),
		field.UUID("lesson_id", uuid.UUID{}),
		field.Bool("is_completed").
			Default(false),
		field.Int("last_watched_time").
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

// Edges of the Progress.
func (Progress) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("enrollment", Enrollment.Type).
			Ref("progress").
			Field("enrollment_id").
			Unique().
			Required(),
		edge.From("lesson", Lesson.Type).
			Ref("progress").
			Field("lesson_id").
			Unique().
			Required(),
	}
}

// Indexes of the Progress.
func (Progress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("enrollment_id", "lesson_id"),
	}
}

// Annotations of the Progress.
func (Progress) Annotations() []schema.Annotation {
	return table("progress")
}
