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

// Instructor holds the schema definition for the Instructor entity.
type Instructor struct {
	ent.Schema
}

// Fields of the Instructor.
func (Instructor) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Unique(),
		field.UUID("user_id", uuid.UUID{}),
		field.Text("bio").
			Optional().
			Nillable(),
		field.Float("rating").
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

// Edges of the Instructor.
func (Instructor) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("user", User.Type).
			Ref("instructor").
			Field("user_id").
			Unique().
			Required(),
		edge.To("courses", Course.Type),
	}
}

// Indexes of the Instructor.
func (Instructor) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id").
			Unique().
			Annotations(live()),
	}
}

// Annotations of the Instructor.
func (Instructor) Annotations() []schema.Annotation {
	return table("instructors")
}
