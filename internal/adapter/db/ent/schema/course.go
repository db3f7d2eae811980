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

// Course holds the schema definition for the Course entity.
type Course struct {
	ent.Schema
}

// Fields of the Course.
func (Course) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Unique(),
		field.UUID("instructor_id", uuid.UUID{}),
		field.String("title").
			NotEmpty(),
		field.Text("description").
			Optional().
			Nillable(),
		field.String("status").
			Default("DRAFT"),
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

// Edges of the Course.
func (Course) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("instructor", Instructor.Type).
			Ref("courses").
			Field("instructor_id").
			Unique().
			Required(),
		edge.To("sections", Section.Type),
		edge.To("enrollments", Enrollment.Type),
		edge.To("reviews", CourseReview.Type),
	}
}

// Indexes of the Course.
func (Course) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("instructor_id"),
		index.Fields("status"),
	}
}

// Annotations of the Course.
func (Course) Annotations() []schema.Annotation {
	return table("courses")
}
