// Package schema holds the Ent schema definitions for the learning platform.
// The migration tables are derived from these descriptors at runtime.
package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
)

// All lists every schema in dependency order: referenced tables come first.
func All() []ent.Interface {
	return []ent.Interface{
		User{},
		Instructor{},
		Course{},
		Section{},
		Lesson{},
		Enrollment{},
		Progress{},
		CourseReview{},
	}
}

func table(name string) []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: name}}
}

// live restricts an index to rows that are not soft deleted.
func live() schema.Annotation {
	return entsql.IndexWhere("deleted_at IS NULL")
}
