package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common column names shared by every entity.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldDeletedAt = "deleted_at"
)

// SortOrder is the direction applied to a sort key.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc/desc in any case. An empty string yields SortAsc,
// matching SQL's default direction.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(SortAsc):
		return SortAsc, nil
	case string(SortDesc):
		return SortDesc, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

// Op identifies the comparison a Predicate performs.
type Op int

const (
	OpEQ Op = iota
	OpGTE
	OpLTE
	// OpContainsFold matches a case-insensitive substring in any of Fields.
	OpContainsFold
)

// Predicate is a single storage-agnostic filter.
type Predicate struct {
	Op     Op
	Fields []string
	Value  any
}

// Eq matches rows whose field equals v.
func Eq(field string, v any) Predicate {
	return Predicate{Op: OpEQ, Fields: []string{field}, Value: v}
}

// GTE matches rows whose field is greater than or equal to v.
func GTE(field string, v any) Predicate {
	return Predicate{Op: OpGTE, Fields: []string{field}, Value: v}
}

// LTE matches rows whose field is less than or equal to v.
func LTE(field string, v any) Predicate {
	return Predicate{Op: OpLTE, Fields: []string{field}, Value: v}
}

// ContainsFold matches rows where any of fields contains term, ignoring case.
func ContainsFold(term string, fields ...string) Predicate {
	return Predicate{Op: OpContainsFold, Fields: fields, Value: term}
}

// Order is one sort key.
type Order struct {
	Field string
	Order SortOrder
}

// Query describes what a repository should read. The zero value selects every
// live row in storage order.
type Query struct {
	Predicates  []Predicate
	Orders      []Order
	Relations   []string
	WithDeleted bool
}

// NewQuery starts an empty query.
func NewQuery() *Query {
	return &Query{}
}

// ByID is shorthand for a primary key lookup.
func ByID(id uuid.UUID) *Query {
	return NewQuery().Where(Eq(FieldID, id))
}

// Where adds predicates joined with AND.
func (q *Query) Where(ps ...Predicate) *Query {
	q.Predicates = append(q.Predicates, ps...)
	return q
}

// OrderBy appends a sort key.
func (q *Query) OrderBy(field string, order SortOrder) *Query {
	q.Orders = append(q.Orders, Order{Field: field, Order: order})
	return q
}

// With requests eager loading of the named relations.
func (q *Query) With(relations ...string) *Query {
	q.Relations = append(q.Relations, relations...)
	return q
}

// Unscoped includes soft-deleted rows.
func (q *Query) Unscoped() *Query {
	q.WithDeleted = true
	return q
}

// Changes is a sparse set of column assignments for a partial update.
type Changes map[string]any

// Set records a column assignment and returns the receiver for chaining.
func (c Changes) Set(field string, v any) Changes {
	c[field] = v
	return c
}

// Empty reports whether no column would be written.
func (c Changes) Empty() bool {
	return len(c) == 0
}

// Repository is the storage contract shared by every entity type.
type Repository[T any] interface {
	// FindOne returns the first row matching q, or nil when there is none.
	FindOne(ctx context.Context, q *Query) (*T, error)
	// Create persists a fully built entity.
	Create(ctx context.Context, entity *T) error
	// Update writes changes to the live row with the given id.
	Update(ctx context.Context, id uuid.UUID, changes Changes) error
	// SoftDelete stamps the row's deletion time.
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	// Count returns the number of rows matching q, ignoring its orders.
	Count(ctx context.Context, q *Query) (int, error)
	// List returns a window of rows matching q.
	List(ctx context.Context, q *Query, limit, offset int) ([]T, error)
}
