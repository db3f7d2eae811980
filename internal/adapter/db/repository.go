package db

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/eslsoft/learnhub/internal/core"
)

type scanner interface {
	Scan(dest ...any) error
}

// table describes how an entity maps onto a SQL table.
type table[T any] struct {
	name    string
	columns []string
	scan    func(s scanner) (*T, error)
	values  func(n *T) []any
	edges   map[string]edgeLoader[T]
}

// edgeLoader fills one relation on a batch of nodes. rest holds the nested
// relations to load on the related rows.
type edgeLoader[T any] func(ctx context.Context, drv dialect.Driver, nodes []*T, rest []string) error

func (t *table[T]) hasColumn(c string) bool {
	return lo.Contains(t.columns, c)
}

// Repository implements core.Repository for a single table using the Ent SQL builder.
type Repository[T any] struct {
	drv   dialect.Driver
	table *table[T]
}

func newRepository[T any](drv dialect.Driver, t *table[T]) *Repository[T] {
	return &Repository[T]{drv: drv, table: t}
}

// FindOne returns the first row matching q or nil when none matches.
func (r *Repository[T]) FindOne(ctx context.Context, q *core.Query) (*T, error) {
	nodes, err := r.fetch(ctx, q, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

// List returns a window of rows matching q.
func (r *Repository[T]) List(ctx context.Context, q *core.Query, limit, offset int) ([]T, error) {
	nodes, err := r.fetch(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	return lo.Map(nodes, func(n *T, _ int) T { return *n }), nil
}

// Count returns the number of rows matching q.
func (r *Repository[T]) Count(ctx context.Context, q *core.Query) (int, error) {
	q = orEmpty(q)
	builder := sql.Dialect(r.drv.Dialect())
	sel := builder.Select(sql.Count("*")).From(builder.Table(r.table.name))
	if err := r.where(sel, q); err != nil {
		return 0, err
	}

	query, args := sel.Query()
	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.name, err)
	}
	defer rows.Close()

	n, err := sql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table.name, err)
	}
	return n, nil
}

// Create inserts a fully built entity.
func (r *Repository[T]) Create(ctx context.Context, node *T) error {
	query, args := sql.Dialect(r.drv.Dialect()).
		Insert(r.table.name).
		Columns(r.table.columns...).
		Values(r.table.values(node)...).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return r.wrapWriteError("insert", err)
	}
	return nil
}

// Update writes changes to the live row with the given id.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, changes core.Changes) error {
	if changes.Empty() {
		return nil
	}

	fields := lo.Keys(changes)
	sort.Strings(fields)

	upd := sql.Dialect(r.drv.Dialect()).Update(r.table.name)
	for _, field := range fields {
		if field == core.FieldID || !r.table.hasColumn(field) {
			return fmt.Errorf("update %s: %w: column %q", r.table.name, core.ErrValidation, field)
		}
		if v := changes[field]; v == nil {
			upd.SetNull(field)
		} else {
			upd.Set(field, v)
		}
	}
	upd.Where(sql.And(sql.EQ(core.FieldID, id), sql.IsNull(core.FieldDeletedAt)))

	return r.execAffecting(ctx, "update", upd)
}

// SoftDelete stamps deleted_at on the live row with the given id.
func (r *Repository[T]) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	upd := sql.Dialect(r.drv.Dialect()).
		Update(r.table.name).
		Set(core.FieldDeletedAt, at).
		Set(core.FieldUpdatedAt, at).
		Where(sql.And(sql.EQ(core.FieldID, id), sql.IsNull(core.FieldDeletedAt)))

	return r.execAffecting(ctx, "soft delete", upd)
}

func (r *Repository[T]) execAffecting(ctx context.Context, op string, upd *sql.UpdateBuilder) error {
	query, args := upd.Query()
	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return r.wrapWriteError(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, r.table.name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", op, r.table.name, core.ErrNotFound)
	}
	return nil
}

func (r *Repository[T]) wrapWriteError(op string, err error) error {
	if sqlgraph.IsUniqueConstraintError(err) {
		return fmt.Errorf("%s %s: %w: %v", op, r.table.name, core.ErrConflict, err)
	}
	return fmt.Errorf("%s %s: %w", op, r.table.name, err)
}

func (r *Repository[T]) fetch(ctx context.Context, q *core.Query, limit, offset int) ([]*T, error) {
	q = orEmpty(q)
	builder := sql.Dialect(r.drv.Dialect())
	sel := builder.Select(r.table.columns...).From(builder.Table(r.table.name))
	if err := r.where(sel, q); err != nil {
		return nil, err
	}
	for _, o := range q.Orders {
		if !r.table.hasColumn(o.Field) {
			return nil, fmt.Errorf("%w: %q", core.ErrInvalidSortField, o.Field)
		}
		if o.Order == core.SortDesc {
			sel.OrderBy(sql.Desc(o.Field))
		} else {
			sel.OrderBy(sql.Asc(o.Field))
		}
	}
	if limit > 0 {
		sel.Limit(limit)
		if offset > 0 {
			sel.Offset(offset)
		}
	}

	nodes, err := scanAll(ctx, r.drv, r.table, sel)
	if err != nil {
		return nil, err
	}
	if err := loadEdges(ctx, r.drv, r.table, nodes, q.Relations); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (r *Repository[T]) where(sel *sql.Selector, q *core.Query) error {
	preds := make([]*sql.Predicate, 0, len(q.Predicates)+1)
	if !q.WithDeleted {
		preds = append(preds, sql.IsNull(core.FieldDeletedAt))
	}
	for _, p := range q.Predicates {
		for _, f := range p.Fields {
			if !r.table.hasColumn(f) {
				return fmt.Errorf("%w: unknown filter field %q", core.ErrValidation, f)
			}
		}
		pred, err := toPredicate(p)
		if err != nil {
			return err
		}
		preds = append(preds, pred)
	}
	if len(preds) > 0 {
		sel.Where(sql.And(preds...))
	}
	return nil
}

func toPredicate(p core.Predicate) (*sql.Predicate, error) {
	if len(p.Fields) == 0 {
		return nil, fmt.Errorf("%w: predicate without field", core.ErrValidation)
	}
	switch p.Op {
	case core.OpEQ:
		return sql.EQ(p.Fields[0], p.Value), nil
	case core.OpGTE:
		return sql.GTE(p.Fields[0], p.Value), nil
	case core.OpLTE:
		return sql.LTE(p.Fields[0], p.Value), nil
	case core.OpContainsFold:
		term, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: search term must be a string", core.ErrValidation)
		}
		return sql.Or(lo.Map(p.Fields, func(f string, _ int) *sql.Predicate {
			return sql.ContainsFold(f, term)
		})...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported operator %d", core.ErrValidation, p.Op)
	}
}

func scanAll[T any](ctx context.Context, drv dialect.Driver, t *table[T], sel *sql.Selector) ([]*T, error) {
	query, args := sel.Query()
	rows := &sql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	var nodes []*T
	for rows.Next() {
		node, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	return nodes, nil
}

// loadEdges resolves relations such as "section" or "section.course".
func loadEdges[T any](ctx context.Context, drv dialect.Driver, t *table[T], nodes []*T, relations []string) error {
	if len(nodes) == 0 || len(relations) == 0 {
		return nil
	}

	nested := make(map[string][]string)
	order := make([]string, 0, len(relations))
	for _, rel := range relations {
		head, rest, _ := strings.Cut(strings.TrimSpace(rel), ".")
		if head == "" {
			continue
		}
		if _, seen := nested[head]; !seen {
			order = append(order, head)
			nested[head] = nil
		}
		if rest != "" {
			nested[head] = append(nested[head], rest)
		}
	}

	for _, head := range order {
		load, ok := t.edges[head]
		if !ok {
			return fmt.Errorf("%w: %s has no relation %q", core.ErrValidation, t.name, head)
		}
		if err := load(ctx, drv, nodes, nested[head]); err != nil {
			return err
		}
	}
	return nil
}

// loadEdge batches a many-to-one lookup: it reads every live target row
// referenced by fk and hands each node its match. Nodes whose target is
// missing or soft deleted keep a nil edge.
func loadEdge[T, E any](
	ctx context.Context,
	drv dialect.Driver,
	target *table[E],
	nodes []*T,
	rest []string,
	fk func(*T) uuid.UUID,
	id func(*E) uuid.UUID,
	assign func(*T, *E),
) error {
	ids := lo.Uniq(lo.Map(nodes, func(n *T, _ int) uuid.UUID { return fk(n) }))
	if len(ids) == 0 {
		return nil
	}

	builder := sql.Dialect(drv.Dialect())
	sel := builder.Select(target.columns...).
		From(builder.Table(target.name)).
		Where(sql.And(
			sql.In(core.FieldID, lo.ToAnySlice(ids)...),
			sql.IsNull(core.FieldDeletedAt),
		))

	related, err := scanAll(ctx, drv, target, sel)
	if err != nil {
		return err
	}
	if err := loadEdges(ctx, drv, target, related, rest); err != nil {
		return err
	}

	byID := lo.KeyBy(related, id)
	for _, n := range nodes {
		if e, ok := byID[fk(n)]; ok {
			assign(n, e)
		}
	}
	return nil
}

func orEmpty(q *core.Query) *core.Query {
	if q == nil {
		return core.NewQuery()
	}
	return q
}

func nullableString(s stdsql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullableFloat(f stdsql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func nullableTime(t stdsql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// ptrValue converts an optional field to a driver argument, nil meaning NULL.
func ptrValue[V any](p *V) any {
	if p == nil {
		return nil
	}
	return *p
}
