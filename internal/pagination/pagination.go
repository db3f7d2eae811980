// Package pagination shapes list results into pages with uniform metadata.
package pagination

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/learnhub/internal/core"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Source is the part of a repository the pager reads from.
type Source[T any] interface {
	Count(ctx context.Context, q *core.Query) (int, error)
	List(ctx context.Context, q *core.Query, limit, offset int) ([]T, error)
}

// Pager holds the page size policy.
type Pager struct {
	defaultLimit int
	maxLimit     int
}

// New constructs a Pager. Non-positive sizes fall back to the package defaults.
func New(defaultLimit, maxLimit int) Pager {
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return Pager{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Normalize resolves the page number and size that will actually be served.
func (p Pager) Normalize(req core.PageRequest) (page, limit int) {
	if p.maxLimit == 0 {
		p = New(0, 0)
	}
	page = req.Page
	if page < 1 {
		page = 1
	}
	limit = req.Limit
	switch {
	case limit <= 0:
		limit = p.defaultLimit
	case limit > p.maxLimit:
		limit = p.maxLimit
	}
	return page, limit
}

// Paginate counts the rows matching q and returns the requested window.
func Paginate[T any](ctx context.Context, p Pager, src Source[T], q *core.Query, req core.PageRequest) (*core.Page[T], error) {
	page, limit := p.Normalize(req)

	total, err := src.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count page items: %w", err)
	}

	items := make([]T, 0)
	offset := (page - 1) * limit
	if offset < total {
		items, err = src.List(ctx, q, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list page items: %w", err)
		}
	}

	return &core.Page[T]{
		Items: items,
		Meta: core.PageMeta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: limit,
			TotalPages:   (total + limit - 1) / limit,
			CurrentPage:  page,
		},
	}, nil
}

// ApplySort orders q by the caller's sort when one is given, otherwise by
// fallback. A field given without a direction sorts ascending. The primary
// key is appended as a final key so rows that tie on the requested keys still
// come back in a stable order.
func ApplySort(q *core.Query, sort core.Sort, fallback core.Order, sortable []string) error {
	order := fallback
	if field := strings.TrimSpace(sort.Field); field != "" {
		if !lo.Contains(sortable, field) {
			return fmt.Errorf("%w: %q", core.ErrInvalidSortField, field)
		}
		dir, err := core.ParseSortOrder(string(sort.Order))
		if err != nil {
			return fmt.Errorf("%w: %q", err, sort.Order)
		}
		order = core.Order{Field: field, Order: dir}
	}

	q.OrderBy(order.Field, order.Order)
	if order.Field != core.FieldID {
		q.OrderBy(core.FieldID, order.Order)
	}
	return nil
}

// CreatedDesc is the default ordering for list operations.
var CreatedDesc = core.Order{Field: core.FieldCreatedAt, Order: core.SortDesc}
