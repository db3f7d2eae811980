package usecase

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

// Columns every entity can be sorted by.
var baseSortable = []string{core.FieldID, core.FieldCreatedAt, core.FieldUpdatedAt}

func sortable(fields ...string) []string {
	return append(append([]string(nil), baseSortable...), fields...)
}

// lookup resolves a single row by id. An absent row, including the zero id,
// yields notFound when returnError is set and (nil, nil) otherwise.
func lookup[T any](ctx context.Context, repo core.Repository[T], id uuid.UUID, q *core.Query, returnError bool, notFound error) (*T, error) {
	if id == uuid.Nil {
		if returnError {
			return nil, notFound
		}
		return nil, nil
	}
	if q == nil {
		q = core.NewQuery()
	}
	row, err := repo.FindOne(ctx, q.Where(core.Eq(core.FieldID, id)))
	if err != nil {
		return nil, err
	}
	if row == nil && returnError {
		return nil, notFound
	}
	return row, nil
}

// exists reports whether a live row with id is present.
func exists[T any](ctx context.Context, repo core.Repository[T], id uuid.UUID) (bool, error) {
	row, err := lookup(ctx, repo, id, nil, false, nil)
	if err != nil {
		return false, err
	}
	return row != nil, nil
}

// requiredTitle trims a title, rejecting an absent or blank value.
func requiredTitle(title string) (string, error) {
	if title == "" {
		return "", core.ErrMissingTitle
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", core.ErrEmptyTitle
	}
	return trimmed, nil
}

// trimmedOrNil trims an optional text field; blank collapses to nil.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// emptyToNil keeps text verbatim but maps "" to nil.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nullable turns an optional value into a change value where nil writes NULL.
func nullable[V any](p *V) any {
	if p == nil {
		return nil
	}
	return *p
}

// within reports whether v lies in [lo, hi]. NaN is never within bounds.
func within(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
