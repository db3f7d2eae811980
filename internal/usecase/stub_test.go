package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/learnhub/internal/core"
)

type stubRepo[T any] struct {
	findOneFn    func(ctx context.Context, q *core.Query) (*T, error)
	createFn     func(ctx context.Context, entity *T) error
	updateFn     func(ctx context.Context, id uuid.UUID, changes core.Changes) error
	softDeleteFn func(ctx context.Context, id uuid.UUID, at time.Time) error
	countFn      func(ctx context.Context, q *core.Query) (int, error)
	listFn       func(ctx context.Context, q *core.Query, limit, offset int) ([]T, error)
}

var _ core.Repository[core.Course] = (*stubRepo[core.Course])(nil)

func (s *stubRepo[T]) FindOne(ctx context.Context, q *core.Query) (*T, error) {
	if s.findOneFn != nil {
		return s.findOneFn(ctx, q)
	}
	return nil, nil
}

func (s *stubRepo[T]) Create(ctx context.Context, entity *T) error {
	if s.createFn != nil {
		return s.createFn(ctx, entity)
	}
	return nil
}

func (s *stubRepo[T]) Update(ctx context.Context, id uuid.UUID, changes core.Changes) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, changes)
	}
	return nil
}

func (s *stubRepo[T]) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id, at)
	}
	return nil
}

func (s *stubRepo[T]) Count(ctx context.Context, q *core.Query) (int, error) {
	if s.countFn != nil {
		return s.countFn(ctx, q)
	}
	return 0, nil
}

func (s *stubRepo[T]) List(ctx context.Context, q *core.Query, limit, offset int) ([]T, error) {
	if s.listFn != nil {
		return s.listFn(ctx, q, limit, offset)
	}
	return nil, nil
}

// returning answers every FindOne with a copy of v.
func returning[T any](v T) func(context.Context, *core.Query) (*T, error) {
	return func(context.Context, *core.Query) (*T, error) {
		cp := v
		return &cp, nil
	}
}

func ptr[T any](v T) *T {
	return &v
}
