package transport

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/eslsoft/learnhub/internal/core"
)

// NewErrorInterceptor creates a Connect interceptor that maps domain errors
// to transport-friendly Connect errors.
func NewErrorInterceptor() connect.Interceptor {
	return connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			res, err := next(ctx, req)
			if err == nil {
				return res, nil
			}
			return nil, ToConnectError(err)
		}
	})
}

// ToConnectError translates an error kind from core into a Connect code.
// Errors that are already Connect errors pass through untouched.
func ToConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, core.ErrMissingField),
		errors.Is(err, core.ErrEmptyField),
		errors.Is(err, core.ErrInvalidRange),
		errors.Is(err, core.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, core.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, core.ErrConflict):
		return connect.CodeAlreadyExists
	case errors.Is(err, core.ErrRelationshipBroken),
		errors.Is(err, core.ErrPrecondition):
		return connect.CodeFailedPrecondition
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	default:
		return connect.CodeInternal
	}
}
