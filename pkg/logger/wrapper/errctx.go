package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx wraps an error together with the LogCtx that was
// current at the place of failure.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

// Unwrap allows unwrapping the original error
func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// Error wraps an error with the current LogCtx from the context
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// If already wrapped, just update the logCtx
	var e *errorWithLogCtx
	if errors.As(err, &e) {
		if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			e.logCtx = x
		}
		return e
	}

	c := LogCtx{}
	if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		c = x
	}
	return &errorWithLogCtx{
		err:    err,
		logCtx: c,
	}
}

// ErrorCtx extracts the LogCtx from an error if it is of type errorWithLogCtx
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		return context.WithValue(ctx, LogCtxKey, e.logCtx)
	}
	return ctx
}
