package orchestration

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nvolchak/voxcal-core/core/auth"
	"github.com/nvolchak/voxcal-core/core/faults"
)

// executeAuthenticated wraps every authenticated collaborator call: obtain a
// token, invoke once, and on an unauthorized rejection refresh the token and
// invoke exactly once more. Any other failure, or a second rejection,
// propagates unchanged. There is no backoff and no retry on non-auth
// transient errors; the user re-issues those with a new utterance.
func executeAuthenticated[T any](ctx context.Context, tokens auth.TokenProvider, call func(ctx context.Context, token string) (T, error)) (T, error) {
	var zero T

	if tokens == nil {
		return zero, &faults.AuthError{Cause: faults.AuthMissingProvider}
	}

	token, err := tokens.CurrentToken(ctx)
	if err != nil {
		return zero, err
	}

	result, err := call(ctx, token)
	if err == nil || !faults.IsUnauthorized(err) {
		return result, err
	}

	span := trace.SpanFromContext(ctx)
	span.AddEvent("retrying unauthorized call after token refresh")
	span.SetAttributes(attribute.Bool("auth.refreshed", true))

	token, refreshErr := tokens.Refresh(ctx)
	if refreshErr != nil {
		var authErr *faults.AuthError
		if errors.As(refreshErr, &authErr) {
			return zero, refreshErr
		}
		return zero, &faults.AuthError{Cause: faults.AuthRefreshFailed, Err: refreshErr}
	}

	return call(ctx, token)
}
