package orchestration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nvolchak/voxcal-core/core/faults"
)

type tokenProviderStub struct {
	token      string
	currentErr error

	refreshed  string
	refreshErr error
	refreshes  int
}

func (s *tokenProviderStub) CurrentToken(context.Context) (string, error) {
	return s.token, s.currentErr
}

func (s *tokenProviderStub) Refresh(context.Context) (string, error) {
	s.refreshes++
	return s.refreshed, s.refreshErr
}

func unauthorized() error {
	return &faults.ServerError{StatusCode: http.StatusUnauthorized}
}

func TestExecuteAuthenticatedRefreshesOnceOnUnauthorized(t *testing.T) {
	tokens := &tokenProviderStub{token: "stale", refreshed: "fresh"}

	var calls int
	var seenTokens []string
	result, err := executeAuthenticated(context.Background(), tokens, func(_ context.Context, token string) (string, error) {
		calls++
		seenTokens = append(seenTokens, token)
		if token == "stale" {
			return "", unauthorized()
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected success after refresh, got %v", err)
	}
	if result != "ok" {
		t.Fatalf("expected refreshed call result, got %q", result)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 invocations, got %d", calls)
	}
	if tokens.refreshes != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", tokens.refreshes)
	}
	if seenTokens[0] != "stale" || seenTokens[1] != "fresh" {
		t.Fatalf("expected stale then fresh token, got %v", seenTokens)
	}
}

func TestExecuteAuthenticatedStopsAfterSecondUnauthorized(t *testing.T) {
	tokens := &tokenProviderStub{token: "stale", refreshed: "still-stale"}

	var calls int
	_, err := executeAuthenticated(context.Background(), tokens, func(context.Context, string) (string, error) {
		calls++
		return "", unauthorized()
	})
	if calls != 2 {
		t.Fatalf("expected exactly 2 invocations, got %d", calls)
	}
	if !faults.IsUnauthorized(err) {
		t.Fatalf("expected the second rejection verbatim, got %v", err)
	}
}

func TestExecuteAuthenticatedDoesNotRetryOtherFailures(t *testing.T) {
	tokens := &tokenProviderStub{token: "valid"}
	timeout := &faults.TransportError{Timeout: true, Err: errors.New("deadline")}

	var calls int
	_, err := executeAuthenticated(context.Background(), tokens, func(context.Context, string) (string, error) {
		calls++
		return "", timeout
	})
	if calls != 1 {
		t.Fatalf("expected a single invocation, got %d", calls)
	}
	if !errors.Is(err, timeout) {
		t.Fatalf("expected timeout propagated unchanged, got %v", err)
	}
	if tokens.refreshes != 0 {
		t.Fatalf("expected no refresh on non-auth failure, got %d", tokens.refreshes)
	}
}

func TestExecuteAuthenticatedWithoutProvider(t *testing.T) {
	_, err := executeAuthenticated(context.Background(), nil, func(context.Context, string) (string, error) {
		t.Fatalf("call must not run without a token provider")
		return "", nil
	})

	var authErr *faults.AuthError
	if !errors.As(err, &authErr) || authErr.Cause != faults.AuthMissingProvider {
		t.Fatalf("expected missing-provider auth error, got %v", err)
	}
}

func TestExecuteAuthenticatedWrapsRefreshFailure(t *testing.T) {
	tokens := &tokenProviderStub{token: "stale", refreshErr: errors.New("idp offline")}

	_, err := executeAuthenticated(context.Background(), tokens, func(context.Context, string) (string, error) {
		return "", unauthorized()
	})

	var authErr *faults.AuthError
	if !errors.As(err, &authErr) || authErr.Cause != faults.AuthRefreshFailed {
		t.Fatalf("expected refresh-failed auth error, got %v", err)
	}
}
