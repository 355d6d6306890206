// Package auth defines the token capability injected into the orchestration
// core. The core never talks to an identity provider itself; it only asks
// this interface for a live token, or for a forcibly refreshed one after a
// 401.
package auth

import "context"

// TokenProvider hands out bearer tokens for authenticated collaborator
// calls.
//
// CurrentToken returns a live, non-expired token or an error when none is
// available. Refresh must bypass any cached value and mint a fresh token;
// it is called at most once per request, after an unauthorized rejection.
type TokenProvider interface {
	CurrentToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// StaticProvider serves a fixed token. Useful for tests and API-key style
// backends where refresh is a no-op.
type StaticProvider struct {
	Token string
}

func (p StaticProvider) CurrentToken(context.Context) (string, error) { return p.Token, nil }
func (p StaticProvider) Refresh(context.Context) (string, error)      { return p.Token, nil }
