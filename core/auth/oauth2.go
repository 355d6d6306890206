package auth

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/nvolchak/voxcal-core/core/faults"
)

// OAuth2Provider adapts an oauth2.TokenSource to the TokenProvider
// capability. Tokens are cached through a ReuseTokenSource; Refresh throws
// the cache away so the next fetch is guaranteed to hit the source.
type OAuth2Provider struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	cached oauth2.TokenSource
}

// NewOAuth2Provider wraps a non-caching token source, e.g.
// config.TokenSource(ctx, savedToken).
func NewOAuth2Provider(base oauth2.TokenSource) *OAuth2Provider {
	return &OAuth2Provider{
		base:   base,
		cached: oauth2.ReuseTokenSource(nil, base),
	}
}

func (p *OAuth2Provider) CurrentToken(context.Context) (string, error) {
	p.mu.Lock()
	source := p.cached
	p.mu.Unlock()

	token, err := source.Token()
	if err != nil {
		return "", &faults.AuthError{Cause: faults.AuthRefreshFailed, Err: err}
	}
	return token.AccessToken, nil
}

func (p *OAuth2Provider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	// Dropping the reuse wrapper invalidates whatever token it was holding.
	p.cached = oauth2.ReuseTokenSource(nil, p.base)
	p.mu.Unlock()

	return p.CurrentToken(ctx)
}
