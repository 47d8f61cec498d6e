// Package web implements the HTTP surface: route policy, authentication
// middleware, session handling, the OAuth2 login flow, and the handlers.
package web

import (
	"context"

	"github.com/acamacho/dulceria/internal/server/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal installs an authenticated principal into the request context.
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom extracts the authenticated principal, nil when the request
// carries none.
func PrincipalFrom(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(principalKey).(*auth.Principal)
	return p
}
