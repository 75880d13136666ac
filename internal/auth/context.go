package auth

import "context"

// Principal identifies the authenticated caller for the request lifetime.
type Principal struct {
	Subject string
	Method  string // "jwt" or "api_key"
}

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}
