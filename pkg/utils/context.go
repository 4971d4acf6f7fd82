package utils

import (
	"context"

	"review-hub/internal/policy"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
)

// GetPrincipalFromContext returns the authenticated principal, or the
// anonymous principal if the request carried no valid credentials.
func GetPrincipalFromContext(ctx context.Context) policy.Principal {
	val := ctx.Value(PrincipalKey)
	if val == nil {
		return policy.Anonymous
	}

	p, ok := val.(policy.Principal)
	if !ok {
		return policy.Anonymous
	}
	return p
}

// SetPrincipalContext attaches the principal to the request context.
func SetPrincipalContext(ctx context.Context, p policy.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}
