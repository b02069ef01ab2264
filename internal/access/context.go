package access

import "context"

type claimsContextKey struct{}

// ContextWithClaims stores decoded claims in the request context.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts claims stored by the authentication
// middleware. The second return is false on routes that never passed
// through it.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
