package service

import "context"

type claimsCtxKey struct{}

// WithClaims devuelve un contexto que transporta la identidad autenticada.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromContext obtiene la identidad autenticada, si existe.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(Claims)
	if !ok || claims.UserID == "" {
		return Claims{}, false
	}
	return claims, true
}
