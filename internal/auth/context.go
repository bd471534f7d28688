package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key for the authenticated username.
const identityKey contextKey = "identity"

// ContextWithIdentity adds the authenticated username to the context.
func ContextWithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityKey, username)
}

// IdentityFromContext retrieves the authenticated username from the context.
// The second return value is false if the request is unauthenticated.
func IdentityFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
