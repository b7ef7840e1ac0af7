package httpx

import "context"

// userIDKey is an unexported context key type to avoid collisions across packages.
type userIDKey struct{}

// SetUserIDInContext returns a child context carrying the authenticated user id.
// An empty id returns ctx unchanged.
func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user id set by RequireAuth or OptionalAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}
