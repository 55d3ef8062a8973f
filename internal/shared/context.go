package shared

import "context"

type contextKey string

const userContextKey contextKey = "meridian.user"

// AuthUser identifies the authenticated caller attached to a request context.
type AuthUser struct {
	ID    int64
	Email string
}

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user, or nil when anonymous.
func UserFromContext(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(userContextKey).(*AuthUser)
	return user
}
