package middleware

import "context"

type contextKey string

// ContextKeyRole carries the authenticated role ("admin").
const ContextKeyRole contextKey = "role"

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ContextKeyRole).(string)
	return v, ok
}
