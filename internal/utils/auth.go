package utils

import "context"

// SetUserContext sets the caller identity into context (called by middleware).
// Anonymous callers carry only a session id.
func SetUserContext(ctx context.Context, id int64, sessionID string, role string) context.Context {
	if id > 0 {
		ctx = context.WithValue(ctx, UserIDKey, id)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, SessionIDKey, sessionID)
	}
	ctx = context.WithValue(ctx, UserRoleKey, role)
	return ctx
}

// GetUserIDFromContext retrieves the platform user id safely
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok && id > 0
}

func GetSessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(SessionIDKey).(string)
	return sid
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}
