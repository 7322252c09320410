// Package utils holds helpers shared by the server and the client: context
// keys, content hashing, JSON responses, the resty client, JWT handling,
// trace IDs and clocks.
package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey holds the authenticated user ID set by the auth middlewares.
var UserIDCtxKey = contextKey("userID")

// WithUserID returns ctx carrying userID under [UserIDCtxKey].
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDCtxKey, userID)
}

// GetUserIDFromContext reports the user ID stored by [WithUserID]. A missing,
// empty or non-string value is not found.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
