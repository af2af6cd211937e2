package api

import (
	"context"

	"github.com/rpupo63/volunteer-connect-backend/identity"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser adds the signed-in user to the context
func ctxWithUser(ctx context.Context, user *identity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// ctxGetUser retrieves the signed-in user from the context
func ctxGetUser(ctx context.Context) (*identity.User, bool) {
	user, ok := ctx.Value(userKey).(*identity.User)
	return user, ok && user != nil
}

// ctxGetUserID returns the signed-in user's id, or "" for anonymous requests
func ctxGetUserID(ctx context.Context) string {
	if user, ok := ctxGetUser(ctx); ok {
		return user.ID
	}
	return ""
}
