// Package identity turns bearer tokens into signed-in users.
package identity

import (
	"context"
	"strings"
)

// AnonymousName is shown for users whose identity carries no display name.
const AnonymousName = "Anonymous"

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// Name returns the display name, or AnonymousName when there is none.
func (u User) Name() string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	return AnonymousName
}

// Verifier checks a bearer token. Failures are errs.ApiErr values with status 401.
type Verifier interface {
	Verify(ctx context.Context, token string) (*User, error)
}
