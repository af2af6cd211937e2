package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rpupo63/volunteer-connect-backend/errs"
	"google.golang.org/api/option"
)

// InitializeFirebase sets up the Firebase Admin SDK auth client from a service account file.
func InitializeFirebase(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return authClient, nil
}

// idTokenVerifier is the part of *auth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens.
type FirebaseVerifier struct {
	client idTokenVerifier
}

func NewFirebaseVerifier(client idTokenVerifier) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return nil, errs.NewExpiredTokenError()
		}
		return nil, errs.NewInvalidTokenError(err)
	}

	return &User{
		ID:          decoded.UID,
		DisplayName: stringClaim(decoded.Claims, "name"),
		Email:       stringClaim(decoded.Claims, "email"),
		AvatarURL:   stringClaim(decoded.Claims, "picture"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
