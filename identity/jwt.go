package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/volunteer-connect-backend/errs"
)

// Claims carried by locally issued tokens. The subject is the user id.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier accepts HS256 tokens signed with a shared secret. It stands in for Firebase
// in local development and tests.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// Issue signs a token for user that expires after ttl.
func (v *JWTVerifier) Issue(user User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:    user.DisplayName,
		Email:   user.Email,
		Picture: user.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*User, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.NewExpiredTokenError()
		}
		return nil, errs.NewInvalidTokenError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errs.NewInvalidTokenError(errors.New("token has no subject"))
	}

	return &User{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		AvatarURL:   claims.Picture,
	}, nil
}
