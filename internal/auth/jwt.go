// Package auth verifies bearer tokens issued by the accounts service.
package auth

import (
	"errors"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

func (v *TokenVerifier) Verify(token string) (entities.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return entities.Principal{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return entities.Principal{}, ErrInvalidToken
	}

	// токены сервиса аккаунтов содержат только id; роль тогда берётся из users
	var role entities.Role
	switch claims.Role {
	case "":
	case string(entities.RoleAdmin):
		role = entities.RoleAdmin
	default:
		role = entities.RoleUser
	}

	return entities.Principal{UserID: claims.UserID, Role: role}, nil
}

// Issue signs a token the same way the accounts service does.
func (v *TokenVerifier) Issue(p entities.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: p.UserID,
		Role:   string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
