package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-order-service/pkg/utils"
)

type TokenVerifier interface {
	Verify(token string) (entities.Principal, error)
}

type RoleResolver interface {
	UserRole(ctx context.Context, userID string) (entities.Role, error)
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p entities.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (entities.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(entities.Principal)
	return p, ok
}

// Authenticate требует заголовок "Authorization: Bearer <token>".
// Роль берётся из users; claim role используется, только если пользователя нет в базе или roles == nil.
func Authenticate(v TokenVerifier, roles RoleResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utils.WriteError(w, "not authorized, no token", http.StatusUnauthorized)
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				utils.WriteError(w, "not authorized, token failed", http.StatusUnauthorized)
				return
			}

			if roles != nil {
				role, err := roles.UserRole(r.Context(), p.UserID)
				switch {
				case err == nil:
					p.Role = role
				case errors.Is(err, entities.ErrUserNotFound) && p.Role != "":
				case errors.Is(err, entities.ErrUserNotFound):
					utils.WriteError(w, "not authorized, user not found", http.StatusUnauthorized)
					return
				default:
					utils.WriteError(w, "internal server error", http.StatusInternalServerError)
					return
				}
			}
			if p.Role == "" {
				p.Role = entities.RoleUser
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || !p.IsAdmin() {
			utils.WriteError(w, "admin access only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
