package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arjunv/vidtube/internal/api/respond"
	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth authenticates the request with an access token from the accessToken
// cookie or the Authorization header and attaches the resolved principal to
// the context. Any failure short-circuits with 401 before the wrapped
// handler runs; the reason is never surfaced to the caller.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := accessTokenFrom(r)
			if tokenString == "" {
				respond.Unauthorized(w)
				return
			}

			user, err := authService.VerifyAccessToken(r.Context(), tokenString)
			if err != nil {
				slog.DebugContext(r.Context(), "access token rejected", "error", err)
				respond.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// GetUser returns the principal attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
