package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hirwaf/task-management-be/internal/infrastructure/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth резолвит личность вызывающего из Bearer-токена и кладет
// user id в контекст запроса. Все, что дальше, работает только
// в scope этого пользователя.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID достает id вызывающего, положенный Auth
func UserID(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}
