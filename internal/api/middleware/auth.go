package middleware

import (
	"context"
	"net/http"

	"github.com/perkpoint/storefront-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID возвращает ID пользователя из контекста запроса
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// Auth проверяет наличие идентификатора пользователя в заголовке X-User-ID
// и кладет его в контекст. Гостевые пользователи передают сгенерированный
// клиентом идентификатор.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "X-User-ID header is required")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
