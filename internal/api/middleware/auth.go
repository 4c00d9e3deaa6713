package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/BRB-AppointmentService/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

type contextKey string

const userIDContextKey contextKey = "userID"

// Auth проверяет наличие заголовка X-User-ID и кладет его значение в
// контекст запроса. Аутентификацию выполняет API-гейтвей, сервис
// доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userIDHeader)
		if userID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+userIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDContextKey).(string); ok {
		return v
	}
	return ""
}
