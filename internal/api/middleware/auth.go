package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-TrainerService/internal/api/handlers"
)

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID
// Аутентификацию выполняет API gateway, сервис доверяет заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-ID") == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
