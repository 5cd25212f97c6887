package handlers

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrMissingUserID возвращается, когда заголовок X-User-ID отсутствует
var ErrMissingUserID = errors.New("missing X-User-ID header")

// UserIDFromRequest извлекает ID пользователя из заголовка X-User-ID
// Заголовок проставляется API gateway после аутентификации
func UserIDFromRequest(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, ErrMissingUserID
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid X-User-ID header")
	}
	return userID, nil
}
