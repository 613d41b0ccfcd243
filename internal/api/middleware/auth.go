// Package middleware HTTP middleware роутера
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

// Auth проверяет токен администратора в заголовке запроса
// Применяется только к административным маршрутам
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "требуется токен администратора"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
