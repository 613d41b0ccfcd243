package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Auth("admin-token")(next)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sites/1/places/2", nil)
		req.Header.Set(AdminTokenHeader, "admin-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sites/1/places/2", nil)
		req.Header.Set(AdminTokenHeader, "guess")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sites/1/places/2", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty configured token rejects everything", func(t *testing.T) {
		open := Auth("")(next)
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sites/1/places/2", nil)
		req.Header.Set(AdminTokenHeader, "")
		rec := httptest.NewRecorder()

		open.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
