package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("валидный заголовок пропускается", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/unit", nil)
		req.Header.Set("X-User-ID", "42")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, int64(42), gotUserID)
	})

	t.Run("без заголовка 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/unit", nil)
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("нечисловой заголовок 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/unit", nil)
		req.Header.Set("X-User-ID", "abc")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("неположительный ID 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/unit", nil)
		req.Header.Set("X-User-ID", "0")
		rec := httptest.NewRecorder()

		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
