package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRespondServerError(t *testing.T) {
	t.Run("обычная ошибка даёт 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities", nil)
		rec := httptest.NewRecorder()

		RespondServerError(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("истёкший дедлайн даёт 503", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		RespondServerError(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
