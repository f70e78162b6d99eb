package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings/models"
)

type fakeService struct {
	booking *models.Booking
	err     error

	gotKind   domain.BookingKind
	gotID     int64
	gotReason *string
}

func (s *fakeService) Cancel(_ context.Context, kind domain.BookingKind, id int64, reason *string) (*models.Booking, error) {
	s.gotKind = kind
	s.gotID = id
	s.gotReason = reason
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func cancelledUnit() *models.Booking {
	cancelledAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &models.Booking{
		Kind: domain.KindUnit,
		Unit: &domain.UnitBooking{
			ID:                 10,
			FacilityID:         1,
			UserID:             100,
			CustomerName:       "Иван Петров",
			StartTime:          cancelledAt.Add(24 * time.Hour),
			EndTime:            cancelledAt.Add(26 * time.Hour),
			BookedUnits:        2,
			Status:             domain.StatusCancelled,
			PaymentStatus:      domain.PaymentRefunded,
			TotalAmount:        1000,
			PaidAmount:         800,
			CancellationCharge: 500,
			RefundAmount:       300,
			CancelledAt:        &cancelledAt,
			RemindAt:           cancelledAt,
		},
	}
}

func doRequest(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	h := NewHandler(svc, nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{kind}/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("отмена с причиной", func(t *testing.T) {
		svc := &fakeService{booking: cancelledUnit()}

		rec := doRequest(svc, "/api/v1/bookings/unit/10/cancel", `{"reason":"изменились планы"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.KindUnit, svc.gotKind)
		assert.Equal(t, int64(10), svc.gotID)
		require.NotNil(t, svc.gotReason)
		assert.Equal(t, "изменились планы", *svc.gotReason)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cancelled", resp["status"])
		assert.Equal(t, 500.0, resp["cancellationCharge"])
		assert.Equal(t, 300.0, resp["refundAmount"])
	})

	t.Run("отмена без тела запроса", func(t *testing.T) {
		svc := &fakeService{booking: cancelledUnit()}

		rec := doRequest(svc, "/api/v1/bookings/unit/10/cancel", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, svc.gotReason)
	})

	t.Run("неизвестный вид бронирования", func(t *testing.T) {
		rec := doRequest(&fakeService{}, "/api/v1/bookings/weekly/10/cancel", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("некорректный ID", func(t *testing.T) {
		rec := doRequest(&fakeService{}, "/api/v1/bookings/unit/abc/cancel", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("бронирование не найдено", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrBookingNotFound}

		rec := doRequest(svc, "/api/v1/bookings/unit/10/cancel", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("повторная отмена даёт конфликт", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrAlreadyCancelled}

		rec := doRequest(svc, "/api/v1/bookings/unit/10/cancel", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("завершённое бронирование даёт конфликт", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrTerminalState}

		rec := doRequest(svc, "/api/v1/bookings/event/10/cancel", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("внутренняя ошибка", func(t *testing.T) {
		svc := &fakeService{err: bookings.ErrInternal}

		rec := doRequest(svc, "/api/v1/bookings/unit/10/cancel", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
