package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/internal/service/bookings"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidKind         = "некорректный вид бронирования, ожидается unit или event"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidAmount       = "сумма платежа должна быть положительной"
	msgBookingNotFound     = "бронирование не найдено"
	msgPaymentOnCancelled  = "нельзя учесть платёж по отмененному бронированию"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// Handle POST /api/v1/bookings/{kind}/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	kind, err := domain.ParseBookingKind(vars["kind"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s/%d/payments - Invalid request body: %v", kind, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), kind, bookingID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%s/%d/payments - Booking not found", kind, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrInvalidPayment):
			h.logger.Warn("POST /bookings/%s/%d/payments - Invalid amount %.2f", kind, bookingID, req.Amount)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, bookings.ErrPaymentOnCancelled):
			h.logger.Warn("POST /bookings/%s/%d/payments - Booking is cancelled", kind, bookingID)
			handlers.RespondConflict(w, msgPaymentOnCancelled)

		default:
			h.logger.Error("POST /bookings/%s/%d/payments - Failed to record payment: %v", kind, bookingID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("POST /bookings/%s/%d/payments - Payment recorded: amount=%.2f", kind, bookingID, req.Amount)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(result))
}
