package cancel_booking

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidKind        = "некорректный вид бронирования, ожидается unit или event"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidReason      = "причина отмены слишком длинная"
	msgBookingNotFound    = "бронирование не найдено"
	msgAlreadyCancelled   = "бронирование уже отменено"
	msgTerminalState      = "бронирование завершено, отмена невозможна"
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

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/cancel
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

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/%s/%d/cancel - Invalid request body: %v", kind, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		handlers.RespondBadRequest(w, msgInvalidReason)
		return
	}

	result, err := h.service.Cancel(r.Context(), kind, bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%s/%d/cancel - Booking not found", kind, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /bookings/%s/%d/cancel - Already cancelled", kind, bookingID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, bookings.ErrTerminalState):
			h.logger.Warn("PATCH /bookings/%s/%d/cancel - Booking is completed", kind, bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		default:
			h.logger.Error("PATCH /bookings/%s/%d/cancel - Failed to cancel booking: %v", kind, bookingID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%s/%d/cancel - Booking cancelled successfully", kind, bookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(result))
}
