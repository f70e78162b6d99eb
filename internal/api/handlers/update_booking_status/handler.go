package update_booking_status

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
	msgInvalidStatus      = "недопустимый статус для данного вида бронирования"
	msgBookingNotFound    = "бронирование не найдено"
	msgTerminalState      = "бронирование завершено или отменено, изменение невозможно"
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

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/status
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

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%s/%d/status - Invalid request body: %v", kind, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		s := domain.BookingStatus(*req.Status)
		status = &s
	}
	var paymentStatus *domain.PaymentStatus
	if req.PaymentStatus != nil {
		ps := domain.PaymentStatus(*req.PaymentStatus)
		paymentStatus = &ps
	}

	result, err := h.service.UpdateStatus(r.Context(), kind, bookingID, status, paymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%s/%d/status - Booking not found", kind, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrTerminalState):
			h.logger.Warn("PATCH /bookings/%s/%d/status - Booking in terminal state", kind, bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/%s/%d/status - Invalid status: %v", kind, bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/%s/%d/status - Failed to update status: %v", kind, bookingID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%s/%d/status - Status updated successfully", kind, bookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBooking(result))
}
