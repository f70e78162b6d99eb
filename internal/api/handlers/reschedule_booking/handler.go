package reschedule_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidKind          = "некорректный вид бронирования, ожидается unit или event"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidTime          = "некорректный формат времени, ожидается RFC3339"
	msgBookingNotFound      = "бронирование не найдено"
	msgTerminalState        = "бронирование завершено или отменено, перенос невозможен"
	msgStartInPast          = "новое время начала в прошлом"
	msgInsufficientCapacity = "недостаточно свободных юнитов на новом интервале"
	msgFacilityConflict     = "объект занят на новом интервале"
	msgFacilityNotFound     = "объект из нового набора не найден"
	msgFacilityInactive     = "объект из нового набора не принимает бронирования"
	msgUnauthorized         = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{kind}/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

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

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Invalid request body: %v", kind, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(kind, bookingID, userID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Failed to parse request: %v", kind, bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Booking not found", kind, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrTerminalState):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Booking in terminal state", kind, bookingID)
			handlers.RespondConflict(w, msgTerminalState)

		case errors.Is(err, rescheduleBooking.ErrInsufficientCapacity):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Insufficient capacity on new interval", kind, bookingID)
			handlers.RespondConflict(w, msgInsufficientCapacity)

		case errors.Is(err, rescheduleBooking.ErrFacilityConflict):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Facility conflict on new interval", kind, bookingID)
			handlers.RespondConflict(w, msgFacilityConflict)

		case errors.Is(err, rescheduleBooking.ErrFacilityNotFound):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Facility from new set not found", kind, bookingID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, rescheduleBooking.ErrFacilityInactive):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Facility from new set inactive", kind, bookingID)
			handlers.RespondConflict(w, msgFacilityInactive)

		case errors.Is(err, rescheduleBooking.ErrStartInPast):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - New start in past", kind, bookingID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/%s/%d/reschedule - Invalid input: %v", kind, bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/%s/%d/reschedule - Failed to reschedule: %v", kind, bookingID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("PATCH /bookings/%s/%d/reschedule - Rescheduled successfully: count=%d", kind, bookingID, result.RescheduleCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
