package create_event_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	createEventBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_event_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgFacilityNotFound   = "объект не найден"
	msgFacilityInactive   = "объект не принимает новые бронирования"
	msgStartInPast        = "время начала события в прошлом"
	msgFacilityConflict   = "объект занят на выбранный интервал"
	msgUnauthorized       = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase CreateEventBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateEventBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/event-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateEventBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /event-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createEventBooking.ErrFacilityConflict):
			h.logger.Warn("POST /event-bookings - Facility conflict: user_id=%d, facilities=%v: %v", userID, req.FacilityIDs, err)
			handlers.RespondConflict(w, msgFacilityConflict)

		case errors.Is(err, createEventBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /event-bookings - Facility not found: facilities=%v", req.FacilityIDs)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createEventBooking.ErrFacilityInactive):
			h.logger.Warn("POST /event-bookings - Facility inactive: facilities=%v", req.FacilityIDs)
			handlers.RespondConflict(w, msgFacilityInactive)

		case errors.Is(err, createEventBooking.ErrStartInPast):
			h.logger.Warn("POST /event-bookings - Start in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createEventBooking.ErrInvalidInput):
			h.logger.Warn("POST /event-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /event-bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("POST /event-bookings - Booking created successfully: booking_id=%d, user_id=%d, facilities=%v",
		result.ID, userID, req.FacilityIDs)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
