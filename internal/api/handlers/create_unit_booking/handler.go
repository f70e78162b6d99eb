package create_unit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/api/middleware"
	createUnitBooking "github.com/m04kA/SMC-FacilityService/internal/usecase/create_unit_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidTime            = "некорректный формат времени, ожидается RFC3339"
	msgFacilityNotFound       = "объект не найден"
	msgFacilityInactive       = "объект не принимает новые бронирования"
	msgStartInPast            = "время начала бронирования в прошлом"
	msgInsufficientCapacity   = "недостаточно свободных юнитов на выбранный интервал"
	msgUnauthorized           = "пользователь не аутентифицирован"
)

type Handler struct {
	useCase CreateUnitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateUnitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/unit-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateUnitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /unit-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /unit-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createUnitBooking.ErrInsufficientCapacity):
			h.logger.Warn("POST /unit-bookings - Insufficient capacity: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondConflict(w, msgInsufficientCapacity)

		case errors.Is(err, createUnitBooking.ErrFacilityNotFound):
			h.logger.Warn("POST /unit-bookings - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, createUnitBooking.ErrFacilityInactive):
			h.logger.Warn("POST /unit-bookings - Facility inactive: facility_id=%d", req.FacilityID)
			handlers.RespondConflict(w, msgFacilityInactive)

		case errors.Is(err, createUnitBooking.ErrStartInPast):
			h.logger.Warn("POST /unit-bookings - Start in past: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createUnitBooking.ErrInvalidInput):
			h.logger.Warn("POST /unit-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /unit-bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
				userID, req.FacilityID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	h.logger.Info("POST /unit-bookings - Booking created successfully: booking_id=%d, user_id=%d, facility_id=%d",
		result.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
