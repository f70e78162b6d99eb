package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-FacilityService/internal/usecase/get_availability"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgInvalidWindow     = "некорректные параметры from/to, ожидается RFC3339"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/availability?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()

	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		FacilityID: facilityID,
		From:       from.UTC(),
		To:         to.UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/%d/availability - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /facilities/%d/availability - Invalid input: %v", facilityID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /facilities/%d/availability - Failed to get availability: %v", facilityID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
