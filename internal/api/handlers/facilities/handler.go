package facilities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	facilityRepo "github.com/m04kA/SMC-FacilityService/internal/infra/storage/facility"
)

const (
	msgInvalidFacilityID = "некорректный ID объекта"
	msgFacilityNotFound  = "объект не найден"
)

type Handler struct {
	provider FacilityProvider
	logger   Logger
}

func NewHandler(provider FacilityProvider, logger Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// HandleList GET /api/v1/facilities
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.provider.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /facilities - Failed to list facilities: %v", err)
		handlers.RespondServerError(w, r)
		return
	}

	items := make([]*FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		items = append(items, FromDomain(f))
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Facilities: items,
		Total:      len(items),
	})
}

// HandleGet GET /api/v1/facilities/{facilityId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	facility, err := h.provider.GetByID(r.Context(), facilityID)
	if err != nil {
		switch {
		case errors.Is(err, facilityRepo.ErrFacilityNotFound):
			h.logger.Warn("GET /facilities/%d - Facility not found", facilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		default:
			h.logger.Error("GET /facilities/%d - Failed to get facility: %v", facilityID, err)
			handlers.RespondServerError(w, r)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(facility))
}
