package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FacilityService/internal/api/handlers"
	"github.com/m04kA/SMC-FacilityService/internal/domain"
)

const (
	msgInvalidKind     = "некорректный вид бронирования, ожидается unit или event"
	msgInvalidFacility = "некорректный параметр facilityId"
	msgInvalidPeriod   = "некорректный формат периода, ожидается RFC3339"
	msgInvalidStatus   = "некорректный статус бронирования"
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

// ListResponse HTTP response model
type ListResponse struct {
	Bookings []*handlers.BookingResponse `json:"bookings"`
	Total    int                         `json:"total"`
}

// Handle GET /api/v1/bookings/{kind}
// Query-параметры: facilityId, from, to (RFC3339), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseBookingKind(mux.Vars(r)["kind"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /bookings/%s - Invalid filter: %v", kind, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), kind, *filter)
	if err != nil {
		h.logger.Error("GET /bookings/%s - Failed to list bookings: %v", kind, err)
		handlers.RespondServerError(w, r)
		return
	}

	items := make([]*handlers.BookingResponse, 0, len(result))
	for _, b := range result {
		items = append(items, handlers.FromBooking(b))
	}

	handlers.RespondJSON(w, http.StatusOK, ListResponse{
		Bookings: items,
		Total:    len(items),
	})
}

// parseFilter разбирает query-параметры фильтра
func parseFilter(r *http.Request) (*domain.BookingsFilter, error) {
	query := r.URL.Query()
	filter := &domain.BookingsFilter{}

	if raw := query.Get("facilityId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New(msgInvalidFacility)
		}
		filter.FacilityID = &id
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New(msgInvalidPeriod)
		}
		utc := from.UTC()
		filter.From = &utc
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, errors.New(msgInvalidPeriod)
		}
		utc := to.UTC()
		filter.To = &utc
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.BookingStatus(raw)
		if !domain.ValidUnitStatus(status) {
			return nil, errors.New(msgInvalidStatus)
		}
		filter.Status = &status
	}

	if query.Get("includeInactive") == "true" {
		filter.IncludeInactive = true
	}

	return filter, nil
}
