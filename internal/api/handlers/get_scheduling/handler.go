package get_scheduling

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	getScheduling "github.com/m04kA/OpenHouse-BookingService/internal/usecase/get_scheduling"
)

const (
	msgInvalidSiteID = "некорректный идентификатор площадки"
)

type Handler struct {
	useCase GetSchedulingUseCase
	logger  Logger
}

func NewHandler(useCase GetSchedulingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sites/{siteId}/scheduling
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.ParseInt(mux.Vars(r)["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /scheduling - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getScheduling.Request{SiteID: siteID})
	if err != nil {
		if errors.Is(err, getScheduling.ErrInvalidInput) {
			h.logger.Warn("GET /scheduling - Invalid input: site_id=%d", siteID)
			handlers.RespondBadRequest(w, msgInvalidSiteID)
			return
		}
		h.logger.Error("GET /scheduling - Failed to get scheduling: site_id=%d, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /scheduling - Success: site_id=%d, places=%d, cells=%d",
		siteID, len(result.Places), len(result.Occupancy))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
