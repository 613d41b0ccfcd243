package get_site_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
)

const (
	msgInvalidSiteID = "некорректный идентификатор площадки"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sites/{siteId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.ParseInt(mux.Vars(r)["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /config - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	result, err := h.service.GetBySite(r.Context(), siteID)
	if err != nil {
		h.logger.Error("GET /config - Failed to get config: site_id=%d, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /config - Success: site_id=%d", siteID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
