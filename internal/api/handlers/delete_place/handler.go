package delete_place

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	"github.com/m04kA/OpenHouse-BookingService/internal/service/catalog"
)

const (
	msgInvalidSiteID  = "некорректный идентификатор площадки"
	msgInvalidPlaceID = "некорректный идентификатор места"
	msgPlaceNotFound  = "место не найдено"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sites/{siteId}/places/{placeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	siteID, err := strconv.ParseInt(vars["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /places - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	placeID, err := strconv.ParseInt(vars["placeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /places - Invalid place id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlaceID)
		return
	}

	if err := h.service.DeletePlace(r.Context(), siteID, placeID); err != nil {
		if errors.Is(err, catalog.ErrPlaceNotFound) {
			h.logger.Warn("DELETE /places - Place not found: site_id=%d, place_id=%d", siteID, placeID)
			handlers.RespondNotFound(w, msgPlaceNotFound)
			return
		}
		h.logger.Error("DELETE /places - Failed to delete place: site_id=%d, place_id=%d, error=%v",
			siteID, placeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /places - Place deleted: site_id=%d, place_id=%d", siteID, placeID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
