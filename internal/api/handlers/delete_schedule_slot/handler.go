package delete_schedule_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	"github.com/m04kA/OpenHouse-BookingService/internal/service/catalog"
)

const (
	msgInvalidSiteID = "некорректный идентификатор площадки"
	msgInvalidSlotID = "некорректный идентификатор слота"
	msgSlotNotFound  = "слот расписания не найден"
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

// Handle DELETE /api/v1/sites/{siteId}/schedule-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	siteID, err := strconv.ParseInt(vars["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-slots - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-slots - Invalid slot id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteScheduleSlot(r.Context(), siteID, slotID); err != nil {
		if errors.Is(err, catalog.ErrSlotNotFound) {
			h.logger.Warn("DELETE /schedule-slots - Slot not found: site_id=%d, slot_id=%d", siteID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)
			return
		}
		h.logger.Error("DELETE /schedule-slots - Failed to delete slot: site_id=%d, slot_id=%d, error=%v",
			siteID, slotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /schedule-slots - Slot deleted: site_id=%d, slot_id=%d", siteID, slotID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
