package delete_school

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	"github.com/m04kA/OpenHouse-BookingService/internal/service/catalog"
)

const (
	msgInvalidSiteID    = "некорректный идентификатор площадки"
	msgInvalidSchoolID  = "некорректный идентификатор школы"
	msgSchoolNotFound   = "школа не найдена"
	msgSchoolReferenced = "школа указана у зарегистрированных посетителей"
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

// Handle DELETE /api/v1/sites/{siteId}/schools/{schoolId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	siteID, err := strconv.ParseInt(vars["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schools - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	schoolID, err := strconv.ParseInt(vars["schoolId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schools - Invalid school id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSchoolID)
		return
	}

	if err := h.service.DeleteSchool(r.Context(), siteID, schoolID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrSchoolNotFound):
			h.logger.Warn("DELETE /schools - School not found: site_id=%d, school_id=%d", siteID, schoolID)
			handlers.RespondNotFound(w, msgSchoolNotFound)

		case errors.Is(err, catalog.ErrSchoolReferenced):
			h.logger.Warn("DELETE /schools - School referenced: site_id=%d, school_id=%d", siteID, schoolID)
			handlers.RespondError(w, http.StatusConflict, msgSchoolReferenced)

		default:
			h.logger.Error("DELETE /schools - Failed to delete school: site_id=%d, school_id=%d, error=%v",
				siteID, schoolID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schools - School deleted: site_id=%d, school_id=%d", siteID, schoolID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
