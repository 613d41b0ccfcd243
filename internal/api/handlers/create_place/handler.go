package create_place

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	createPlace "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_place"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSiteID      = "некорректный идентификатор площадки"
	msgInvalidInput       = "некорректные данные места"
)

type Handler struct {
	useCase CreatePlaceUseCase
	logger  Logger
}

func NewHandler(useCase CreatePlaceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sites/{siteId}/places
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.ParseInt(mux.Vars(r)["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /places - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	var req CreatePlaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /places - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(siteID))
	if err != nil {
		if errors.Is(err, createPlace.ErrInvalidInput) {
			h.logger.Warn("POST /places - Invalid input: site_id=%d, name=%s", siteID, req.Name)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /places - Failed to create place: site_id=%d, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /places - Place created: place_id=%d, site_id=%d, appointments=%d",
		result.ID, siteID, result.AppointmentsCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
