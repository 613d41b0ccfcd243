package create_schedule_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	createScheduleSlot "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_schedule_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSiteID      = "некорректный идентификатор площадки"
	msgInvalidStartsAt    = "некорректный формат времени начала, ожидается YYYY-MM-DD HH:MM"
	msgInvalidInput       = "некорректные данные слота"
)

type Handler struct {
	useCase CreateScheduleSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateScheduleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sites/{siteId}/schedule-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.ParseInt(mux.Vars(r)["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /schedule-slots - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	var req CreateScheduleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(siteID)
	if err != nil {
		h.logger.Warn("POST /schedule-slots - Failed to parse startsAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartsAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, createScheduleSlot.ErrInvalidInput) {
			h.logger.Warn("POST /schedule-slots - Invalid input: site_id=%d", siteID)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /schedule-slots - Failed to create slot: site_id=%d, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /schedule-slots - Slot created: slot_id=%d, site_id=%d, appointments=%d",
		result.ID, siteID, result.AppointmentsCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
