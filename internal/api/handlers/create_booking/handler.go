package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OpenHouse-BookingService/internal/api/handlers"
	createBooking "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSiteID        = "некорректный идентификатор площадки"
	msgInvalidInput         = "некорректные данные бронирования"
	msgCaptchaRejected      = "проверка reCAPTCHA не пройдена"
	msgTooManyPeople        = "размер группы превышает допустимый"
	msgSchoolRequired       = "не указано учебное заведение"
	msgSchoolNotFound       = "учебное заведение не найдено"
	msgTooManySlots         = "выбрано слишком много слотов"
	msgConflictingSelection = "одно место выбрано более одного раза"
	msgUnknownAppointment   = "выбранное место или слот не существует"
	msgIneligibleSlot       = "слот недоступен для вашей категории"
	msgDuplicateEmail       = "на этот email уже есть регистрация"
	msgCapacityExceeded     = "выбранные места уже заполнены"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sites/{siteId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.ParseInt(mux.Vars(r)["siteId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid site id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSiteID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(siteID, clientIP(r)))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCaptchaRejected):
			h.logger.Warn("POST /bookings - Captcha rejected: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondError(w, http.StatusForbidden, msgCaptchaRejected)

		case errors.Is(err, createBooking.ErrTooManyPeople):
			h.logger.Warn("POST /bookings - Too many people: site_id=%d, people=%d", siteID, req.People)
			handlers.RespondBadRequest(w, msgTooManyPeople)

		case errors.Is(err, createBooking.ErrSchoolRequired):
			h.logger.Warn("POST /bookings - School required: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondBadRequest(w, msgSchoolRequired)

		case errors.Is(err, createBooking.ErrSchoolNotFound):
			h.logger.Warn("POST /bookings - School not found: site_id=%d", siteID)
			handlers.RespondBadRequest(w, msgSchoolNotFound)

		case errors.Is(err, createBooking.ErrTooManySlots):
			h.logger.Warn("POST /bookings - Too many slots: site_id=%d, selections=%d", siteID, len(req.Selections))
			handlers.RespondBadRequest(w, msgTooManySlots)

		case errors.Is(err, createBooking.ErrConflictingSelection):
			h.logger.Warn("POST /bookings - Conflicting selections: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondBadRequest(w, msgConflictingSelection)

		case errors.Is(err, createBooking.ErrUnknownAppointment):
			h.logger.Warn("POST /bookings - Unknown appointment: site_id=%d", siteID)
			handlers.RespondNotFound(w, msgUnknownAppointment)

		case errors.Is(err, createBooking.ErrIneligibleSlot):
			h.logger.Warn("POST /bookings - Ineligible slot: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondError(w, http.StatusForbidden, msgIneligibleSlot)

		case errors.Is(err, createBooking.ErrDuplicateEmail):
			h.logger.Warn("POST /bookings - Duplicate email: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateEmail)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: site_id=%d, email=%s", siteID, req.Email)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: site_id=%d, error=%v", siteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: student_id=%d, site_id=%d, appointments=%d",
		result.StudentID, siteID, len(result.Confirmed))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
