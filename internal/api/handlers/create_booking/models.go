package create_booking

import (
	"net"
	"net/http"
	"strings"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	createBooking "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_booking"
)

// SelectionRequest выбранная пара (место, слот)
type SelectionRequest struct {
	PlaceID int64 `json:"placeId"`
	SlotID  int64 `json:"slotId"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Email        string             `json:"email"`
	School       *string            `json:"school,omitempty"`
	People       int                `json:"people,omitempty"`
	CaptchaToken string             `json:"captchaToken,omitempty"`
	Selections   []SelectionRequest `json:"selections"`
}

// ConfirmedAppointmentResponse подтвержденная запись в ответе
type ConfirmedAppointmentResponse struct {
	PlaceID   int64  `json:"placeId"`
	SlotID    int64  `json:"slotId"`
	PlaceName string `json:"placeName"`
	StartsAt  string `json:"startsAt"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	StudentID        int64                          `json:"studentId"`
	Email            string                         `json:"email"`
	People           int                            `json:"people"`
	ConfirmationCode string                         `json:"confirmationCode"`
	Confirmed        []ConfirmedAppointmentResponse `json:"confirmed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(siteID int64, remoteIP string) *createBooking.Request {
	selections := make([]createBooking.Selection, 0, len(r.Selections))
	for _, sel := range r.Selections {
		selections = append(selections, createBooking.Selection{
			PlaceID: sel.PlaceID,
			SlotID:  sel.SlotID,
		})
	}

	return &createBooking.Request{
		SiteID:       siteID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		School:       r.School,
		People:       r.People,
		CaptchaToken: r.CaptchaToken,
		RemoteIP:     remoteIP,
		Selections:   selections,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	confirmed := make([]ConfirmedAppointmentResponse, 0, len(resp.Confirmed))
	for _, c := range resp.Confirmed {
		confirmed = append(confirmed, ConfirmedAppointmentResponse{
			PlaceID:   c.PlaceID,
			SlotID:    c.SlotID,
			PlaceName: c.PlaceName,
			StartsAt:  c.StartsAt.Format(domain.DateTimeFormat),
		})
	}

	return &BookingResponse{
		StudentID:        resp.StudentID,
		Email:            resp.Email,
		People:           resp.People,
		ConfirmationCode: resp.ConfirmationCode,
		Confirmed:        confirmed,
	}
}

// clientIP извлекает IP клиента из запроса
// Первый адрес X-Forwarded-For при работе за прокси, иначе RemoteAddr
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
