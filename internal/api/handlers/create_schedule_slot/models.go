package create_schedule_slot

import (
	"time"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	createScheduleSlot "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_schedule_slot"
)

// CreateScheduleSlotRequest HTTP request model
type CreateScheduleSlotRequest struct {
	StartsAt    string   `json:"startsAt"` // "2026-04-18 10:00"
	Authorizeds []string `json:"authorizeds,omitempty"`
}

// ScheduleSlotResponse HTTP response model
type ScheduleSlotResponse struct {
	ID                  int64    `json:"id"`
	SiteID              int64    `json:"siteId"`
	StartsAt            string   `json:"startsAt"`
	Authorizeds         []string `json:"authorizeds,omitempty"`
	AppointmentsCreated int64    `json:"appointmentsCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateScheduleSlotRequest) ToUseCaseRequest(siteID int64) (*createScheduleSlot.Request, error) {
	startsAt, err := time.Parse(domain.DateTimeFormat, r.StartsAt)
	if err != nil {
		return nil, err
	}

	return &createScheduleSlot.Request{
		SiteID:      siteID,
		StartsAt:    startsAt,
		Authorizeds: r.Authorizeds,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createScheduleSlot.Response) *ScheduleSlotResponse {
	return &ScheduleSlotResponse{
		ID:                  resp.ID,
		SiteID:              resp.SiteID,
		StartsAt:            resp.StartsAt.Format(domain.DateTimeFormat),
		Authorizeds:         resp.Authorizeds,
		AppointmentsCreated: resp.AppointmentsCreated,
	}
}
