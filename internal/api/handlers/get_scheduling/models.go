package get_scheduling

import (
	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	getScheduling "github.com/m04kA/OpenHouse-BookingService/internal/usecase/get_scheduling"
)

// SchedulingResponse HTTP response model
type SchedulingResponse struct {
	SiteID    int64           `json:"siteId"`
	Places    []PlaceResponse `json:"places"`
	Days      []DayResponse   `json:"days"`
	Occupancy []CellResponse  `json:"occupancy"`
}

// PlaceResponse место в расписании
type PlaceResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Gauge int    `json:"gauge"`
}

// DayResponse слоты одного календарного дня
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse слот расписания
type SlotResponse struct {
	ID          int64    `json:"id"`
	StartsAt    string   `json:"startsAt"`
	Authorizeds []string `json:"authorizeds,omitempty"`
}

// CellResponse занятость одной записи
type CellResponse struct {
	PlaceID int64   `json:"placeId"`
	SlotID  int64   `json:"slotId"`
	People  int     `json:"people"`
	Density float64 `json:"density"`
	Level   string  `json:"level"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getScheduling.Response) *SchedulingResponse {
	out := &SchedulingResponse{
		SiteID:    resp.SiteID,
		Places:    make([]PlaceResponse, 0, len(resp.Places)),
		Days:      make([]DayResponse, 0, len(resp.Days)),
		Occupancy: make([]CellResponse, 0, len(resp.Occupancy)),
	}

	for _, p := range resp.Places {
		out.Places = append(out.Places, PlaceResponse{ID: p.ID, Name: p.Name, Gauge: p.Gauge})
	}

	for _, d := range resp.Days {
		day := DayResponse{
			Date:  d.Date.Format(domain.DateFormat),
			Slots: make([]SlotResponse, 0, len(d.Slots)),
		}
		for _, s := range d.Slots {
			day.Slots = append(day.Slots, SlotResponse{
				ID:          s.ID,
				StartsAt:    s.StartsAt.Format(domain.DateTimeFormat),
				Authorizeds: s.Authorizeds,
			})
		}
		out.Days = append(out.Days, day)
	}

	for _, c := range resp.Occupancy {
		out.Occupancy = append(out.Occupancy, CellResponse{
			PlaceID: c.PlaceID,
			SlotID:  c.SlotID,
			People:  c.People,
			Density: c.Density,
			Level:   c.Level,
		})
	}

	return out
}
