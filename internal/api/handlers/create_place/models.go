package create_place

import (
	createPlace "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_place"
)

// CreatePlaceRequest HTTP request model
type CreatePlaceRequest struct {
	Name      string `json:"name"`
	Gauge     int    `json:"gauge"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// PlaceResponse HTTP response model
type PlaceResponse struct {
	ID                  int64  `json:"id"`
	SiteID              int64  `json:"siteId"`
	Name                string `json:"name"`
	Gauge               int    `json:"gauge"`
	SortOrder           int    `json:"sortOrder"`
	AppointmentsCreated int64  `json:"appointmentsCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePlaceRequest) ToUseCaseRequest(siteID int64) *createPlace.Request {
	return &createPlace.Request{
		SiteID:    siteID,
		Name:      r.Name,
		Gauge:     r.Gauge,
		SortOrder: r.SortOrder,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPlace.Response) *PlaceResponse {
	return &PlaceResponse{
		ID:                  resp.ID,
		SiteID:              resp.SiteID,
		Name:                resp.Name,
		Gauge:               resp.Gauge,
		SortOrder:           resp.SortOrder,
		AppointmentsCreated: resp.AppointmentsCreated,
	}
}
