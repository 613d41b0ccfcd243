package create_place

import "time"

// Request модель запроса на создание места
type Request struct {
	SiteID    int64
	Name      string
	Gauge     int
	SortOrder int
}

// Response модель ответа с созданным местом
type Response struct {
	ID        int64
	SiteID    int64
	Name      string
	Gauge     int
	SortOrder int

	// AppointmentsCreated количество материализованных записей (по одной на слот)
	AppointmentsCreated int64

	CreatedAt time.Time
}
