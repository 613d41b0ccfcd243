package create_schedule_slot

import "time"

// Request модель запроса на создание слота расписания
type Request struct {
	SiteID      int64
	StartsAt    time.Time
	Authorizeds []string // префиксы кодов допущенных категорий; пусто = без ограничений
}

// Response модель ответа с созданным слотом
type Response struct {
	ID          int64
	SiteID      int64
	StartsAt    time.Time
	Authorizeds []string

	// AppointmentsCreated количество материализованных записей (по одной на место)
	AppointmentsCreated int64

	CreatedAt time.Time
}
