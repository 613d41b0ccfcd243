package get_scheduling

import "time"

// Request модель запроса расписания площадки
type Request struct {
	SiteID int64
}

// Response модель ответа с расписанием и занятостью
type Response struct {
	SiteID    int64
	Places    []Place
	Days      []Day
	Occupancy []Cell
}

// Place место дня открытых дверей
type Place struct {
	ID    int64
	Name  string
	Gauge int
}

// Day слоты одного календарного дня
type Day struct {
	Date  time.Time
	Slots []Slot
}

// Slot слот расписания
type Slot struct {
	ID          int64
	StartsAt    time.Time
	Authorizeds []string
}

// Cell занятость одной записи (место, слот)
// People и Density обнуляются, если отображение выключено конфигурацией;
// Level классифицируется всегда по фактической занятости
type Cell struct {
	PlaceID int64
	SlotID  int64
	People  int
	Density float64
	Level   string
}
