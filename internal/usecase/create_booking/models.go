package create_booking

import "time"

// Selection выбранная пара (место, слот)
type Selection struct {
	PlaceID int64
	SlotID  int64
}

// Request модель запроса на создание бронирования
type Request struct {
	SiteID       int64
	FirstName    string
	LastName     string
	Email        string
	School       *string // код категории посетителя (обязателен, если проверка категорий включена)
	People       int     // размер группы, включая сопровождающих (учитывается, если сбор включен)
	CaptchaToken string
	RemoteIP     string
	Selections   []Selection
}

// ConfirmedAppointment подтвержденная запись в составе бронирования
type ConfirmedAppointment struct {
	PlaceID   int64
	SlotID    int64
	PlaceName string
	StartsAt  time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	StudentID        int64
	Email            string
	People           int
	ConfirmationCode string
	Confirmed        []ConfirmedAppointment
}
