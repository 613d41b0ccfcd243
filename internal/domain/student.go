package domain

import (
	"time"

	"github.com/google/uuid"
)

// Student регистрирующийся посетитель дня открытых дверей
// Создается на каждую попытку бронирования; при откате транзакции запись удаляется
type Student struct {
	ID               int64
	SiteID           int64
	FirstName        string
	LastName         string
	Email            string // уникален глобально - защита от повторной регистрации
	People           int    // размер группы, включая сопровождающих (>= 1)
	SchoolID         *int64
	ConfirmationCode uuid.UUID
	CreatedAt        time.Time
}

// FullName returns the registrant's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// School категория посетителя (учебное заведение)
// Удаление школы запрещено, пока на неё ссылается хотя бы один посетитель
type School struct {
	ID     int64
	SiteID int64
	Code   string
	Name   string
}
