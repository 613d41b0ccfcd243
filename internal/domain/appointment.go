package domain

import (
	"fmt"
	"time"
)

// AppointmentKey составной ключ записи (место, слот)
// Заменяет строковый идентификатор вида "{place}-{slot}": ключ не требует
// парсинга и не допускает коллизий при форматировании
type AppointmentKey struct {
	PlaceID int64
	SlotID  int64
}

// String возвращает строковое представление ключа для логов
func (k AppointmentKey) String() string {
	return fmt.Sprintf("%d-%d", k.PlaceID, k.SlotID)
}

// Less задает фиксированный порядок ключей (place_id, затем slot_id)
// Блокировки записей берутся строго в этом порядке, чтобы два конкурентных
// бронирования с пересекающимися наборами слотов не попадали в deadlock
func (k AppointmentKey) Less(other AppointmentKey) bool {
	if k.PlaceID != other.PlaceID {
		return k.PlaceID < other.PlaceID
	}
	return k.SlotID < other.SlotID
}

// Appointment бронируемая единица: одно место в один слот расписания
// Материализуется заранее для каждой пары место x слот
type Appointment struct {
	Key          AppointmentKey
	PlaceName    string
	Gauge        int
	SlotStartsAt time.Time
}

// HasRoomFor проверяет, вмещает ли запись еще people человек при занятости load
func (a *Appointment) HasRoomFor(load, people int) bool {
	return load+people <= a.Gauge
}

// AppointmentLoad текущая занятость записи
type AppointmentLoad struct {
	Key  AppointmentKey
	Load int
}
