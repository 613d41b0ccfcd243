package get_scheduling

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	ListBySite(ctx context.Context, siteID int64) ([]*domain.Place, error)
}

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	ListBySite(ctx context.Context, siteID int64) ([]*domain.ScheduleSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetLoads(ctx context.Context, siteID int64, countPeople bool) ([]*domain.AppointmentLoad, error)
}

// ConfigRepository интерфейс репозитория конфигурации площадки
type ConfigRepository interface {
	GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
