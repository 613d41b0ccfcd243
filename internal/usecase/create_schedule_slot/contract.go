package create_schedule_slot

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	Create(ctx context.Context, slot *domain.ScheduleSlot) (*domain.ScheduleSlot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CreateForSlot(ctx context.Context, siteID, slotID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
