package create_place

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	Create(ctx context.Context, place *domain.Place) (*domain.Place, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	CreateForPlace(ctx context.Context, siteID, placeID int64) (int64, error)
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
