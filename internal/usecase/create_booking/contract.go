package create_booking

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
	"github.com/m04kA/OpenHouse-BookingService/internal/integrations/mailer"
)

// StudentRepository интерфейс репозитория посетителей
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	Delete(ctx context.Context, id int64) error
}

// SchoolRepository интерфейс репозитория школ
type SchoolRepository interface {
	GetByCode(ctx context.Context, siteID int64, code string) (*domain.School, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockForBooking(ctx context.Context, keys []domain.AppointmentKey) ([]*domain.Appointment, error)
	GetLoadsByKeys(ctx context.Context, keys []domain.AppointmentKey, countPeople bool) ([]*domain.AppointmentLoad, error)
	AddStudent(ctx context.Context, keys []domain.AppointmentKey, studentID int64) error
}

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.Place, error)
}

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	GetByIDs(ctx context.Context, siteID int64, ids []int64) ([]*domain.ScheduleSlot, error)
}

// ConfigRepository интерфейс репозитория конфигурации площадки
type ConfigRepository interface {
	GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error)
}

// CaptchaVerifier интерфейс проверки reCAPTCHA токена
type CaptchaVerifier interface {
	Verify(ctx context.Context, secret, token, remoteIP string) error
}

// Notifier интерфейс отправки писем подтверждения
type Notifier interface {
	SendConfirmation(conf mailer.Confirmation, testMode bool) error
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
