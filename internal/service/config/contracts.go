package config

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации площадки
type ConfigRepository interface {
	GetBySiteID(ctx context.Context, siteID int64) (*domain.SiteConfig, error)
}

// SchoolRepository интерфейс репозитория школ
type SchoolRepository interface {
	ListBySite(ctx context.Context, siteID int64) ([]*domain.School, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
