package catalog

import "context"

// PlaceRepository интерфейс репозитория мест
type PlaceRepository interface {
	Delete(ctx context.Context, siteID, id int64) error
}

// ScheduleRepository интерфейс репозитория слотов расписания
type ScheduleRepository interface {
	Delete(ctx context.Context, siteID, id int64) error
}

// SchoolRepository интерфейс репозитория школ
type SchoolRepository interface {
	Delete(ctx context.Context, siteID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
