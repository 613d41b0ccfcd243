package delete_schedule_slot

import "context"

type CatalogService interface {
	DeleteScheduleSlot(ctx context.Context, siteID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
