package delete_place

import "context"

type CatalogService interface {
	DeletePlace(ctx context.Context, siteID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
