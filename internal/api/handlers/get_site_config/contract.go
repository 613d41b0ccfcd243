package get_site_config

import (
	"context"

	"github.com/m04kA/OpenHouse-BookingService/internal/service/config/models"
)

type ConfigService interface {
	GetBySite(ctx context.Context, siteID int64) (*models.PublicConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
