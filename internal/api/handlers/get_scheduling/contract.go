package get_scheduling

import (
	"context"

	getScheduling "github.com/m04kA/OpenHouse-BookingService/internal/usecase/get_scheduling"
)

type GetSchedulingUseCase interface {
	Execute(ctx context.Context, req *getScheduling.Request) (*getScheduling.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
