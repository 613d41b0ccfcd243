package create_schedule_slot

import (
	"context"

	createScheduleSlot "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_schedule_slot"
)

type CreateScheduleSlotUseCase interface {
	Execute(ctx context.Context, req *createScheduleSlot.Request) (*createScheduleSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
