package create_place

import (
	"context"

	createPlace "github.com/m04kA/OpenHouse-BookingService/internal/usecase/create_place"
)

type CreatePlaceUseCase interface {
	Execute(ctx context.Context, req *createPlace.Request) (*createPlace.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
