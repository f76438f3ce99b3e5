package convert_reservation

import (
	"context"

	convertReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/convert_reservation"
)

type ConvertReservationUseCase interface {
	Execute(ctx context.Context, req convertReservation.Request) (*convertReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
