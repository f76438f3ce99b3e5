package release_reservation

import (
	"context"

	releaseReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/release_reservation"
)

type ReleaseReservationUseCase interface {
	Execute(ctx context.Context, req releaseReservation.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
