package create_reservation

import (
	"context"

	holdSlot "github.com/m04kA/SMC-ScheduleService/internal/usecase/hold_slot"
)

type HoldSlotUseCase interface {
	Execute(ctx context.Context, req holdSlot.Request) (*holdSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
