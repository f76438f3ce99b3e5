package convert_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validate проверяет параметры запроса до обращения к хранилищу
func validate(req Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive, got %d", ErrInvalidReservationID, req.ReservationID)
	}

	if req.HolderToken == "" {
		return fmt.Errorf("%w: holderToken is required", ErrInvalidCustomer)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidCustomer)
	}

	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail %q is not valid", ErrInvalidCustomer, req.CustomerEmail)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidCustomer, domain.MaxNotesLength)
	}

	return nil
}
