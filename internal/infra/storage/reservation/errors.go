package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резерв не найден
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateSlot возвращается, когда уникальный индекс (service_id, slot_key)
	// отклонил вставку: конкурент уже удерживает этот слот
	ErrDuplicateSlot = errors.New("reservation.repository: slot already held")

	// ErrNotHeld возвращается при попытке перевести резерв из терминального статуса
	ErrNotHeld = errors.New("reservation.repository: reservation is not held")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
