package hold_slot

import "time"

// Request запрос на удержание слота
type Request struct {
	ServiceID   int64
	StartTime   time.Time // мгновение начала слота (UTC)
	HolderToken string    // опционально: пустой токен генерируется сервером
}

// Response созданный резерв
type Response struct {
	ReservationID int64     `json:"reservationId"`
	ServiceID     int64     `json:"serviceId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	HolderToken   string    `json:"holderToken"`
	ExpiresAt     time.Time `json:"expiresAt"`
	Status        string    `json:"status"`
}
