package convert_reservation

import "time"

// Request запрос на конвертацию резерва в бронирование
type Request struct {
	ReservationID int64
	HolderToken   string

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
}

// Response созданное бронирование
type Response struct {
	AppointmentID int64     `json:"appointmentId"`
	ServiceID     int64     `json:"serviceId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CreatedAt     time.Time `json:"createdAt"`
}
