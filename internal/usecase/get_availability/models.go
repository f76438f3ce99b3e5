package get_availability

import "time"

// Request запрос доступных слотов на дату
type Request struct {
	ServiceID      int64
	Date           string // YYYY-MM-DD в часовом поясе бизнеса
	ClientTimezone string // опционально: IANA-имя для рендеринга времени клиенту
}

// Slot слот в ответе: мгновения в UTC плюс локальное представление
type Slot struct {
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Available       bool      `json:"available"`
	ClientStartTime string    `json:"clientStartTime,omitempty"`
	ClientEndTime   string    `json:"clientEndTime,omitempty"`
}

// BusinessHours часы работы на запрошенную дату
type BusinessHours struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// ServiceInfo краткая информация об услуге
type ServiceInfo struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// TimezoneInfo часовые пояса, в которых выражены времена ответа
type TimezoneInfo struct {
	Business string `json:"business"`
	Client   string `json:"client,omitempty"`
}

// Meta служебные флаги ответа
type Meta struct {
	DegradedConfig bool `json:"degradedConfig"`
	Cached         bool `json:"cached"`
}

// Response ответ со слотами на дату
type Response struct {
	ServiceID     int64         `json:"serviceId"`
	Date          string        `json:"date"`
	Slots         []Slot        `json:"slots"`
	BusinessHours BusinessHours `json:"businessHours"`
	ServiceInfo   ServiceInfo   `json:"serviceInfo"`
	TimezoneInfo  TimezoneInfo  `json:"timezoneInfo"`
	Meta          Meta          `json:"meta"`
}
