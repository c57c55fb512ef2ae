package directoryservice

// Doctor модель врача из справочника клиники
type Doctor struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	Specialty      string  `json:"specialty"`
	AppointmentFee float64 `json:"appointment_fee"`
	Currency       string  `json:"currency"`
	IsActive       bool    `json:"is_active"`
}

// Room модель кабинета из справочника
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
