package reschedule_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID  int64     // ID любой строки переносимой заявки
	UserID     int64     // ID пользователя (владелец)
	NewStartAt time.Time // Новое начало
	NewEndAt   time.Time // Новый конец (не включается)
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	GroupID  string        // Новый общий идентификатор строк заявки
	Bookings []BookingData // Новые строки бронирования
}

// BookingData данные одной строки перенесённого бронирования
type BookingData struct {
	ID           int64     // ID бронирования
	ResourceKind string    // Вид ресурса
	ResourceID   int64     // ID ресурса
	ResourceName string    // Отображаемое имя ресурса
	StartAt      time.Time // Начало
	EndAt        time.Time // Конец
	Status       string    // Статус бронирования
}
