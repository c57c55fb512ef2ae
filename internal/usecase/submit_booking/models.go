package submit_booking

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// Request модель заявки на бронирование.
//
// Приём (appointment): DoctorID обязателен, RoomID опционален —
// при указанном кабинете фиксируются две строки с общим GroupID.
// Аренда (rental): RoomID обязателен, DoctorID не указывается.
type Request struct {
	UserID   int64                // ID пользователя
	Source   domain.BookingSource // Источник: приём или аренда
	DoctorID *int64               // ID врача (для приёма)
	RoomID   *int64               // ID кабинета
	StartAt  time.Time            // Начало интервала
	EndAt    time.Time            // Конец интервала (не включается)
	Notes    *string              // Дополнительные заметки (опционально)
}

// Response модель ответа с зафиксированным бронированием
type Response struct {
	GroupID  string        // Общий идентификатор строк одной заявки
	Bookings []BookingData // Зафиксированные бронирования (1 или 2 строки)
	Payment  *PaymentData  // Платёжная запись (для приёмов у врача)
}

// BookingData данные одного зафиксированного бронирования
type BookingData struct {
	ID           int64     // ID бронирования
	ResourceKind string    // Вид ресурса
	ResourceID   int64     // ID ресурса
	ResourceName string    // Отображаемое имя ресурса
	UserID       int64     // ID пользователя
	Source       string    // Источник бронирования
	StartAt      time.Time // Начало
	EndAt        time.Time // Конец
	Status       string    // Статус бронирования
	Fee          float64   // Стоимость
	Currency     string    // Валюта
	Notes        *string   // Заметки
	CreatedAt    time.Time // Время создания
}

// PaymentData данные платёжной записи
type PaymentData struct {
	ID          int64   // ID платёжной записи
	BookingID   int64   // ID бронирования приёма
	ExternalRef string  // Ссылка для внешней платёжной системы
	Amount      float64 // Сумма
	Currency    string  // Валюта
	Status      string  // Статус платежа
}
