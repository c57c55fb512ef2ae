package check_availability

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// Request модель запроса проверки доступности интервала
type Request struct {
	ResourceKind domain.ResourceKind // Вид ресурса (врач или кабинет)
	ResourceID   int64               // ID ресурса
	StartAt      time.Time           // Начало интервала
	EndAt        time.Time           // Конец интервала (не включается)

	// ExcludeBookingID исключает бронирование из проверки —
	// нужен для сценария переноса, чтобы своё же бронирование
	// не считалось конфликтом
	ExcludeBookingID *int64
}

// Response модель ответа проверки доступности.
// Ответ носит справочный характер: между проверкой и фиксацией
// интервал может занять конкурирующее бронирование.
type Response struct {
	ResourceKind string     // Вид ресурса
	ResourceID   int64      // ID ресурса
	StartAt      time.Time  // Проверенный интервал
	EndAt        time.Time
	Available    bool       // Свободен ли интервал целиком
	Conflicts    []Conflict // Пересекающиеся активные бронирования
}

// Conflict модель пересекающегося бронирования
type Conflict struct {
	BookingID int64     // ID конфликтующего бронирования
	StartAt   time.Time // Начало
	EndAt     time.Time // Конец
	Status    string    // Статус бронирования
}
