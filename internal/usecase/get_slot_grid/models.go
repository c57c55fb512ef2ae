package get_slot_grid

import (
	"time"

	"github.com/m04kA/Clinic-SchedulingService/internal/domain"
)

// Request модель запроса сетки слотов
type Request struct {
	ResourceKind domain.ResourceKind // Вид ресурса (врач или кабинет)
	ResourceID   int64               // ID ресурса
	Date         time.Time           // Дата, на которую строится сетка (без времени)
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	ResourceKind        string    // Вид ресурса
	ResourceID          int64     // ID ресурса
	ResourceName        string    // Отображаемое имя ресурса
	Date                time.Time // Дата сетки
	SlotDurationMinutes int       // Ширина слота в минутах
	Slots               []Slot    // Слоты в хронологическом порядке
}

// Slot модель одного слота сетки.
// Available объединяет занятость и политику времени: false означает
// либо пересечение с активным бронированием, либо начало слота внутри
// окна minBookingNoticeMinutes. Чистую занятость считает domain.BuildSlotGrid.
type Slot struct {
	StartAt   time.Time // Начало слота (UTC)
	EndAt     time.Time // Конец слота (UTC, не включается)
	Available bool      // Можно ли забронировать слот прямо сейчас
}
