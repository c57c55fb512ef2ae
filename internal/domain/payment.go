package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus статус платёжной записи
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentFinalized PaymentStatus = "finalized"
	PaymentVoid      PaymentStatus = "void"
)

// PaymentRecord платёжная привязка бронирования приёма.
// Одна запись на бронирование (booking_id уникален), upsert идемпотентен:
// повтор шага оплаты после сбоя не создаёт дубликатов.
type PaymentRecord struct {
	ID          int64
	BookingID   int64
	ExternalRef uuid.UUID // ссылка для внешней платёжной системы
	Amount      float64
	Currency    string
	Status      PaymentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
