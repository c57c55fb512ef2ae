package domain

// OverlappingBookings возвращает активные бронирования, пересекающие candidate.
// Бронирование с ID excludeBookingID (если указан) игнорируется —
// используется при переносе, чтобы не конфликтовать с самим собой.
func OverlappingBookings(bookings []*Booking, candidate Interval, excludeBookingID *int64) []*Booking {
	overlapping := make([]*Booking, 0)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		if booking.Interval().Overlaps(candidate) {
			overlapping = append(overlapping, booking)
		}
	}

	return overlapping
}

// IsIntervalFree возвращает true, если ни одно активное бронирование
// не пересекает candidate. Результат консультативный: между чтением
// снапшота и записью другой клиент может занять интервал, поэтому
// окончательная проверка выполняется в транзакции коммита.
func IsIntervalFree(bookings []*Booking, candidate Interval, excludeBookingID *int64) bool {
	return len(OverlappingBookings(bookings, candidate, excludeBookingID)) == 0
}
