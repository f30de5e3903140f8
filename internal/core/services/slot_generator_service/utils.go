package slot_generator_service

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
)

const labelSeparator = " - "

// FormatTime печатает смещение в минутах как HH:MM (24 часа)
func FormatTime(offset int) string {
	return fmt.Sprintf("%02d:%02d", offset/60, offset%60)
}

func FormatLabel(start, end int) string {
	return FormatTime(start) + labelSeparator + FormatTime(end)
}

// ParseLabel разбирает "HH:MM - HH:MM" обратно в смещения
func ParseLabel(label string) (int, int, bool) {
	parts := strings.Split(label, labelSeparator)
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, err := domain.ParseClock(parts[0])
	if err != nil {
		return 0, 0, false
	}
	end, err := domain.ParseClock(parts[1])
	if err != nil || end <= start {
		return 0, 0, false
	}

	return start, end, true
}

// DurationFromLabel вычисляет длительность слота по его метке
func DurationFromLabel(label string) (int, bool) {
	start, end, ok := ParseLabel(label)
	if !ok {
		return 0, false
	}
	return end - start, true
}

// FindSlot ищет слот по точному совпадению метки
func FindSlot(slots []domain.Slot, label string) (domain.Slot, bool) {
	for _, slot := range slots {
		if slot.Label == label {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

func bookingsForDate(bookings []domain.Booking, date json_types.Date) []domain.Booking {
	dayBookings := make([]domain.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.Date.Equal(date) {
			dayBookings = append(dayBookings, booking)
		}
	}
	return dayBookings
}
