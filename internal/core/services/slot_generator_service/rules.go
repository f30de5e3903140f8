package slot_generator_service

import (
	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
)

// Функция для проверки занятости слота
func isSlotBooked(mode config.MatchMode, slot domain.Slot, dayBookings []domain.Booking) bool {
	for _, booking := range dayBookings {
		if booking.SlotLabel == slot.Label {
			return true
		}

		if mode != config.MatchModeOverlap {
			continue
		}

		bookingStart, bookingEnd, ok := ParseLabel(booking.SlotLabel)
		if !ok {
			continue
		}

		if isOverlapping(slot.StartOffset, slot.EndOffset, bookingStart, bookingEnd) {
			return true
		}
	}

	return false
}

// Полуинтервалы [start, end) пересекаются
func isOverlapping(slotStart, slotEnd, bookingStart, bookingEnd int) bool {
	startOverlapping := bookingEnd > slotStart
	endOverlapping := bookingStart < slotEnd
	return startOverlapping && endOverlapping
}
