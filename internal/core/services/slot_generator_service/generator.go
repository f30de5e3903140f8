package slot_generator_service

import (
	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
)

// Generator строит сетку слотов рабочего дня. Чистая функция от входных
// данных: часы не читаются, состояние не хранится.
type Generator struct {
	window domain.OperatingWindow
	mode   config.MatchMode
}

func NewGenerator(window domain.OperatingWindow, mode config.MatchMode) *Generator {
	if mode == "" {
		mode = config.MatchModeLabel
	}
	return &Generator{
		window: window,
		mode:   mode,
	}
}

// GenerateSlots с окном 09:30-20:00 и сравнением по меткам
func GenerateSlots(durationMinutes int, date json_types.Date, bookings []domain.Booking) []domain.Slot {
	return NewGenerator(domain.DefaultOperatingWindow, config.MatchModeLabel).GenerateSlots(durationMinutes, date, bookings)
}

func (g *Generator) Window() domain.OperatingWindow {
	return g.window
}

func (g *Generator) GenerateSlots(durationMinutes int, date json_types.Date, bookings []domain.Booking) []domain.Slot {
	slots := make([]domain.Slot, 0)

	// На бессмысленных входных данных отдаем пустую сетку, а не ошибку
	if durationMinutes <= 0 || date.IsZero() || g.window.End <= g.window.Start {
		return slots
	}
	if durationMinutes > g.window.End-g.window.Start {
		return slots
	}

	dayBookings := bookingsForDate(bookings, date)

	// Слот попадает в сетку, только если целиком помещается в окно
	for slotStart := g.window.Start; slotStart <= g.window.End-durationMinutes; slotStart += durationMinutes {
		slotEnd := slotStart + durationMinutes

		slot := domain.Slot{
			Label:       FormatLabel(slotStart, slotEnd),
			StartOffset: slotStart,
			EndOffset:   slotEnd,
		}
		slot.Booked = isSlotBooked(g.mode, slot, dayBookings)

		slots = append(slots, slot)
	}

	return slots
}
