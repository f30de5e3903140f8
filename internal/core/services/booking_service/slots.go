package booking_service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/slot_generator_service"
)

func (s *BookingService) GetSlots(ctx context.Context, date string, durationMinutes int) ([]domain.Slot, []domain.DebugInfo, error) {
	debugInfo := make([]domain.DebugInfo, 0, 3)

	parsedDate, err := s.parseDate(date)
	if err != nil {
		return nil, nil, err
	}

	if _, ok := domain.LookupAppointmentType(durationMinutes); !ok {
		return nil, nil, fmt.Errorf("%w: %d", domain.ErrInvalidDuration, durationMinutes)
	}

	cacheKey := out.SlotsCacheKey{Date: parsedDate.String(), DurationMinutes: durationMinutes}

	// Проверяем кэш только если он включен
	if s.cachePort != nil {
		cacheLookupDebug := domain.StartDebug("slots.cache.lookup")
		slots, exists := s.cachePort.GetSlots(ctx, cacheKey)
		cacheLookupDebug.AddOption("hit", strconv.FormatBool(exists))
		cacheLookupDebug.Elapse()
		debugInfo = append(debugInfo, cacheLookupDebug)

		if exists {
			s.logger.Debug("slots.generate.cache.hit", out.LogFields{
				"date":       cacheKey.Date,
				"duration":   durationMinutes,
				"slotsCount": len(slots),
			})
			return slots, debugInfo, nil
		}
	}

	// Пока строим сетку, записи на эту дату не добавляются,
	// иначе в кэш попадет устаревшая сетка
	s.admitMu.RLock()
	defer s.admitMu.RUnlock()

	fetchDebug := domain.StartDebug("slots.bookings.fetch")
	bookings, err := s.storePort.ListForDate(ctx, parsedDate)
	if err != nil {
		s.logger.Error("slots.generate.bookings.fetch_failed", out.LogFields{
			"date":  cacheKey.Date,
			"error": err.Error(),
		})
		return nil, nil, fmt.Errorf("slots.generate.bookings.fetch_failed: %w", err)
	}
	fetchDebug.AddOption("bookings", strconv.Itoa(len(bookings)))
	fetchDebug.Elapse()
	debugInfo = append(debugInfo, fetchDebug)

	generateDebug := domain.StartDebug("slots.generate")
	slots := s.generator.GenerateSlots(durationMinutes, parsedDate, bookings)
	generateDebug.AddOption("slots", strconv.Itoa(len(slots)))
	generateDebug.AddOption("window", slot_generator_service.FormatLabel(s.generator.Window().Start, s.generator.Window().End))
	generateDebug.Elapse()
	debugInfo = append(debugInfo, generateDebug)

	if s.cachePort != nil {
		s.cachePort.StoreSlots(ctx, cacheKey, slots)
	}

	return slots, debugInfo, nil
}
