package booking_service

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
)

// Кэширование слотов

func (s *BookingService) InvalidateSlotsCache(ctx context.Context, date string) error {
	parsedDate, err := s.parseDate(date)
	if err != nil {
		return err
	}

	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateSlotsCache(ctx, parsedDate.String())
	s.logger.Debug("slots.cache.invalidated", out.LogFields{
		"date": parsedDate.String(),
	})

	return nil
}

func (s *BookingService) InvalidateAllSlotsCache(ctx context.Context) error {
	if s.cachePort == nil {
		return nil
	}

	s.cachePort.InvalidateAllSlotsCache(ctx)
	s.logger.Debug("slots.cache.purged", out.LogFields{})

	return nil
}
