package booking_service

import (
	"context"
	"fmt"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/slot_generator_service"
	"github.com/google/uuid"
)

// AdmitBooking принимает заявку только в свободный слот. При любой ошибке
// хранилище не меняется.
func (s *BookingService) AdmitBooking(ctx context.Context, candidate domain.BookingCandidate) (*domain.Booking, error) {
	candidate = normalizeCandidate(candidate)
	logger := s.logger.WithFields(out.LogFields{
		"date":      candidate.Date,
		"slotLabel": candidate.SlotLabel,
	})

	if err := validateCandidate(candidate); err != nil {
		logger.Warn("booking.admit.rejected", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	date, err := s.parseDate(candidate.Date)
	if err != nil {
		logger.Warn("booking.admit.rejected", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	durationMinutes, err := resolveDuration(candidate)
	if err != nil {
		logger.Warn("booking.admit.rejected", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	booking, err := s.admit(ctx, date, durationMinutes, candidate)
	if err != nil {
		logger.Warn("booking.admit.rejected", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.Info("booking.admit.succeeded", out.LogFields{
		"bookingId": booking.ID,
		"duration":  booking.DurationMinutes,
	})

	if s.eventPort != nil {
		if err := s.eventPort.PublishBookingAdmitted(ctx, *booking); err != nil {
			// Запись уже сохранена, событие не критично
			logger.Error("booking.event.publish_failed", out.LogFields{
				"bookingId": booking.ID,
				"error":     err.Error(),
			})
		}
	}

	return booking, nil
}

func (s *BookingService) admit(ctx context.Context, date json_types.Date, durationMinutes int, candidate domain.BookingCandidate) (*domain.Booking, error) {
	s.admitMu.Lock()
	defer s.admitMu.Unlock()

	bookings, err := s.storePort.ListForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("booking.admit.bookings.fetch_failed: %w", err)
	}

	// Перестраиваем сетку и проверяем, что выбранный слот все еще свободен
	slots := s.generator.GenerateSlots(durationMinutes, date, bookings)
	slot, exists := slot_generator_service.FindSlot(slots, candidate.SlotLabel)
	if !exists {
		return nil, fmt.Errorf("%w: %q is not offered for %d minutes", domain.ErrUnknownSlot, candidate.SlotLabel, durationMinutes)
	}
	if slot.Booked {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotAlreadyBooked, date, slot.Label)
	}

	booking := domain.Booking{
		ID:              uuid.New(),
		PatientName:     candidate.PatientName,
		Contact:         candidate.Contact,
		Date:            date,
		SlotLabel:       slot.Label,
		DurationMinutes: durationMinutes,
		CreatedAt:       s.now().In(s.location),
	}

	if err := s.storePort.Append(ctx, booking); err != nil {
		return nil, fmt.Errorf("booking.admit.store_failed: %w", err)
	}

	// Сетки этой даты в кэше устарели
	if s.cachePort != nil {
		s.cachePort.InvalidateSlotsCache(ctx, date.String())
	}

	return &booking, nil
}

// Длительность берется из заявки, а если не указана, то из метки слота
func resolveDuration(candidate domain.BookingCandidate) (int, error) {
	if candidate.DurationMinutes != 0 {
		if _, ok := domain.LookupAppointmentType(candidate.DurationMinutes); !ok {
			return 0, fmt.Errorf("%w: %d", domain.ErrInvalidDuration, candidate.DurationMinutes)
		}
		return candidate.DurationMinutes, nil
	}

	durationMinutes, ok := slot_generator_service.DurationFromLabel(candidate.SlotLabel)
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownSlot, candidate.SlotLabel)
	}
	if _, ok := domain.LookupAppointmentType(durationMinutes); !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownSlot, candidate.SlotLabel)
	}

	return durationMinutes, nil
}
