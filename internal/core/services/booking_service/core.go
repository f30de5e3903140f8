package booking_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	"github.com/clinicdesk/slot-booking-service/internal/core/services/slot_generator_service"
)

type BookingService struct {
	generator *slot_generator_service.Generator
	storePort out.BookingStorePort
	cachePort out.CachePort
	eventPort out.EventPublisherPort
	logger    out.LoggerPort
	location  *time.Location
	now       func() time.Time

	// Проверка "слот свободен" и вставка выполняются под эксклюзивной блокировкой,
	// построение сетки для кэша под разделяемой
	admitMu sync.RWMutex
}

func NewBookingService(
	generator *slot_generator_service.Generator,
	storePort out.BookingStorePort,
	cachePort out.CachePort,
	eventPort out.EventPublisherPort,
	logger out.LoggerPort,
	location *time.Location,
) *BookingService {
	if location == nil {
		location = time.UTC
	}

	return &BookingService{
		generator: generator,
		storePort: storePort,
		cachePort: cachePort,
		eventPort: eventPort,
		logger:    logger.WithModule("BookingService"),
		location:  location,
		now:       time.Now,
	}
}

func (s *BookingService) AppointmentTypes() []domain.AppointmentType {
	types := make([]domain.AppointmentType, len(domain.AppointmentTypes))
	copy(types, domain.AppointmentTypes)
	return types
}

func (s *BookingService) ListBookings(ctx context.Context, date string) ([]domain.Booking, error) {
	if date == "" {
		bookings, err := s.storePort.ListAll(ctx)
		if err != nil {
			s.logger.Error("bookings.list.fetch_failed", out.LogFields{
				"error": err.Error(),
			})
			return nil, fmt.Errorf("bookings.list.fetch_failed: %w", err)
		}
		return bookings, nil
	}

	parsedDate, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.storePort.ListForDate(ctx, parsedDate)
	if err != nil {
		s.logger.Error("bookings.list.fetch_failed", out.LogFields{
			"date":  date,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("bookings.list.fetch_failed: %w", err)
	}

	return bookings, nil
}

func (s *BookingService) parseDate(date string) (json_types.Date, error) {
	parsedDate, err := json_types.ParseDate(date, s.location)
	if err != nil {
		return json_types.Date{}, fmt.Errorf("%w: %s", domain.ErrInvalidDate, date)
	}
	return parsedDate, nil
}
