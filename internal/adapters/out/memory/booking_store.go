package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
)

// BookingStore — хранилище записей в памяти процесса, только добавление
type BookingStore struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	byDate   map[string][]int
	keys     map[domain.BookingKey]struct{}
	logger   out.LoggerPort
}

func NewBookingStore(logger out.LoggerPort) *BookingStore {
	return &BookingStore{
		bookings: make([]domain.Booking, 0),
		byDate:   make(map[string][]int),
		keys:     make(map[domain.BookingKey]struct{}),
		logger:   logger.WithModule("BookingStore"),
	}
}

func (s *BookingStore) Append(ctx context.Context, booking domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := booking.Key()
	if _, exists := s.keys[key]; exists {
		s.logger.Warn("store.append.duplicate", out.LogFields{
			"date":      key.Date,
			"slotLabel": key.SlotLabel,
		})
		return fmt.Errorf("%w: %s %s", domain.ErrSlotAlreadyBooked, key.Date, key.SlotLabel)
	}

	s.bookings = append(s.bookings, booking)
	s.byDate[key.Date] = append(s.byDate[key.Date], len(s.bookings)-1)
	s.keys[key] = struct{}{}

	s.logger.Debug("store.append", out.LogFields{
		"bookingId": booking.ID,
		"total":     len(s.bookings),
	})

	return nil
}

func (s *BookingStore) ListForDate(ctx context.Context, date json_types.Date) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	indexes := s.byDate[date.String()]
	bookings := make([]domain.Booking, 0, len(indexes))
	for _, index := range indexes {
		bookings = append(bookings, s.bookings[index])
	}

	return bookings, nil
}

func (s *BookingStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, len(s.bookings))
	copy(bookings, s.bookings)

	return bookings, nil
}
