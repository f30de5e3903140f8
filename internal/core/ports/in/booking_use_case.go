package in

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
)

type BookingUseCase interface {
	// Справочник типов приема
	AppointmentTypes() []domain.AppointmentType

	// Сетка слотов на дату для выбранной длительности
	GetSlots(ctx context.Context, date string, durationMinutes int) ([]domain.Slot, []domain.DebugInfo, error)

	// Прием заявки в свободный слот
	AdmitBooking(ctx context.Context, candidate domain.BookingCandidate) (*domain.Booking, error)

	// Записи на дату, при пустой дате все записи
	ListBookings(ctx context.Context, date string) ([]domain.Booking, error)

	// Сброс кэша слотов
	InvalidateSlotsCache(ctx context.Context, date string) error
	InvalidateAllSlotsCache(ctx context.Context) error
}
