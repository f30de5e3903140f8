package out

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
)

type BookingStorePort interface {
	// Добавляет запись, domain.ErrSlotAlreadyBooked если пара (дата, слот) уже занята
	Append(ctx context.Context, booking domain.Booking) error

	// Записи на дату в порядке добавления
	ListForDate(ctx context.Context, date json_types.Date) ([]domain.Booking, error)

	// Все записи в порядке добавления
	ListAll(ctx context.Context) ([]domain.Booking, error)
}
