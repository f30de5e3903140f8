package out

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
)

type SlotsCacheKey struct {
	Date            string
	DurationMinutes int
}

type CachePort interface {
	// Кэширование сетки слотов
	GetSlots(ctx context.Context, key SlotsCacheKey) ([]domain.Slot, bool)
	StoreSlots(ctx context.Context, key SlotsCacheKey, slots []domain.Slot)
	InvalidateSlotsCache(ctx context.Context, date string)
	InvalidateAllSlotsCache(ctx context.Context)
}
