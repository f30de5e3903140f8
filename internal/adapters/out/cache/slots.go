package cache

import (
	"context"
	"sync"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	lru "github.com/hashicorp/golang-lru/v2"
)

type slotsCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[out.SlotsCacheKey, []domain.Slot]
}

// Кэширование слотов

func (c *CacheAdapter) GetSlots(ctx context.Context, key out.SlotsCacheKey) ([]domain.Slot, bool) {
	c.slotsCache.mu.RLock()
	defer c.slotsCache.mu.RUnlock()

	entry, exists := c.slotsCache.cache.Get(key)
	if !exists {
		c.logger.Debug("cache.slots.get.miss", out.LogFields{
			"date":     key.Date,
			"duration": key.DurationMinutes,
		})
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"date":       key.Date,
		"duration":   key.DurationMinutes,
		"slotsCount": len(entry),
	})

	return copySlots(entry), true
}

func (c *CacheAdapter) StoreSlots(ctx context.Context, key out.SlotsCacheKey, slots []domain.Slot) {
	c.slotsCache.mu.Lock()
	defer c.slotsCache.mu.Unlock()

	c.logger.Debug("cache.slots.store", out.LogFields{
		"date":       key.Date,
		"duration":   key.DurationMinutes,
		"slotsCount": len(slots),
	})

	c.slotsCache.cache.Add(key, copySlots(slots))
}

// Удаляет сетки всех длительностей на дату
func (c *CacheAdapter) InvalidateSlotsCache(ctx context.Context, date string) {
	c.slotsCache.mu.Lock()
	defer c.slotsCache.mu.Unlock()

	removed := 0
	for _, key := range c.slotsCache.cache.Keys() {
		if key.Date == date {
			c.slotsCache.cache.Remove(key)
			removed++
		}
	}

	c.logger.Debug("cache.slots.invalidate", out.LogFields{
		"date":    date,
		"removed": removed,
	})
}

func (c *CacheAdapter) InvalidateAllSlotsCache(ctx context.Context) {
	c.slotsCache.mu.Lock()
	defer c.slotsCache.mu.Unlock()

	c.slotsCache.cache.Purge()
}

func copySlots(slots []domain.Slot) []domain.Slot {
	copied := make([]domain.Slot, len(slots))
	copy(copied, slots)
	return copied
}
