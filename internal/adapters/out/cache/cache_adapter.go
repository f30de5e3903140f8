package cache

import (
	"github.com/clinicdesk/slot-booking-service/internal/config"
	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
	lru "github.com/hashicorp/golang-lru/v2"
)

type CacheAdapter struct {
	slotsCache *slotsCache
	logger     out.LoggerPort
}

// NewCacheAdapter возвращает nil, если кэш выключен
func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	lruSlotsCache, err := lru.New[out.SlotsCacheKey, []domain.Slot](cfg.Cache.SlotsSize)
	if err != nil {
		logger.Error("cache.slots.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.SlotsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		slotsCache: &slotsCache{
			cache: lruSlotsCache,
		},
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}
