package rabbitmq

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
)

func (l *CacheListener) processAllMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	if err := l.useCase.InvalidateAllSlotsCache(ctx); err != nil {
		return err
	}

	l.logger.Info("_all_.message.invalidated", out.LogFields{
		"source":      routingKey.Source,
		"slots_cache": true,
	})

	return nil
}
