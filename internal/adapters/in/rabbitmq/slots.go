package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicdesk/slot-booking-service/internal/core/ports/out"
)

type CacheSlotsMessage struct {
	Date string `json:"date"`
}

func (l *CacheListener) processSlotsMessage(ctx context.Context, routingKey CacheMessageRoutingKey, body []byte) error {
	var msgJson CacheSlotsMessage
	if err := json.Unmarshal(body, &msgJson); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	if err := l.useCase.InvalidateSlotsCache(ctx, msgJson.Date); err != nil {
		return err
	}

	l.logger.Info("slots.message.invalidated", out.LogFields{
		"source": routingKey.Source,
		"date":   msgJson.Date,
	})

	return nil
}
