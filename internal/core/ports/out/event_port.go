package out

import (
	"context"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
)

type EventPublisherPort interface {
	PublishBookingAdmitted(ctx context.Context, booking domain.Booking) error
}
