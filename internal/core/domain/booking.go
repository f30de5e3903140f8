package domain

import (
	"time"

	"github.com/clinicdesk/slot-booking-service/internal/core/json_types"
	"github.com/google/uuid"
)

// Booking — подтвержденная запись пациента на один слот одной даты.
// Уникальна по паре (Date, SlotLabel), после создания не меняется.
type Booking struct {
	ID              uuid.UUID       `json:"id"`
	PatientName     string          `json:"patientName"`
	Contact         string          `json:"contact"`
	Date            json_types.Date `json:"date"`
	SlotLabel       string          `json:"slotLabel"`
	DurationMinutes int             `json:"durationMinutes"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BookingKey — идентичность записи
type BookingKey struct {
	Date      string
	SlotLabel string
}

func (b Booking) Key() BookingKey {
	return BookingKey{Date: b.Date.String(), SlotLabel: b.SlotLabel}
}

// BookingCandidate — данные заявки до проверки
type BookingCandidate struct {
	PatientName     string `json:"patientName" validate:"required"`
	Contact         string `json:"contact" validate:"required"`
	Date            string `json:"date" validate:"required"`
	SlotLabel       string `json:"slotLabel" validate:"required"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
}
