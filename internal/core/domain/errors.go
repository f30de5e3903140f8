package domain

import "errors"

var (
	ErrMissingField       = errors.New("missing field")
	ErrSlotAlreadyBooked  = errors.New("slot already booked")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrUnknownSlot        = errors.New("unknown slot")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ErrorCode возвращает машиночитаемый код ошибки для ответа клиенту
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return "MissingField"
	case errors.Is(err, ErrSlotAlreadyBooked):
		return "SlotAlreadyBooked"
	case errors.Is(err, ErrInvalidDate):
		return "InvalidDate"
	case errors.Is(err, ErrInvalidDuration):
		return "InvalidDuration"
	case errors.Is(err, ErrUnknownSlot):
		return "UnknownSlot"
	case errors.Is(err, ErrInvalidCredentials):
		return "InvalidCredentials"
	default:
		return "Internal"
	}
}
