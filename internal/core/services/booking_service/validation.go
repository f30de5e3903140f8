package booking_service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/clinicdesk/slot-booking-service/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В тексте ошибки используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func normalizeCandidate(candidate domain.BookingCandidate) domain.BookingCandidate {
	candidate.PatientName = strings.TrimSpace(candidate.PatientName)
	candidate.Contact = strings.TrimSpace(candidate.Contact)
	candidate.Date = strings.TrimSpace(candidate.Date)
	candidate.SlotLabel = strings.TrimSpace(candidate.SlotLabel)
	return candidate
}

func validateCandidate(candidate domain.BookingCandidate) error {
	err := validate.Struct(candidate)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, fieldError.Field())
	}

	return fmt.Errorf("%w: %s", domain.ErrMissingField, strings.Join(fields, ", "))
}
