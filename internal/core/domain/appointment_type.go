package domain

type AppointmentType struct {
	DurationMinutes int    `json:"durationMinutes"`
	Label           string `json:"label"`
}

var AppointmentTypes = []AppointmentType{
	{DurationMinutes: 30, Label: "Regular Check-up"},
	{DurationMinutes: 60, Label: "Specific Treatment"},
	{DurationMinutes: 120, Label: "Operation"},
}

func LookupAppointmentType(durationMinutes int) (AppointmentType, bool) {
	for _, appointmentType := range AppointmentTypes {
		if appointmentType.DurationMinutes == durationMinutes {
			return appointmentType, true
		}
	}
	return AppointmentType{}, false
}
