package domain

import "fmt"

// Slot — интервал рабочего окна, вычисляется при каждом запросе
type Slot struct {
	Label       string `json:"label"`
	StartOffset int    `json:"-"`
	EndOffset   int    `json:"-"`
	Booked      bool   `json:"booked"`
}

// OperatingWindow — рабочие часы клиники в минутах от начала дня
type OperatingWindow struct {
	Start int
	End   int
}

var DefaultOperatingWindow = OperatingWindow{
	Start: 9*60 + 30,
	End:   20 * 60,
}

// ParseOperatingWindow разбирает пару "HH:MM"
func ParseOperatingWindow(open, close string) (OperatingWindow, error) {
	start, err := ParseClock(open)
	if err != nil {
		return OperatingWindow{}, fmt.Errorf("open time: %w", err)
	}
	end, err := ParseClock(close)
	if err != nil {
		return OperatingWindow{}, fmt.Errorf("close time: %w", err)
	}
	if end <= start {
		return OperatingWindow{}, fmt.Errorf("close time %s must be after open time %s", close, open)
	}

	return OperatingWindow{Start: start, End: end}, nil
}

// ParseClock переводит "HH:MM" в минуты от начала дня
func ParseClock(value string) (int, error) {
	var hours, minutes int
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	return hours*60 + minutes, nil
}
