package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date — календарная дата без времени, в JSON всегда YYYY-MM-DD
type Date struct {
	Date time.Time
}

func ParseDate(str string, location *time.Location) (Date, error) {
	if location == nil {
		location = time.UTC
	}

	parsedDate, err := time.ParseInLocation(DateLayout, str, location)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", str, err)
	}

	return Date{Date: parsedDate}, nil
}

func (t Date) IsZero() bool {
	return t.Date.IsZero()
}

func (t Date) String() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(DateLayout)
}

// Equal сравнивает только календарный день
func (t Date) Equal(other Date) bool {
	return t.String() == other.String()
}

func (t *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}

	parsedDate, err := ParseDate(str, time.UTC)
	if err != nil {
		return err
	}

	*t = parsedDate
	return nil
}

func (t Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
