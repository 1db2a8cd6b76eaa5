package date

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Clock represents a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// NewClock creates a Clock, normalizing minute overflow into hours.
// Hours wrap at 24 so arithmetic like AddMinutes stays within a day.
func NewClock(hour, minute int) Clock {
	hour += minute / 60
	minute %= 60
	if minute < 0 {
		minute += 60
		hour--
	}
	hour %= 24
	if hour < 0 {
		hour += 24
	}
	return Clock{Hour: hour, Minute: minute}
}

// ParseClock parses an HH:MM string into a Clock.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// String returns the time as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the minute offset from midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Minutes() < other.Minutes()
}

// AddMinutes returns the clock n minutes later, wrapping at midnight.
func (c Clock) AddMinutes(n int) Clock {
	return NewClock(c.Hour, c.Minute+n)
}

// IsZero reports whether the clock is the zero value (midnight).
func (c Clock) IsZero() bool {
	return c.Hour == 0 && c.Minute == 0
}

// MarshalYAML implements yaml.Marshaler.
func (c Clock) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (c *Clock) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseClock(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
