package task

import (
	"strings"

	"github.com/priplot/priplot/internal/clierr"
)

// ValidateName checks that a task name is usable.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return clierr.New(clierr.InvalidTask, "task name must not be empty")
	}
	return nil
}

// ValidateValue checks that a value lies within the plot's value axis.
func ValidateValue(value float64) error {
	if value < MinValue || value > MaxValue {
		return clierr.Newf(clierr.InvalidTask, "value %.2f out of range [%.1f, %.1f]",
			value, MinValue, MaxValue).
			WithDetails(map[string]any{
				"value": value,
				"min":   MinValue,
				"max":   MaxValue,
			})
	}
	return nil
}

// ValidateHours checks that an hours estimate lies within the time axis.
// The lower bound keeps Score's division safe.
func ValidateHours(hours float64) error {
	if hours < MinHours || hours > MaxHours {
		return clierr.Newf(clierr.InvalidTask, "time %.2f out of range [%.1f, %.1f] hours",
			hours, MinHours, MaxHours).
			WithDetails(map[string]any{
				"time": hours,
				"min":  MinHours,
				"max":  MaxHours,
			})
	}
	return nil
}

// Validate checks all task fields.
func Validate(t *Task) error {
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	if err := ValidateValue(t.Value); err != nil {
		return err
	}
	return ValidateHours(t.Hours)
}

// ClampValue forces a value onto the value axis. Drag updates clamp
// rather than reject so a pointer sweep past the edge pins the point at
// the boundary.
func ClampValue(value float64) float64 {
	return clamp(value, MinValue, MaxValue)
}

// ClampHours forces an hours estimate onto the time axis.
func ClampHours(hours float64) float64 {
	return clamp(hours, MinHours, MaxHours)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
