package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-06-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 1 {
		t.Errorf("got %v, want 2024-06-01", d)
	}
	if d.String() != "2024-06-01" {
		t.Errorf("String() = %q, want 2024-06-01", d.String())
	}
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "June 1", "2024-13-01", "01-06-2024"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
}

func TestEqual(t *testing.T) {
	a := New(2024, time.June, 1)
	b := New(2024, time.June, 1)
	c := New(2024, time.June, 2)
	if !a.Equal(b) {
		t.Error("same day not equal")
	}
	if a.Equal(c) {
		t.Error("different days equal")
	}
}

func TestAddDays(t *testing.T) {
	d := New(2024, time.June, 30).AddDays(1)
	if d.String() != "2024-07-01" {
		t.Errorf("AddDays crossed month wrong: %s", d)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Hour != 9 || c.Minute != 30 {
		t.Errorf("got %v, want 09:30", c)
	}
	if c.String() != "09:30" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, s := range []string{"", "24:00", "12:60", "noon", "-1:30"} {
		if _, err := ParseClock(s); err == nil {
			t.Errorf("ParseClock(%q) succeeded, want error", s)
		}
	}
}

func TestClockBefore(t *testing.T) {
	a := NewClock(9, 0)
	b := NewClock(10, 0)
	if !a.Before(b) {
		t.Error("09:00 should be before 10:00")
	}
	if b.Before(a) {
		t.Error("10:00 should not be before 09:00")
	}
}

func TestClockAddMinutes(t *testing.T) {
	c := NewClock(9, 45).AddMinutes(30)
	if c.String() != "10:15" {
		t.Errorf("got %s, want 10:15", c)
	}
	wrapped := NewClock(23, 45).AddMinutes(30)
	if wrapped.String() != "00:15" {
		t.Errorf("got %s, want 00:15", wrapped)
	}
}
