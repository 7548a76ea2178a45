package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is a time of day parsed from a schedule label.
type Slot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DefaultSlot is used whenever a label cannot be read.
var DefaultSlot = Slot{Hour: 9, Minute: 0}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// ParseSlot reads labels such as "7", "7:30", "7AM", "7:30pm" or "12 PM".
//
// Without an AM/PM marker, hours 1 through 5 are taken as afternoon (13-17)
// and every other hour as written. The parser never fails: labels it cannot
// read, or that land outside 00:00-23:59, yield DefaultSlot.
func ParseSlot(text string) Slot {
	clean := strings.ToUpper(strings.TrimSpace(text))
	if clean == "" {
		return DefaultSlot
	}

	if strings.Contains(clean, "AM") || strings.Contains(clean, "PM") {
		pm := strings.Contains(clean, "PM")
		h, m, ok := splitClock(stripMeridiem(clean))
		if !ok {
			return DefaultSlot
		}
		switch {
		case pm && h != 12:
			h += 12
		case !pm && h == 12:
			h = 0
		}
		return clamp(h, m)
	}

	h, m, ok := splitClock(clean)
	if !ok {
		return DefaultSlot
	}
	if h >= 1 && h <= 5 {
		h += 12
	}
	return clamp(h, m)
}

// stripMeridiem removes the first AM or PM marker.
func stripMeridiem(s string) string {
	i := strings.Index(s, "AM")
	if j := strings.Index(s, "PM"); j >= 0 && (i < 0 || j < i) {
		i = j
	}
	return strings.TrimSpace(s[:i] + s[i+2:])
}

// splitClock reads "H" or "H:MM". The hour must start with a digit; a
// missing or unreadable minute is 0.
func splitClock(s string) (hour, minute int, ok bool) {
	hs, ms, _ := strings.Cut(s, ":")
	hour, ok = leadingInt(hs)
	if !ok {
		return 0, 0, false
	}
	minute, _ = leadingInt(ms)
	return hour, minute, true
}

// leadingInt parses the run of digits at the start of s, after spaces.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(h, m int) Slot {
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return DefaultSlot
	}
	return Slot{Hour: h, Minute: m}
}
