package slot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned when a time string is not a valid 24-hour "HH:MM".
var ErrInvalidTime = errors.New("time must be in HH:MM format")

// TimeToMinutes converts "HH:MM" to minutes since midnight. Hours may have
// more than two digits, so every string MinutesToTime produces converts
// back. The input is assumed to be well-formed; use ParseTime on untrusted
// input. Returns 0 for input it cannot read.
func TimeToMinutes(t string) int {
	h, m, ok := strings.Cut(t, ":")
	if !ok || len(h) < 2 || len(m) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 {
		return 0
	}
	return hours*60 + mins
}

// ParseTime validates a 24-hour "HH:MM" string and returns minutes since midnight.
func ParseTime(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, t)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, t)
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if hours > 23 || mins > 59 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, t)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values past the end of the day are not wrapped: 1500 renders as "25:00".
// Negative values render as "00:00".
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// CalculateEndTime returns start plus duration minutes as "HH:MM".
func CalculateEndTime(start string, duration int) string {
	return MinutesToTime(TimeToMinutes(start) + duration)
}

// IsTimeInRange reports whether t falls in [start, end).
func IsTimeInRange(t, start, end string) bool {
	m := TimeToMinutes(t)
	return m >= TimeToMinutes(start) && m < TimeToMinutes(end)
}
