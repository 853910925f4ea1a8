// Package timeutil converts "HH:MM" wall-clock strings to minute offsets.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock parses a "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock string %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock string %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock string %q out of range", s)
	}
	return hours*60 + minutes, nil
}

// Duration returns end - start in minutes. The result is not clamped;
// callers treat a non-positive duration as invalid input.
func Duration(start, end string) (int, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return endMinutes - startMinutes, nil
}
