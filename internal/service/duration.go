package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
	"github.com/matheusrsantos97-lgtm/VetFlow/pkg/validation"
)

const minutesPerDay = 24 * 60

// EmptyHours is what FormatHours renders for a zero total.
const EmptyHours = "-"

// ParseClock converts a 24-hour "HH:MM" string into minutes after midnight.
func ParseClock(value string) (int, error) {
	if !validation.IsClock(value) {
		return 0, fmt.Errorf("invalid clock time %q, expected HH:MM", value)
	}
	hours, _ := strconv.Atoi(value[:2])
	minutes, _ := strconv.Atoi(value[3:])
	return hours*60 + minutes, nil
}

// shiftMinutes returns the elapsed minutes between entry and exit, rolling exit into
// the next day when it is earlier than entry. Absent or malformed times count as zero.
func shiftMinutes(entry, exit string) int {
	if entry == "" || exit == "" {
		return 0
	}
	start, err := ParseClock(entry)
	if err != nil {
		return 0
	}
	end, err := ParseClock(exit)
	if err != nil {
		return 0
	}
	if end < start {
		end += minutesPerDay
	}
	return end - start
}

// Duration returns the hours worked between entry and exit.
func Duration(entry, exit string) float64 {
	return float64(shiftMinutes(entry, exit)) / 60
}

// IsOvernight reports whether exit falls on the day after entry.
func IsOvernight(entry, exit string) bool {
	start, err := ParseClock(entry)
	if err != nil {
		return false
	}
	end, err := ParseClock(exit)
	if err != nil {
		return false
	}
	return end < start
}

// FormatHours renders hours as "{H}h {MM}m", carrying a rounded 60th minute into the hour.
func FormatHours(hours float64) string {
	if hours == 0 {
		return EmptyHours
	}
	whole := math.Floor(hours)
	minutes := math.Round((hours - whole) * 60)
	if minutes >= 60 {
		whole++
		minutes -= 60
	}
	return fmt.Sprintf("%dh %02dm", int64(whole), int64(minutes))
}

// MonthTotal sums the hours of every day. Minutes are accumulated as integers so the
// result does not depend on the order of days.
func MonthTotal(days []models.WorkDay) float64 {
	total := 0
	for _, day := range days {
		total += shiftMinutes(day.EntryTime, day.ExitTime)
	}
	return float64(total) / 60
}
