package models

import "fmt"

// ShiftType selects one of the two sheets of a month.
type ShiftType string

const (
	ShiftCommercial ShiftType = "commercial"
	ShiftNight      ShiftType = "night"
)

// ParseShiftType validates a shift identifier coming from a URL or payload.
func ParseShiftType(raw string) (ShiftType, error) {
	switch ShiftType(raw) {
	case ShiftCommercial, ShiftNight:
		return ShiftType(raw), nil
	default:
		return "", fmt.Errorf("unknown shift type %q", raw)
	}
}

// WorkDay is one calendar day of a shift sheet. Empty times mean "not filled in".
type WorkDay struct {
	Date      string `json:"date"`
	DayNumber int    `json:"day_number"`
	Weekday   string `json:"weekday"`
	EntryTime string `json:"entry_time"`
	ExitTime  string `json:"exit_time"`
}

// MonthRecord holds the commercial and night sheets of one calendar month.
type MonthRecord struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Year           int       `json:"year"`
	MonthIndex     int       `json:"month_index"`
	CommercialDays []WorkDay `json:"commercial_days"`
	NightDays      []WorkDay `json:"night_days"`
}

// Sheet returns the days of the requested shift. The slice aliases the record.
func (m *MonthRecord) Sheet(shift ShiftType) ([]WorkDay, error) {
	switch shift {
	case ShiftCommercial:
		return m.CommercialDays, nil
	case ShiftNight:
		return m.NightDays, nil
	default:
		return nil, fmt.Errorf("unknown shift type %q", shift)
	}
}

// TimesheetSummary reports the computed totals of a month record.
type TimesheetSummary struct {
	CommercialHours     float64 `json:"commercial_hours"`
	NightHours          float64 `json:"night_hours"`
	TotalHours          float64 `json:"total_hours"`
	CommercialFormatted string  `json:"commercial_formatted"`
	NightFormatted      string  `json:"night_formatted"`
	TotalFormatted      string  `json:"total_formatted"`
}
