package dto

import "github.com/matheusrsantos97-lgtm/VetFlow/internal/models"

// CreateMonthRequest adds a new month record to the caller's collection.
type CreateMonthRequest struct {
	Year       int `json:"year" validate:"required,min=1,max=9999"`
	MonthIndex int `json:"month_index" validate:"min=0,max=11"`
}

// SetTimeRequest sets an entry or exit time. An empty value clears the field.
type SetTimeRequest struct {
	Time string `json:"time" validate:"omitempty,clock"`
}

// MonthSummary is the list view of a month record.
type MonthSummary struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Year       int    `json:"year"`
	MonthIndex int    `json:"month_index"`
}

// MonthDetail returns a month record with its computed totals.
type MonthDetail struct {
	Month   models.MonthRecord      `json:"month"`
	Summary models.TimesheetSummary `json:"summary"`
}
