package service

import (
	"fmt"
	"time"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
)

var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

const (
	minYear = 1
	maxYear = 9999
)

func validateMonth(year, monthIndex int) error {
	if monthIndex < 0 || monthIndex > 11 {
		return fmt.Errorf("month index %d out of range 0-11", monthIndex)
	}
	if year < minYear || year > maxYear {
		return fmt.Errorf("year %d out of range %d-%d", year, minYear, maxYear)
	}
	return nil
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of a zero-based month.
func DaysInMonth(year, monthIndex int) int {
	switch monthIndex {
	case 1:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 3, 5, 8, 10:
		return 30
	default:
		return 31
	}
}

// MonthLabel renders e.g. "Novembro 2023".
func MonthLabel(year, monthIndex int) string {
	if monthIndex < 0 || monthIndex > 11 {
		return fmt.Sprintf("%02d/%d", monthIndex+1, year)
	}
	return fmt.Sprintf("%s %d", monthNames[monthIndex], year)
}

// GenerateDays returns every day of the month in ascending order with blank times.
// Each call allocates a fresh slice.
func GenerateDays(year, monthIndex int) ([]models.WorkDay, error) {
	if err := validateMonth(year, monthIndex); err != nil {
		return nil, err
	}
	count := DaysInMonth(year, monthIndex)
	days := make([]models.WorkDay, 0, count)
	for day := 1; day <= count; day++ {
		date := time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
		days = append(days, models.WorkDay{
			Date:      date.Format("2006-01-02"),
			DayNumber: day,
			Weekday:   weekdayLabels[date.Weekday()],
		})
	}
	return days, nil
}

// NewMonthRecord seeds a month with two independent shift sheets. The id combines the
// month with the creation instant in Unix milliseconds.
func NewMonthRecord(year, monthIndex int, createdAt time.Time) (models.MonthRecord, error) {
	commercial, err := GenerateDays(year, monthIndex)
	if err != nil {
		return models.MonthRecord{}, err
	}
	night, err := GenerateDays(year, monthIndex)
	if err != nil {
		return models.MonthRecord{}, err
	}
	return models.MonthRecord{
		ID:             fmt.Sprintf("%d-%d-%d", year, monthIndex, createdAt.UnixMilli()),
		Label:          MonthLabel(year, monthIndex),
		Year:           year,
		MonthIndex:     monthIndex,
		CommercialDays: commercial,
		NightDays:      night,
	}, nil
}
