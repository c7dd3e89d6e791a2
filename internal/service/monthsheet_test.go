package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDaysLengths(t *testing.T) {
	tests := []struct {
		name       string
		year       int
		monthIndex int
		want       int
	}{
		{"leap february", 2024, 1, 29},
		{"common february", 2023, 1, 28},
		{"century february", 1900, 1, 28},
		{"quadricentennial february", 2000, 1, 29},
		{"april", 2024, 3, 30},
		{"december", 2023, 11, 31},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			days, err := GenerateDays(tc.year, tc.monthIndex)
			require.NoError(t, err)
			assert.Len(t, days, tc.want)
			assert.Equal(t, tc.want, DaysInMonth(tc.year, tc.monthIndex))
			for i, day := range days {
				assert.Equal(t, i+1, day.DayNumber)
				assert.Empty(t, day.EntryTime)
				assert.Empty(t, day.ExitTime)
			}
		})
	}
}

func TestGenerateDaysWeekdays(t *testing.T) {
	days, err := GenerateDays(2024, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", days[0].Date)
	assert.Equal(t, "Qui", days[0].Weekday)
	assert.Equal(t, "2024-02-29", days[28].Date)
	assert.Equal(t, "Qui", days[28].Weekday)

	days, err = GenerateDays(2023, 9)
	require.NoError(t, err)
	assert.Equal(t, "Dom", days[0].Weekday)
	assert.Equal(t, "Sáb", days[6].Weekday)
}

func TestGenerateDaysRejectsInvalidMonth(t *testing.T) {
	_, err := GenerateDays(2024, 12)
	require.Error(t, err)
	_, err = GenerateDays(2024, -1)
	require.Error(t, err)
	_, err = GenerateDays(0, 0)
	require.Error(t, err)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Novembro 2023", MonthLabel(2023, 10))
	assert.Equal(t, "Março 2024", MonthLabel(2024, 2))
}

func TestNewMonthRecordSheetsAreIndependent(t *testing.T) {
	createdAt := time.UnixMilli(1700000000000)
	record, err := NewMonthRecord(2023, 10, createdAt)
	require.NoError(t, err)

	assert.Equal(t, "2023-10-1700000000000", record.ID)
	assert.Equal(t, "Novembro 2023", record.Label)
	require.Len(t, record.CommercialDays, 30)
	require.Len(t, record.NightDays, 30)

	record.CommercialDays[0].EntryTime = "08:00"
	assert.Empty(t, record.NightDays[0].EntryTime)
}
