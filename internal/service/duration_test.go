package service

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheusrsantos97-lgtm/VetFlow/internal/models"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		entry, exit string
		want        float64
	}{
		{"08:00", "17:00", 9},
		{"08:00", "08:00", 0},
		{"08:15", "12:45", 4.5},
		{"19:00", "07:00", 12},
		{"23:30", "00:15", 0.75},
		{"", "07:00", 0},
		{"19:00", "", 0},
		{"", "", 0},
		{"7:00", "08:00", 0},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s-%s", tc.entry, tc.exit), func(t *testing.T) {
			assert.InDelta(t, tc.want, Duration(tc.entry, tc.exit), 1e-9)
		})
	}
}

func TestDurationIsNeverNegative(t *testing.T) {
	for start := 0; start < minutesPerDay; start += 37 {
		for end := 0; end < minutesPerDay; end += 41 {
			entry := fmt.Sprintf("%02d:%02d", start/60, start%60)
			exit := fmt.Sprintf("%02d:%02d", end/60, end%60)
			got := Duration(entry, exit)
			require.GreaterOrEqual(t, got, 0.0)
			if end >= start {
				require.InDelta(t, float64(end-start)/60, got, 1e-9)
			} else {
				require.InDelta(t, float64(end+minutesPerDay-start)/60, got, 1e-9)
			}
		}
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, minutes)

	for _, bad := range []string{"", "24:00", "7:00", "07:60", "ab:cd"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestIsOvernight(t *testing.T) {
	assert.True(t, IsOvernight("19:00", "07:00"))
	assert.False(t, IsOvernight("08:00", "17:00"))
	assert.False(t, IsOvernight("19:00", ""))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "-", FormatHours(0))
	assert.Equal(t, "1h 30m", FormatHours(1.5))
	assert.Equal(t, "8h 00m", FormatHours(7.999))
	assert.Equal(t, "0h 45m", FormatHours(0.75))
	assert.Equal(t, "12h 00m", FormatHours(12))
	assert.Equal(t, "168h 20m", FormatHours(168+1.0/3))
}

func TestMonthTotalIsOrderIndependent(t *testing.T) {
	days, err := GenerateDays(2024, 0)
	require.NoError(t, err)
	for i := range days {
		switch i % 3 {
		case 0:
			days[i].EntryTime, days[i].ExitTime = "08:10", "17:23"
		case 1:
			days[i].EntryTime, days[i].ExitTime = "19:07", "07:01"
		}
	}
	want := MonthTotal(days)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.WorkDay(nil), days...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, MonthTotal(shuffled))
	}
}

func TestMonthTotal(t *testing.T) {
	days := []models.WorkDay{
		{EntryTime: "08:00", ExitTime: "12:00"},
		{EntryTime: "19:00", ExitTime: "07:00"},
		{EntryTime: "08:00"},
	}
	assert.InDelta(t, 16.0, MonthTotal(days), 1e-9)
	assert.Equal(t, 0.0, MonthTotal(nil))
}
