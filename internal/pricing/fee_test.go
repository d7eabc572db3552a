package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func departureAt(hour int) time.Time {
	return time.Date(2025, 9, 1, hour, 30, 0, 0, time.UTC)
}

func TestTrafficFee_PeakHours(t *testing.T) {
	tests := []struct {
		name       string
		hour       int
		distanceKm float64
		expected   float64
	}{
		{name: "morning peak start", hour: 7, distanceKm: 25, expected: 1.25},
		{name: "morning peak middle", hour: 8, distanceKm: 25, expected: 1.25},
		{name: "morning peak end is exclusive", hour: 9, distanceKm: 25, expected: 0},
		{name: "midday is free", hour: 12, distanceKm: 25, expected: 0},
		{name: "evening peak start", hour: 16, distanceKm: 25, expected: 1.25},
		{name: "evening peak middle", hour: 17, distanceKm: 25, expected: 1.25},
		{name: "evening peak end is exclusive", hour: 18, distanceKm: 25, expected: 0},
		{name: "before morning peak", hour: 6, distanceKm: 25, expected: 0},
		{name: "late night", hour: 23, distanceKm: 25, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrafficFee(departureAt(tt.hour), tt.distanceKm))
		})
	}
}

func TestTrafficFee_RoundsToTwoDecimals(t *testing.T) {
	// 33.333 km * 0.05 = 1.66665 -> 1.67
	assert.Equal(t, 1.67, TrafficFee(departureAt(7), 33.333))
}

func TestTrafficFee_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, TrafficFee(departureAt(7), 0))
}

func TestParseDeparture_NaiveIsLocal(t *testing.T) {
	tests := []struct {
		raw          string
		expectedHour int
	}{
		{"2025-09-01 07:15", 7},
		{"2025-09-01 07:15:00", 7},
		{"2025-09-01T16:45", 16},
		{"2025-09-01T16:45:30", 16},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			parsed, err := ParseDeparture(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHour, parsed.Hour())
		})
	}
}

func TestParseDeparture_ZonedShiftsByThreeHours(t *testing.T) {
	// 05:30 UTC is 08:30 regional time, inside the morning peak
	parsed, err := ParseDeparture("2025-09-01T05:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, parsed.Hour())
	assert.Equal(t, 1.25, TrafficFee(parsed, 25))

	// An explicit offset normalizes through UTC first
	parsed, err = ParseDeparture("2025-09-01T05:30:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, 5, parsed.Hour())
	assert.Equal(t, 0.0, TrafficFee(parsed, 25))
}

func TestParseDeparture_Invalid(t *testing.T) {
	_, err := ParseDeparture("next tuesday")
	assert.Error(t, err)

	_, err = ParseDeparture("")
	assert.Error(t, err)
}
