package pricing

import (
	"math"
	"time"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
)

const (
	// trafficFeePerKm is the flat peak-hour surcharge rate
	trafficFeePerKm = 0.05

	// regionUTCOffset is the fixed offset applied to zoned (UTC) departure
	// timestamps before reading the clock hour. This is a regional
	// convention, not timezone handling: naive timestamps are taken as
	// already-local and used as-is.
	regionUTCOffset = 3 * time.Hour
)

// naiveLayouts are the accepted departure formats without a zone marker
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseDeparture parses a raw departure timestamp into regional local time.
// A timestamp with an explicit zone marker is converted to UTC and shifted
// by the fixed +3h offset; one without a marker is trusted as local.
func ParseDeparture(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		u := t.UTC().Add(regionUTCOffset)
		return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute(), u.Second(), 0, time.UTC), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, common.NewBadRequestError("invalid departure_time format", nil)
}

// TrafficFee computes the peak-hour surcharge for a ride. Departures whose
// local clock hour falls in [7,9) or [16,18) pay per-kilometer; everything
// else is free. Computed once at ride creation and frozen into the ride row.
func TrafficFee(departure time.Time, distanceKm float64) float64 {
	if !isPeakHour(departure.Hour()) {
		return 0
	}
	return math.Round(distanceKm*trafficFeePerKm*100) / 100
}

func isPeakHour(hour int) bool {
	return (hour >= 7 && hour < 9) || (hour >= 16 && hour < 18)
}
