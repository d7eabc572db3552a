package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{"confirmed to pending", models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{"cancelled to pending", models.BookingStatusCancelled, models.BookingStatusPending, true},
		{"cancelled to confirmed", models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{"cancelled to completed", models.BookingStatusCancelled, models.BookingStatusCompleted, false},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusCancelled, false},
		{"completed to pending", models.BookingStatusCompleted, models.BookingStatusPending, false},
		{"completed to confirmed", models.BookingStatusCompleted, models.BookingStatusConfirmed, false},
		{"no self loop on pending", models.BookingStatusPending, models.BookingStatusPending, false},
		{"no self loop on confirmed", models.BookingStatusConfirmed, models.BookingStatusConfirmed, false},
		{"unknown from status", models.BookingStatus("expired"), models.BookingStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReleasesSeats(t *testing.T) {
	assert.True(t, releasesSeats(models.BookingStatusPending, models.BookingStatusCancelled))
	assert.True(t, releasesSeats(models.BookingStatusConfirmed, models.BookingStatusCancelled))
	assert.False(t, releasesSeats(models.BookingStatusCancelled, models.BookingStatusCancelled))
	assert.False(t, releasesSeats(models.BookingStatusConfirmed, models.BookingStatusCompleted))
	assert.False(t, releasesSeats(models.BookingStatusPending, models.BookingStatusConfirmed))
}

func TestDriverOnly(t *testing.T) {
	assert.True(t, driverOnly(models.BookingStatusConfirmed))
	assert.True(t, driverOnly(models.BookingStatusCompleted))
	assert.False(t, driverOnly(models.BookingStatusCancelled))
	assert.False(t, driverOnly(models.BookingStatusPending))
}
