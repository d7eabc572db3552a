package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// TxStore is the transactional view a unit of work operates on. Row reads
// take row locks (SELECT ... FOR UPDATE), so two concurrent reservations on
// the same ride serialize: the second sees the first's decrement before
// checking seat sufficiency.
type TxStore interface {
	// RideForUpdate locks and returns the ride row, or (nil, nil) when absent
	RideForUpdate(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	// BookingForUpdate locks and returns a booking by ID, or (nil, nil) when absent
	BookingForUpdate(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	// BookingForRide locks and returns the (ride, passenger) booking row, or (nil, nil)
	BookingForRide(ctx context.Context, rideID, passengerID uuid.UUID) (*models.Booking, error)
	// AdjustAvailableSeats adds delta to the ride's available seats,
	// clamped to [0, total_seats]
	AdjustAvailableSeats(ctx context.Context, rideID uuid.UUID, delta int) error
	InsertBooking(ctx context.Context, booking *models.Booking) error
	UpdateBooking(ctx context.Context, booking *models.Booking) error
}

// RepositoryInterface defines the booking persistence operations
type RepositoryInterface interface {
	// InTx runs fn inside one transaction; fn returning an error rolls
	// everything back
	InTx(ctx context.Context, fn func(TxStore) error) error
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	ListByPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error)
	ListByRide(ctx context.Context, rideID uuid.UUID) ([]models.Booking, error)
}
