package rides

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// TxStore is the transactional view a lifecycle cascade operates on.
// Complete and cancel flip the ride and every affected booking in one
// transaction; no partial state is ever visible outside it.
type TxStore interface {
	// RideForUpdate locks and returns the ride row, or (nil, nil) when absent
	RideForUpdate(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	SetRideStatus(ctx context.Context, rideID uuid.UUID, status models.RideStatus) error
	// RetargetBookings moves every booking on the ride in status from to
	// status to, returning how many rows changed
	RetargetBookings(ctx context.Context, rideID uuid.UUID, from, to models.BookingStatus) (int64, error)
	IncrementDriverRides(ctx context.Context, driverID uuid.UUID) error
}

// RepositoryInterface defines the ride persistence operations
type RepositoryInterface interface {
	InTx(ctx context.Context, fn func(TxStore) error) error
	Create(ctx context.Context, ride *models.Ride) error
	Get(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	Search(ctx context.Context, f *SearchFilters) ([]models.Ride, int64, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Ride, int64, error)
}
