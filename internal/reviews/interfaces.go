package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// TxStore is the transactional view a review mutation operates on. Every
// create, update and delete recomputes the reviewee's aggregate rating in
// the same transaction, so the cached rating never drifts from the reviews.
type TxStore interface {
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	// ReviewForBooking returns the reviewer's review on a booking, or (nil, nil)
	ReviewForBooking(ctx context.Context, bookingID, reviewerID uuid.UUID) (*models.Review, error)
	// ReviewForUpdate locks and returns a review by ID, or (nil, nil)
	ReviewForUpdate(ctx context.Context, reviewID uuid.UUID) (*models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) error
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, reviewID uuid.UUID) error
	// RatingsFor returns every rating currently held against the user
	RatingsFor(ctx context.Context, revieweeID uuid.UUID) ([]int, error)
	// SetUserRating writes the recomputed aggregate to the user's driver
	// profile; a no-op for users without one
	SetUserRating(ctx context.Context, userID uuid.UUID, rating float64) error
}

// RepositoryInterface defines the review persistence operations
type RepositoryInterface interface {
	InTx(ctx context.Context, fn func(TxStore) error) error
	Get(ctx context.Context, reviewID uuid.UUID) (*models.Review, error)
	ListForUser(ctx context.Context, revieweeID uuid.UUID, limit, offset int) ([]models.Review, int64, error)
}
